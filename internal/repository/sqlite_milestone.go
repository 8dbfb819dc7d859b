package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

type SQLiteMilestoneRepo struct {
	db db.DBTX
}

func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

const milestoneColumns = `id, project_id, title, description, due_date, completed, completed_date, created_at`

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, milestoneArgs(m)...); err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	return scanMilestone(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMilestoneRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = ? ORDER BY due_date, title`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteMilestoneRepo) Complete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE milestones SET completed = 1, completed_date = ? WHERE id = ?`,
		formatTime(at), id)
	if err != nil {
		return fmt.Errorf("completing milestone: %w", err)
	}
	return requireAffected(res, "milestone")
}

// CountOverdue counts open milestones whose due date is before now.
// Dates are stored in the fixed-width timeLayout, so string comparison
// orders them.
func (r *SQLiteMilestoneRepo) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM milestones WHERE completed = 0 AND due_date < ?`,
		formatTime(now)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting overdue milestones: %w", err)
	}
	return n, nil
}

func (r *SQLiteMilestoneRepo) Upsert(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id, title = excluded.title, description = excluded.description,
			due_date = excluded.due_date, completed = excluded.completed, completed_date = excluded.completed_date`
	if _, err := r.db.ExecContext(ctx, query, milestoneArgs(m)...); err != nil {
		return fmt.Errorf("upserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return requireAffected(res, "milestone")
}

func milestoneArgs(m *domain.Milestone) []any {
	return []any{
		m.ID, m.ProjectID, m.Title, m.Description, formatTime(m.DueDate),
		boolToInt(m.Completed), nullableTimeToString(m.CompletedDate), formatTime(m.CreatedAt),
	}
}

func scanMilestone(row rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var dueStr, createdStr string
	var completed int
	var completedDate sql.NullString

	err := row.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Description, &dueStr,
		&completed, &completedDate, &createdStr)
	if err != nil {
		return nil, notFoundOr(err, "milestone")
	}
	m.Completed = intToBool(completed)
	m.CompletedDate = parseNullableTime(completedDate)
	if m.DueDate, err = parseTime(dueStr, "due_date"); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(createdStr, "created_at"); err != nil {
		return nil, err
	}
	return &m, nil
}
