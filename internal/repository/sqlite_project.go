package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, short_id, name, description, stage, start_date, end_date, budget, manager_id, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, projectArgs(p)...)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE short_id != '' AND UPPER(short_id) = UPPER(?)`
	return scanProject(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeClosed bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeClosed {
		query += ` WHERE stage != 'closed'`
	}
	query += ` ORDER BY created_at, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET short_id = ?, name = ?, description = ?, stage = ?, start_date = ?, end_date = ?,
		budget = ?, manager_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		p.Description,
		string(p.Stage),
		formatTime(p.StartDate),
		formatTime(p.EndDate),
		p.Budget,
		p.ManagerID,
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project")
}

// Upsert inserts the project or overwrites every column of an existing row
// with the same id.
func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			short_id = excluded.short_id, name = excluded.name, description = excluded.description,
			stage = excluded.stage, start_date = excluded.start_date, end_date = excluded.end_date,
			budget = excluded.budget, manager_id = excluded.manager_id, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, projectArgs(p)...); err != nil {
		return fmt.Errorf("upserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project")
}

func projectArgs(p *domain.Project) []any {
	return []any{
		p.ID,
		p.ShortID,
		p.Name,
		p.Description,
		string(p.Stage),
		formatTime(p.StartDate),
		formatTime(p.EndDate),
		p.Budget,
		p.ManagerID,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	}
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var stage, startStr, endStr, createdStr, updatedStr string

	err := row.Scan(
		&p.ID, &p.ShortID, &p.Name, &p.Description, &stage,
		&startStr, &endStr, &p.Budget, &p.ManagerID,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, notFoundOr(err, "project")
	}

	p.Stage = domain.ProjectStage(stage)

	if p.StartDate, err = parseTime(startStr, "start_date"); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseTime(endStr, "end_date"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdStr, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedStr, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}

