package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

type SQLiteResourceRepo struct {
	db db.DBTX
}

func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: conn}
}

const resourceColumns = `id, project_id, name, type, cost_per_unit, availability, allocated_amount, description, created_at`

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (` + resourceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, resourceArgs(res)...); err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	return scanResource(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteResourceRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE project_id = ? ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var out []*domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	query := `UPDATE resources SET name = ?, type = ?, cost_per_unit = ?, availability = ?,
		allocated_amount = ?, description = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		res.Name, string(res.Type), res.CostPerUnit, res.Availability,
		res.AllocatedAmount, res.Description, res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	return requireAffected(result, "resource")
}

func (r *SQLiteResourceRepo) Upsert(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (` + resourceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id, name = excluded.name, type = excluded.type,
			cost_per_unit = excluded.cost_per_unit, availability = excluded.availability,
			allocated_amount = excluded.allocated_amount, description = excluded.description`
	if _, err := r.db.ExecContext(ctx, query, resourceArgs(res)...); err != nil {
		return fmt.Errorf("upserting resource: %w", err)
	}
	return nil
}

// Delete removes the resource. Expenses linked to it are removed by the
// resource_id foreign key cascade.
func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	return requireAffected(result, "resource")
}

func resourceArgs(res *domain.Resource) []any {
	return []any{
		res.ID, res.ProjectID, res.Name, string(res.Type), res.CostPerUnit,
		res.Availability, res.AllocatedAmount, res.Description, formatTime(res.CreatedAt),
	}
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var res domain.Resource
	var typ, createdStr string
	err := row.Scan(&res.ID, &res.ProjectID, &res.Name, &typ, &res.CostPerUnit,
		&res.Availability, &res.AllocatedAmount, &res.Description, &createdStr)
	if err != nil {
		return nil, notFoundOr(err, "resource")
	}
	res.Type = domain.ResourceType(typ)
	if res.CreatedAt, err = parseTime(createdStr, "created_at"); err != nil {
		return nil, err
	}
	return &res, nil
}
