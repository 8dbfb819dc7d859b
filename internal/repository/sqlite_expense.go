package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

type SQLiteExpenseRepo struct {
	db db.DBTX
}

func NewSQLiteExpenseRepo(conn db.DBTX) *SQLiteExpenseRepo {
	return &SQLiteExpenseRepo{db: conn}
}

const expenseColumns = `id, project_id, resource_id, description, amount, expense_type, date, created_at`

func (r *SQLiteExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, expenseArgs(e)...); err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (r *SQLiteExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`
	return scanExpense(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteExpenseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error) {
	return r.list(ctx, `WHERE project_id = ? ORDER BY date, created_at`, projectID)
}

func (r *SQLiteExpenseRepo) ListByResource(ctx context.Context, resourceID string) ([]*domain.Expense, error) {
	return r.list(ctx, `WHERE resource_id = ? ORDER BY date, created_at`, resourceID)
}

func (r *SQLiteExpenseRepo) list(ctx context.Context, where string, args ...any) ([]*domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var out []*domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteExpenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET resource_id = ?, description = ?, amount = ?, expense_type = ?, date = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(e.ResourceID), e.Description, e.Amount, string(e.Type), formatTime(e.Date), e.ID)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	return requireAffected(res, "expense")
}

func (r *SQLiteExpenseRepo) Upsert(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id, resource_id = excluded.resource_id,
			description = excluded.description, amount = excluded.amount,
			expense_type = excluded.expense_type, date = excluded.date`
	if _, err := r.db.ExecContext(ctx, query, expenseArgs(e)...); err != nil {
		return fmt.Errorf("upserting expense: %w", err)
	}
	return nil
}

func (r *SQLiteExpenseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return requireAffected(res, "expense")
}

func (r *SQLiteExpenseRepo) SumByProject(ctx context.Context, projectID string) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE project_id = ?`, projectID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing project expenses: %w", err)
	}
	return total, nil
}

func (r *SQLiteExpenseRepo) SumAll(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing expenses: %w", err)
	}
	return total, nil
}

func expenseArgs(e *domain.Expense) []any {
	return []any{
		e.ID, e.ProjectID, nullableString(e.ResourceID), e.Description, e.Amount,
		string(e.Type), formatTime(e.Date), formatTime(e.CreatedAt),
	}
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	var resourceID sql.NullString
	var typ, dateStr, createdStr string

	err := row.Scan(&e.ID, &e.ProjectID, &resourceID, &e.Description, &e.Amount,
		&typ, &dateStr, &createdStr)
	if err != nil {
		return nil, notFoundOr(err, "expense")
	}
	e.ResourceID = parseNullableString(resourceID)
	e.Type = domain.ExpenseType(typ)
	if e.Date, err = parseTime(dateStr, "date"); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdStr, "created_at"); err != nil {
		return nil, err
	}
	return &e, nil
}
