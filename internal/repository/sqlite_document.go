package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
)

type SQLiteDocumentRepo struct {
	db db.DBTX
}

func NewSQLiteDocumentRepo(conn db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: conn}
}

const documentColumns = `id, project_id, name, filename, version, folder_path, file_path, file_size,
	status, uploaded_by, uploaded_at, approved_by, approved_at`

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, documentArgs(d)...); err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (r *SQLiteDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	return scanDocument(r.db.QueryRowContext(ctx, query, id))
}

// ListByProject lists documents for a project. An empty folder lists every folder.
func (r *SQLiteDocumentRepo) ListByProject(ctx context.Context, projectID, folder string) ([]*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE project_id = ?`
	args := []any{projectID}
	if folder != "" {
		query += ` AND folder_path = ?`
		args = append(args, folder)
	}
	query += ` ORDER BY folder_path, name, version`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var out []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountVersions counts stored versions of a named document in one folder.
func (r *SQLiteDocumentRepo) CountVersions(ctx context.Context, projectID, folder, name string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE project_id = ? AND folder_path = ? AND name = ?`,
		projectID, folder, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting document versions: %w", err)
	}
	return n, nil
}

func (r *SQLiteDocumentRepo) Approve(ctx context.Context, id, approvedBy string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = ?, approved_by = ?, approved_at = ? WHERE id = ?`,
		string(domain.DocumentApproved), approvedBy, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("approving document: %w", err)
	}
	return requireAffected(res, "document")
}

func (r *SQLiteDocumentRepo) Upsert(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id, name = excluded.name, filename = excluded.filename,
			version = excluded.version, folder_path = excluded.folder_path, file_path = excluded.file_path,
			file_size = excluded.file_size, status = excluded.status, uploaded_by = excluded.uploaded_by,
			uploaded_at = excluded.uploaded_at, approved_by = excluded.approved_by,
			approved_at = excluded.approved_at`
	if _, err := r.db.ExecContext(ctx, query, documentArgs(d)...); err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}
	return nil
}

func documentArgs(d *domain.Document) []any {
	return []any{
		d.ID, d.ProjectID, d.Name, d.Filename, d.Version, d.FolderPath, d.FilePath, d.FileSize,
		string(d.Status), d.UploadedBy, formatTime(d.UploadedAt),
		nullableString(d.ApprovedBy), nullableTimeToString(d.ApprovedAt),
	}
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	var status, uploadedStr string
	var approvedBy, approvedAt sql.NullString

	err := row.Scan(&d.ID, &d.ProjectID, &d.Name, &d.Filename, &d.Version, &d.FolderPath,
		&d.FilePath, &d.FileSize, &status, &d.UploadedBy, &uploadedStr, &approvedBy, &approvedAt)
	if err != nil {
		return nil, notFoundOr(err, "document")
	}
	d.Status = domain.DocumentStatus(status)
	d.ApprovedBy = parseNullableString(approvedBy)
	d.ApprovedAt = parseNullableTime(approvedAt)
	if d.UploadedAt, err = parseTime(uploadedStr, "uploaded_at"); err != nil {
		return nil, err
	}
	return &d, nil
}
