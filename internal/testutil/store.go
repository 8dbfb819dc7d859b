package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/horizon/internal/db"
)

// NewTestDB opens a migrated in-memory portfolio database that is closed
// when t finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// FailingUoW runs transactions on DB but fails the FailOn-th write with Err.
// When Match is set only statements containing it are counted, so
// FailOn: 1, Match: "INSERT INTO expenses" fails the first expense insert
// whatever was written before it. Reads are never counted.
type FailingUoW struct {
	DB     *sql.DB
	Match  string
	FailOn int
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow  *FailingUoW
	seen int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		f.seen++
		if f.seen == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
