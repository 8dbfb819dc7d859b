package service

import (
	"testing"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
)

type testRepos struct {
	uow        db.UnitOfWork
	projects   *repository.SQLiteProjectRepo
	users      *repository.SQLiteUserRepo
	resources  *repository.SQLiteResourceRepo
	milestones *repository.SQLiteMilestoneRepo
	expenses   *repository.SQLiteExpenseRepo
	documents  *repository.SQLiteDocumentRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		uow:        testutil.NewTestUoW(database),
		projects:   repository.NewSQLiteProjectRepo(database),
		users:      repository.NewSQLiteUserRepo(database),
		resources:  repository.NewSQLiteResourceRepo(database),
		milestones: repository.NewSQLiteMilestoneRepo(database),
		expenses:   repository.NewSQLiteExpenseRepo(database),
		documents:  repository.NewSQLiteDocumentRepo(database),
	}
}
