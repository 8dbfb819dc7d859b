package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/importer"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portfolioFixture = "../importer/testdata/portfolio.json"

func TestImportService_ImportFile(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	result, err := svc.ImportFile(ctx, portfolioFixture)
	require.NoError(t, err)
	require.Len(t, result.Projects, 2)
	assert.Equal(t, 1, result.Users)
	assert.Equal(t, 1, result.Resources)
	assert.Equal(t, 2, result.Milestones)
	assert.Equal(t, 1, result.Expenses)
	assert.Equal(t, 1, result.Documents)

	web, err := r.projects.GetByShortID(ctx, "WEB01")
	require.NoError(t, err)
	assert.Equal(t, "Website Relaunch", web.Name)
	assert.Equal(t, domain.StageExecution, web.Stage)

	pilot, err := r.projects.GetByID(ctx, "p-2")
	require.NoError(t, err)
	assert.Equal(t, domain.StageInitiation, pilot.Stage)
	assert.True(t, pilot.StartDate.Equal(pilot.EndDate), "imported zero-length windows are kept")

	expenses, err := r.expenses.ListByProject(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	require.NotNil(t, expenses[0].ResourceID)
	assert.Equal(t, "r-1", *expenses[0].ResourceID)

	docs, err := r.documents.ListByProject(ctx, "p-1", "/contracts")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].Version)
	assert.Equal(t, domain.DocumentApproved, docs[0].Status)
}

func TestImportService_ReimportUpdatesInPlace(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	_, err := svc.ImportFile(ctx, portfolioFixture)
	require.NoError(t, err)
	_, err = svc.ImportFile(ctx, portfolioFixture)
	require.NoError(t, err)

	projects, err := r.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	users, err := r.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	expenses, err := r.expenses.ListByProject(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}

func TestImportService_ValidationErrorsWriteNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	snapshot := &importer.Snapshot{
		Projects: []importer.ProjectRecord{
			{ID: "p-ok", Name: "Fine", StartDate: "2024-01-01", EndDate: "2024-02-01", ManagerID: "u"},
			{ID: "p-bad", Name: "Broken", Stage: "shipping", StartDate: "2024-01-01", EndDate: "not a date", ManagerID: "u"},
		},
		Expenses: []importer.ExpenseRecord{
			{ProjectID: "p-missing", Description: "Orphan", Amount: 10, Type: "other"},
		},
	}
	_, err := svc.ImportSnapshot(ctx, snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")
	assert.Contains(t, err.Error(), "shipping")

	projects, err := r.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestImportService_RollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	injected := errors.New("write failed")
	svc := NewImportService(&testutil.FailingUoW{DB: database, FailOn: 3, Err: injected})

	_, err := svc.ImportFile(ctx, portfolioFixture)
	require.ErrorIs(t, err, injected)

	var n int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
}

func TestImportService_Observed(t *testing.T) {
	r := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewImportService(r.uow, obs)

	_, err := svc.ImportSnapshot(context.Background(), &importer.Snapshot{
		Projects: []importer.ProjectRecord{{
			ID: "p-1", Name: "One", StartDate: time.Now().UTC().Format(time.RFC3339),
			EndDate: time.Now().UTC().AddDate(0, 1, 0).Format(time.RFC3339), ManagerID: "u",
		}},
	})
	require.NoError(t, err)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "import-snapshot", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["projects"])
}
