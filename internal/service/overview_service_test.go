package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/alexanderramin/horizon/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewService_Overview(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Campus", testutil.WithBudget(1000), testutil.WithWindow(day(2024, 1, 1), day(2024, 1, 11)))
	require.NoError(t, r.projects.Create(ctx, proj))

	res := testutil.NewTestResource(proj.ID, "Ana", testutil.WithCost(50, 4))
	require.NoError(t, r.resources.Create(ctx, res))
	require.NoError(t, r.expenses.Create(ctx, testutil.NewTestExpense(proj.ID, "Team Member: Ana", 200, testutil.WithExpenseResource(res.ID))))
	require.NoError(t, r.expenses.Create(ctx, testutil.NewTestExpense(proj.ID, "Snacks", 50)))
	require.NoError(t, r.milestones.Create(ctx, testutil.NewTestMilestone(proj.ID, "Kickoff")))
	require.NoError(t, r.documents.Create(ctx, testutil.NewTestDocument(proj.ID, "Charter")))
	require.NoError(t, r.documents.Create(ctx, testutil.NewTestDocument(proj.ID, "NDA", testutil.WithFolder("/legal"))))

	svc := NewOverviewService(r.projects, r.resources, r.milestones, r.expenses, r.documents)
	ov, err := svc.Overview(ctx, proj.ID, day(2024, 1, 6))
	require.NoError(t, err)

	assert.Equal(t, proj.ID, ov.Project.ID)
	assert.Equal(t, 50, ov.Timeline.ProgressPct)
	assert.Equal(t, timeline.BandHealthyMid, ov.Band)
	assert.Len(t, ov.Resources, 1)
	assert.Len(t, ov.Expenses, 2)
	assert.Len(t, ov.Milestones, 1)
	require.Len(t, ov.Documents, 1, "only root folder documents are listed")
	assert.Equal(t, "Charter", ov.Documents[0].Name)
	assert.Equal(t, 250.0, ov.Budget.TotalExpenses)
	assert.Equal(t, 750.0, ov.Budget.Remaining)
	assert.InDelta(t, 25.0, ov.Budget.PercentageUsed, 1e-9)
}

func TestOverviewService_NotFound(t *testing.T) {
	r := setupRepos(t)
	svc := NewOverviewService(r.projects, r.resources, r.milestones, r.expenses, r.documents)

	_, err := svc.Overview(context.Background(), "missing", day(2024, 1, 1))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
