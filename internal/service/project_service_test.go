package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_Defaults(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	proj := &domain.Project{
		Name:      "Website Relaunch",
		ShortID:   "web01",
		StartDate: start,
		EndDate:   start.AddDate(0, 3, 0),
		Budget:    50000,
	}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, "WEB01", proj.ShortID, "short ID should be uppercased")
	assert.Equal(t, domain.StageInitiation, proj.Stage)

	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website Relaunch", fetched.Name)
	assert.True(t, fetched.StartDate.Equal(start))
}

func TestProjectService_Create_Rejects(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		proj *domain.Project
	}{
		{"missing name", &domain.Project{StartDate: start, EndDate: start.AddDate(0, 1, 0)}},
		{"bad short id", &domain.Project{Name: "X", ShortID: "W1", StartDate: start, EndDate: start.AddDate(0, 1, 0)}},
		{"end before start", &domain.Project{Name: "X", StartDate: start, EndDate: start.AddDate(0, 0, -1)}},
		{"zero duration", &domain.Project{Name: "X", StartDate: start, EndDate: start}},
		{"negative budget", &domain.Project{Name: "X", StartDate: start, EndDate: start.AddDate(0, 1, 0), Budget: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, svc.Create(ctx, tc.proj))
		})
	}
}

func TestProjectService_Resolve(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Data Platform", testutil.WithShortID("DATA01"))
	require.NoError(t, r.projects.Create(ctx, proj))

	byShort, err := svc.Resolve(ctx, "data01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, byShort.ID)

	byID, err := svc.Resolve(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, byID.ID)

	byPrefix, err := svc.Resolve(ctx, proj.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, proj.ID, byPrefix.ID)

	_, err = svc.Resolve(ctx, "NOPE99")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Resolve(ctx, "  ")
	assert.Error(t, err)
}

func TestProjectService_Resolve_AmbiguousPrefix(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	a := testutil.NewTestProject("Alpha")
	a.ID = "abc-1111"
	b := testutil.NewTestProject("Beta")
	b.ID = "abc-2222"
	require.NoError(t, r.projects.Create(ctx, a))
	require.NoError(t, r.projects.Create(ctx, b))

	_, err := svc.Resolve(ctx, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestProjectService_Update_PartialFields(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Mobile App", testutil.WithBudget(1000))
	require.NoError(t, r.projects.Create(ctx, proj))

	name := "Mobile App v2"
	budget := 2500.0
	updated, err := svc.Update(ctx, proj.ID, ProjectUpdate{Name: &name, Budget: &budget})
	require.NoError(t, err)
	assert.Equal(t, "Mobile App v2", updated.Name)
	assert.Equal(t, 2500.0, updated.Budget)
	assert.Equal(t, proj.ShortID, updated.ShortID)
	assert.Equal(t, proj.Stage, updated.Stage)

	// Moving the end date before the start must be rejected.
	end := proj.StartDate.AddDate(0, 0, -1)
	_, err = svc.Update(ctx, proj.ID, ProjectUpdate{EndDate: &end})
	assert.Error(t, err)

	fetched, err := r.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.True(t, fetched.EndDate.Equal(proj.EndDate), "rejected update must not be persisted")

	desc := "native rewrite"
	updated, err = svc.Update(ctx, proj.ID, ProjectUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, updated.Budget, "budget left alone when not set")

	negative := -1.0
	_, err = svc.Update(ctx, proj.ID, ProjectUpdate{Budget: &negative})
	assert.Error(t, err)
}

func TestProjectService_UpdateStage(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Warehouse")
	require.NoError(t, r.projects.Create(ctx, proj))

	updated, err := svc.UpdateStage(ctx, proj.ID, " Monitoring ")
	require.NoError(t, err)
	assert.Equal(t, domain.StageMonitoring, updated.Stage)

	_, err = svc.UpdateStage(ctx, proj.ID, "shipping")
	assert.Error(t, err)
}

func TestProjectService_Delete_RequiresClosed(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Active Project")
	require.NoError(t, r.projects.Create(ctx, proj))

	err := svc.Delete(ctx, proj.ID, false)
	assert.Error(t, err, "should require closing before delete")

	_, err = svc.UpdateStage(ctx, proj.ID, "closed")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, proj.ID, false))

	_, err = r.projects.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_Delete_Force(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	proj := testutil.NewTestProject("Forced")
	require.NoError(t, r.projects.Create(ctx, proj))
	require.NoError(t, svc.Delete(ctx, proj.ID, true))
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func TestProjectService_ObservesUseCases(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewProjectService(r.projects, obs)

	start := time.Now().UTC()
	require.NoError(t, svc.Create(ctx, &domain.Project{Name: "Observed", StartDate: start, EndDate: start.AddDate(0, 1, 0)}))
	require.Error(t, svc.Create(ctx, &domain.Project{}))

	require.Len(t, obs.events, 2)
	assert.Equal(t, "create-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.NotEmpty(t, obs.events[0].Fields["project_id"])
	assert.False(t, obs.events[1].Success)
	assert.Error(t, obs.events[1].Err)
}
