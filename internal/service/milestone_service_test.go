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

func TestMilestoneService_CreateAndComplete(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewMilestoneService(r.milestones)

	proj := testutil.NewTestProject("Launch")
	require.NoError(t, r.projects.Create(ctx, proj))

	m := &domain.Milestone{ProjectID: proj.ID, Title: "Beta", DueDate: time.Now().UTC().AddDate(0, 0, 7)}
	require.NoError(t, svc.Create(ctx, m))
	assert.NotEmpty(t, m.ID)

	require.NoError(t, svc.Complete(ctx, m.ID))

	ms, err := svc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.True(t, ms[0].Completed)
	assert.NotNil(t, ms[0].CompletedDate)
}

func TestMilestoneService_Create_Validation(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewMilestoneService(r.milestones)

	assert.Error(t, svc.Create(ctx, &domain.Milestone{Title: "x", DueDate: time.Now()}))
	assert.Error(t, svc.Create(ctx, &domain.Milestone{ProjectID: "p", DueDate: time.Now()}))
	assert.Error(t, svc.Create(ctx, &domain.Milestone{ProjectID: "p", Title: "x"}))
}

func TestUserService(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewUserService(r.users)

	u := &domain.User{Name: "Dana Lead", Email: "dana@example.com"}
	require.NoError(t, svc.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, domain.DefaultUserRole, u.Role)

	assert.Error(t, svc.Create(ctx, &domain.User{Name: "No Mail", Email: "nomail"}))
	assert.Error(t, svc.Create(ctx, &domain.User{Email: "x@example.com"}))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestMilestoneService_Delete(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewMilestoneService(r.milestones)

	proj := testutil.NewTestProject("Launch")
	require.NoError(t, r.projects.Create(ctx, proj))

	m := &domain.Milestone{ProjectID: proj.ID, Title: "Beta", DueDate: time.Now().UTC().AddDate(0, 0, 7)}
	require.NoError(t, svc.Create(ctx, m))
	require.NoError(t, svc.Delete(ctx, m.ID))

	ms, err := svc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, ms)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), repository.ErrNotFound)
}
