package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceService_Create_BooksExpense(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Factory Upgrade")
	require.NoError(t, r.projects.Create(ctx, proj))

	res := &domain.Resource{
		ProjectID:       proj.ID,
		Name:            "Marketing Consultant",
		Type:            domain.ResourceVendor,
		CostPerUnit:     500,
		AllocatedAmount: 3,
	}
	booked, err := svc.Create(ctx, res)
	require.NoError(t, err)
	require.NotNil(t, booked)
	assert.Equal(t, "Vendor: Marketing Consultant", booked.Description)
	assert.Equal(t, 1500.0, booked.Amount)
	assert.Equal(t, domain.ExpenseVendor, booked.Type)
	require.NotNil(t, booked.ResourceID)
	assert.Equal(t, res.ID, *booked.ResourceID)

	expenses, err := r.expenses.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, booked.ID, expenses[0].ID)
}

func TestResourceService_Create_TeamMemberBookedAsResource(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Staffing")
	require.NoError(t, r.projects.Create(ctx, proj))

	booked, err := svc.Create(ctx, testutil.NewTestResource(proj.ID, "Ana"))
	require.NoError(t, err)
	require.NotNil(t, booked)
	assert.Equal(t, domain.ExpenseResource, booked.Type)
	assert.Equal(t, "Team Member: Ana", booked.Description)
}

func TestResourceService_Create_ZeroCostBooksNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Volunteers")
	require.NoError(t, r.projects.Create(ctx, proj))

	booked, err := svc.Create(ctx, testutil.NewTestResource(proj.ID, "Helper", testutil.WithCost(0, 5)))
	require.NoError(t, err)
	assert.Nil(t, booked)

	expenses, err := r.expenses.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	resources, err := svc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, resources, 1)
}

func TestResourceService_Create_Validation(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Validation")
	require.NoError(t, r.projects.Create(ctx, proj))

	_, err := svc.Create(ctx, testutil.NewTestResource(proj.ID, "", testutil.WithCost(1, 1)))
	assert.Error(t, err)
	_, err = svc.Create(ctx, testutil.NewTestResource(proj.ID, "Crane", testutil.WithResourceType("robot")))
	assert.Error(t, err)
	_, err = svc.Create(ctx, testutil.NewTestResource(proj.ID, "Crane", testutil.WithCost(-5, 1)))
	assert.Error(t, err)
}

func TestResourceService_Create_RollsBackWhenExpenseFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := repository.NewSQLiteProjectRepo(database)
	resources := repository.NewSQLiteResourceRepo(database)
	expenses := repository.NewSQLiteExpenseRepo(database)

	proj := testutil.NewTestProject("Rollback")
	require.NoError(t, projects.Create(ctx, proj))

	injected := errors.New("disk full")
	uow := &testutil.FailingUoW{DB: database, Match: "INSERT INTO expenses", FailOn: 1, Err: injected}
	svc := NewResourceService(resources, uow)

	_, err := svc.Create(ctx, testutil.NewTestResource(proj.ID, "Excavator",
		testutil.WithResourceType(domain.ResourceEquipment)))
	require.ErrorIs(t, err, injected)

	rs, err := resources.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, rs, "resource insert must be rolled back")
	es, err := expenses.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, es)
}

func TestResourceService_Delete_RemovesLinkedExpenses(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Cleanup")
	require.NoError(t, r.projects.Create(ctx, proj))

	res := testutil.NewTestResource(proj.ID, "Steel", testutil.WithResourceType(domain.ResourceMaterial))
	_, err := svc.Create(ctx, res)
	require.NoError(t, err)
	require.NoError(t, r.expenses.Create(ctx, testutil.NewTestExpense(proj.ID, "Permit", 80)))

	require.NoError(t, svc.Delete(ctx, res.ID))

	es, err := r.expenses.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.Equal(t, "Permit", es[0].Description)
}

func TestResourceService_Update_RebooksLinkedExpense(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Plant Retrofit")
	require.NoError(t, r.projects.Create(ctx, proj))

	res := &domain.Resource{
		ProjectID:       proj.ID,
		Name:            "Steel",
		Type:            domain.ResourceMaterial,
		CostPerUnit:     50,
		AllocatedAmount: 10,
	}
	booked, err := svc.Create(ctx, res)
	require.NoError(t, err)
	require.NotNil(t, booked)

	name := "Premium Steel"
	cost := 75.0
	updated, err := svc.Update(ctx, res.ID, ResourceUpdate{Name: &name, CostPerUnit: &cost})
	require.NoError(t, err)
	assert.Equal(t, "Premium Steel", updated.Name)
	assert.Equal(t, 10.0, updated.AllocatedAmount, "allocation left alone when not set")

	e, err := r.expenses.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "Material: Premium Steel", e.Description)
	assert.Equal(t, 750.0, e.Amount)
	assert.Equal(t, domain.ExpenseMaterial, e.Type)

	vendor := domain.ResourceVendor
	_, err = svc.Update(ctx, res.ID, ResourceUpdate{Type: &vendor})
	require.NoError(t, err)
	e, err = r.expenses.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vendor: Premium Steel", e.Description)
	assert.Equal(t, domain.ExpenseVendor, e.Type)
}

func TestResourceService_Update_BooksExpenseWhenCostAppears(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Volunteers")
	require.NoError(t, r.projects.Create(ctx, proj))

	res := testutil.NewTestResource(proj.ID, "Helper", testutil.WithCost(0, 5))
	booked, err := svc.Create(ctx, res)
	require.NoError(t, err)
	require.Nil(t, booked)

	cost := 20.0
	_, err = svc.Update(ctx, res.ID, ResourceUpdate{CostPerUnit: &cost})
	require.NoError(t, err)

	es, err := r.expenses.ListByResource(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.Equal(t, 100.0, es[0].Amount)
	assert.Equal(t, "Team Member: Helper", es[0].Description)
}

func TestResourceService_Update_Rejected(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewResourceService(r.resources, r.uow)

	proj := testutil.NewTestProject("Validation")
	require.NoError(t, r.projects.Create(ctx, proj))
	res := testutil.NewTestResource(proj.ID, "Crane", testutil.WithResourceType(domain.ResourceEquipment))
	booked, err := svc.Create(ctx, res)
	require.NoError(t, err)

	negative := -3.0
	_, err = svc.Update(ctx, res.ID, ResourceUpdate{CostPerUnit: &negative})
	require.Error(t, err)

	fetched, err := r.resources.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fetched.CostPerUnit)
	e, err := r.expenses.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, e.Amount)

	_, err = svc.Update(ctx, "missing", ResourceUpdate{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestResourceService_Update_RollsBackWhenExpenseSyncFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := repository.NewSQLiteProjectRepo(database)
	resources := repository.NewSQLiteResourceRepo(database)
	expenses := repository.NewSQLiteExpenseRepo(database)

	proj := testutil.NewTestProject("Rollback")
	require.NoError(t, projects.Create(ctx, proj))
	res := testutil.NewTestResource(proj.ID, "Scaffold", testutil.WithResourceType(domain.ResourceEquipment))
	booked, err := NewResourceService(resources, testutil.NewTestUoW(database)).Create(ctx, res)
	require.NoError(t, err)

	injected := errors.New("disk full")
	uow := &testutil.FailingUoW{DB: database, Match: "UPDATE expenses", FailOn: 1, Err: injected}
	cost := 999.0
	_, err = NewResourceService(resources, uow).Update(ctx, res.ID, ResourceUpdate{CostPerUnit: &cost})
	require.ErrorIs(t, err, injected)

	fetched, err := resources.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fetched.CostPerUnit, "resource edit must be rolled back")
	e, err := expenses.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, e.Amount)
}
