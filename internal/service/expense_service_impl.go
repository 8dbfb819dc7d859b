package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/google/uuid"
)

type expenseService struct {
	expenses repository.ExpenseRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewExpenseService(
	expenses repository.ExpenseRepo,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ExpenseService {
	return &expenseService{
		expenses: expenses,
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *expenseService) Create(ctx context.Context, e *domain.Expense) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": e.ProjectID, "amount": e.Amount}
	defer func() { observeUseCase(ctx, s.observer, "create-expense", startedAt, fields, err) }()

	if err := validateExpense(e); err != nil {
		return err
	}
	prepareExpense(e)
	return s.expenses.Create(ctx, e)
}

// CreateWithResource stores a new resource and an expense linked to it in
// one transaction. An empty description or zero amount on the expense is
// filled from the resource.
func (s *expenseService) CreateWithResource(ctx context.Context, e *domain.Expense, r *domain.Resource) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": e.ProjectID, "resource": r.Name}
	defer func() { observeUseCase(ctx, s.observer, "create-expense-with-resource", startedAt, fields, err) }()

	if r.ProjectID == "" {
		r.ProjectID = e.ProjectID
	}
	if r.ProjectID != e.ProjectID {
		return fmt.Errorf("resource and expense must belong to the same project")
	}
	if err := validateResource(r); err != nil {
		return err
	}
	prepareResource(r)

	e.Description = domain.CoalesceStr(strings.TrimSpace(e.Description), r.ExpenseDescription())
	if e.Amount == 0 {
		e.Amount = r.TotalCost()
	}
	if e.Type == "" {
		e.Type = r.Type.ExpenseType()
	}
	resourceID := r.ID
	e.ResourceID = &resourceID
	if err := validateExpense(e); err != nil {
		return err
	}
	prepareExpense(e)
	fields["amount"] = e.Amount

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteResourceRepo(tx).Create(ctx, r); err != nil {
			return fmt.Errorf("creating resource: %w", err)
		}
		if err := repository.NewSQLiteExpenseRepo(tx).Create(ctx, e); err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
		return nil
	})
}

func (s *expenseService) ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error) {
	return s.expenses.ListByProject(ctx, projectID)
}

// Update saves the expense. When it is linked to a resource, the resource
// follows: its name becomes the description without any "Label: " prefix
// and its unit cost is re-derived from the new amount.
func (s *expenseService) Update(ctx context.Context, e *domain.Expense) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"expense_id": e.ID, "amount": e.Amount}
	defer func() { observeUseCase(ctx, s.observer, "update-expense", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txExpenses := repository.NewSQLiteExpenseRepo(tx)
		txResources := repository.NewSQLiteResourceRepo(tx)

		existing, err := txExpenses.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}
		e.ProjectID = existing.ProjectID
		e.ResourceID = existing.ResourceID
		e.CreatedAt = existing.CreatedAt
		if e.Date.IsZero() {
			e.Date = existing.Date
		}
		if err := validateExpense(e); err != nil {
			return err
		}
		if err := txExpenses.Update(ctx, e); err != nil {
			return err
		}

		if e.ResourceID == nil {
			return nil
		}
		res, err := txResources.GetByID(ctx, *e.ResourceID)
		if err != nil {
			return fmt.Errorf("loading linked resource: %w", err)
		}
		res.Name = domain.CoalesceStr(e.SubjectName(), res.Name)
		if res.AllocatedAmount > 0 {
			res.CostPerUnit = e.Amount / res.AllocatedAmount
		}
		fields["resource_id"] = res.ID
		if err := txResources.Update(ctx, res); err != nil {
			return fmt.Errorf("syncing linked resource: %w", err)
		}
		return nil
	})
}

// Delete removes the expense. A linked resource is removed with it.
func (s *expenseService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"expense_id": id}
	defer func() { observeUseCase(ctx, s.observer, "delete-expense", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txExpenses := repository.NewSQLiteExpenseRepo(tx)

		e, err := txExpenses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if e.ResourceID != nil {
			fields["resource_id"] = *e.ResourceID
			// The expense goes with the resource through the foreign key cascade.
			return repository.NewSQLiteResourceRepo(tx).Delete(ctx, *e.ResourceID)
		}
		return txExpenses.Delete(ctx, id)
	})
}

func (s *expenseService) BudgetSummary(ctx context.Context, projectID string) (*domain.BudgetSummary, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	total, err := s.expenses.SumByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summary := domain.NewBudgetSummary(p.Budget, total)
	return &summary, nil
}

func validateExpense(e *domain.Expense) error {
	if e.ProjectID == "" {
		return fmt.Errorf("expense project is required")
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("expense description is required")
	}
	if e.Amount < 0 {
		return fmt.Errorf("expense amount must not be negative")
	}
	if !domain.ValidExpenseTypes[string(e.Type)] {
		return fmt.Errorf("invalid expense type %q, must be one of: resource, vendor, equipment, material, other", e.Type)
	}
	return nil
}

func prepareExpense(e *domain.Expense) {
	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	e.CreatedAt = now
}
