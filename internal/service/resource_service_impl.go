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

type resourceService struct {
	resources repository.ResourceRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewResourceService(resources repository.ResourceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ResourceService {
	return &resourceService{
		resources: resources,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Create stores the resource. A resource with a positive total cost also
// gets an expense linked to it, written in the same transaction; that
// expense is returned, or nil when none was booked.
func (s *resourceService) Create(ctx context.Context, r *domain.Resource) (booked *domain.Expense, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": r.ProjectID, "resource": r.Name}
	defer func() { observeUseCase(ctx, s.observer, "create-resource", startedAt, fields, err) }()

	if err := validateResource(r); err != nil {
		return nil, err
	}
	prepareResource(r)
	now := time.Now().UTC()

	if r.TotalCost() > 0 {
		booked = bookingExpense(r, now)
		fields["expense_amount"] = booked.Amount
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteResourceRepo(tx).Create(ctx, r); err != nil {
			return fmt.Errorf("creating resource: %w", err)
		}
		if booked == nil {
			return nil
		}
		if err := repository.NewSQLiteExpenseRepo(tx).Create(ctx, booked); err != nil {
			return fmt.Errorf("booking resource cost: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

func (s *resourceService) ListByProject(ctx context.Context, projectID string) ([]*domain.Resource, error) {
	return s.resources.ListByProject(ctx, projectID)
}

// Update applies upd to the resource. Every expense linked to it is
// re-booked in the same transaction: amount from the new total cost,
// description and type from the new name and type. A resource that gains
// a cost without having a linked expense gets one booked.
func (s *resourceService) Update(ctx context.Context, id string, upd ResourceUpdate) (res *domain.Resource, err error) {
	startedAt := time.Now()
	fields := map[string]any{"resource_id": id}
	defer func() { observeUseCase(ctx, s.observer, "update-resource", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txResources := repository.NewSQLiteResourceRepo(tx)
		txExpenses := repository.NewSQLiteExpenseRepo(tx)

		res, err = txResources.GetByID(ctx, id)
		if err != nil {
			return err
		}
		applyResourceUpdate(res, upd)
		if err := validateResource(res); err != nil {
			return err
		}
		if err := txResources.Update(ctx, res); err != nil {
			return err
		}

		linked, err := txExpenses.ListByResource(ctx, res.ID)
		if err != nil {
			return err
		}
		fields["linked_expenses"] = len(linked)
		if len(linked) == 0 {
			if res.TotalCost() <= 0 {
				return nil
			}
			if err := txExpenses.Create(ctx, bookingExpense(res, time.Now().UTC())); err != nil {
				return fmt.Errorf("booking resource cost: %w", err)
			}
			return nil
		}
		for _, e := range linked {
			e.Description = res.ExpenseDescription()
			e.Amount = res.TotalCost()
			e.Type = res.Type.ExpenseType()
			if err := txExpenses.Update(ctx, e); err != nil {
				return fmt.Errorf("syncing linked expense: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func applyResourceUpdate(r *domain.Resource, upd ResourceUpdate) {
	if upd.Name != nil {
		r.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Type != nil {
		r.Type = *upd.Type
	}
	r.CostPerUnit = domain.FloatFromPtrWithDefault(r.CostPerUnit, upd.CostPerUnit)
	r.AllocatedAmount = domain.FloatFromPtrWithDefault(r.AllocatedAmount, upd.AllocatedAmount)
	if upd.Availability != nil {
		r.Availability = *upd.Availability
	}
	if upd.Description != nil {
		r.Description = *upd.Description
	}
}

// Delete removes the resource together with every expense linked to it.
func (s *resourceService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"resource_id": id}
	defer func() { observeUseCase(ctx, s.observer, "delete-resource", startedAt, fields, err) }()

	return s.resources.Delete(ctx, id)
}

func validateResource(r *domain.Resource) error {
	if r.ProjectID == "" {
		return fmt.Errorf("resource project is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("resource name is required")
	}
	if !domain.ValidResourceTypes[string(r.Type)] {
		return fmt.Errorf("invalid resource type %q, must be one of: team_member, vendor, equipment, material", r.Type)
	}
	if r.CostPerUnit < 0 || r.AllocatedAmount < 0 {
		return fmt.Errorf("resource cost and allocation must not be negative")
	}
	return nil
}

func prepareResource(r *domain.Resource) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()
}

// bookingExpense builds the expense that records a resource's total cost.
func bookingExpense(r *domain.Resource, now time.Time) *domain.Expense {
	resourceID := r.ID
	return &domain.Expense{
		ID:          uuid.New().String(),
		ProjectID:   r.ProjectID,
		ResourceID:  &resourceID,
		Description: r.ExpenseDescription(),
		Amount:      r.TotalCost(),
		Type:        r.Type.ExpenseType(),
		Date:        now,
		CreatedAt:   now,
	}
}
