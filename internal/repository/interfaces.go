package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Upsert(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Resource, error)
	Update(ctx context.Context, r *domain.Resource) error
	Upsert(ctx context.Context, r *domain.Resource) error
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Complete(ctx context.Context, id string, at time.Time) error
	CountOverdue(ctx context.Context, now time.Time) (int, error)
	Upsert(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type ExpenseRepo interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Upsert(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id string) error
	SumByProject(ctx context.Context, projectID string) (float64, error)
	SumAll(ctx context.Context) (float64, error)
}

type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByProject(ctx context.Context, projectID, folder string) ([]*domain.Document, error)
	CountVersions(ctx context.Context, projectID, folder, name string) (int, error)
	Approve(ctx context.Context, id, approvedBy string, at time.Time) error
	Upsert(ctx context.Context, d *domain.Document) error
}
