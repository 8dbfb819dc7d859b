package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/importer"
)

// ProjectUpdate carries a partial project edit; nil fields are left unchanged.
type ProjectUpdate struct {
	ShortID     *string
	Name        *string
	Description *string
	Stage       *domain.ProjectStage
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	ManagerID   *string
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve finds a project by short ID, full ID, or unambiguous ID prefix.
	Resolve(ctx context.Context, input string) (*domain.Project, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Project, error)
	Update(ctx context.Context, id string, upd ProjectUpdate) (*domain.Project, error)
	UpdateStage(ctx context.Context, id string, stage string) (*domain.Project, error)
	Delete(ctx context.Context, id string, force bool) error
}

type UserService interface {
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}

// ResourceUpdate carries a partial resource edit; nil fields are left unchanged.
type ResourceUpdate struct {
	Name            *string
	Type            *domain.ResourceType
	CostPerUnit     *float64
	AllocatedAmount *float64
	Availability    *string
	Description     *string
}

type ResourceService interface {
	// Create stores the resource and, when it carries a cost, the expense
	// that books it.
	Create(ctx context.Context, r *domain.Resource) (*domain.Expense, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Resource, error)
	// Update edits the resource and re-books its linked expenses.
	Update(ctx context.Context, id string, upd ResourceUpdate) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseService interface {
	Create(ctx context.Context, e *domain.Expense) error
	CreateWithResource(ctx context.Context, e *domain.Expense, r *domain.Resource) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id string) error
	BudgetSummary(ctx context.Context, projectID string) (*domain.BudgetSummary, error)
}

type MilestoneService interface {
	Create(ctx context.Context, m *domain.Milestone) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error)
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// UploadRequest describes a local file to store as a project document.
type UploadRequest struct {
	ProjectID  string
	SourcePath string
	Name       string
	FolderPath string
	UploadedBy string
}

type DocumentService interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)
	List(ctx context.Context, projectID, folder string) ([]*domain.Document, error)
	Approve(ctx context.Context, id, approvedBy string) (*domain.Document, error)
	// Download writes the stored file to w and returns its metadata.
	Download(ctx context.Context, id string, w io.Writer) (*domain.Document, error)
}

type TimelineService interface {
	GetTimeline(ctx context.Context, req app.TimelineRequest) (*app.TimelineResponse, error)
}

type DashboardService interface {
	Stats(ctx context.Context, now time.Time) (*app.DashboardStats, error)
}

type OverviewService interface {
	Overview(ctx context.Context, projectID string, now time.Time) (*app.ProjectOverview, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportSnapshot(ctx context.Context, snapshot *importer.Snapshot) (*app.ImportResult, error)
}

type SyncService interface {
	// Pull imports the backend's portfolio. It fails with
	// remote.ErrUnavailable before fetching anything when the backend
	// does not answer its health check.
	Pull(ctx context.Context) (*app.ImportResult, error)
	RemoteStats(ctx context.Context) (*app.RemoteStats, error)
	RemoteBudget(ctx context.Context, projectID string) (*domain.BudgetSummary, error)
}
