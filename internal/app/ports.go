package app

import (
	"context"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/importer"
)

type TimelineUseCase interface {
	GetTimeline(ctx context.Context, req TimelineRequest) (*TimelineResponse, error)
}

type DashboardUseCase interface {
	Stats(ctx context.Context, now time.Time) (*DashboardStats, error)
}

type OverviewUseCase interface {
	Overview(ctx context.Context, projectID string, now time.Time) (*ProjectOverview, error)
}

type ImportResult struct {
	Projects   []*domain.Project
	Users      int
	Resources  int
	Milestones int
	Expenses   int
	Documents  int
}

type ImportSnapshotUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSnapshot(ctx context.Context, snapshot *importer.Snapshot) (*ImportResult, error)
}

type SyncUseCase interface {
	Pull(ctx context.Context) (*ImportResult, error)
	RemoteStats(ctx context.Context) (*RemoteStats, error)
	RemoteBudget(ctx context.Context, projectID string) (*domain.BudgetSummary, error)
}
