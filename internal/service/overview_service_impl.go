package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/timeline"
)

type overviewService struct {
	projects   repository.ProjectRepo
	resources  repository.ResourceRepo
	milestones repository.MilestoneRepo
	expenses   repository.ExpenseRepo
	documents  repository.DocumentRepo
	observer   UseCaseObserver
}

func NewOverviewService(
	projects repository.ProjectRepo,
	resources repository.ResourceRepo,
	milestones repository.MilestoneRepo,
	expenses repository.ExpenseRepo,
	documents repository.DocumentRepo,
	observers ...UseCaseObserver,
) OverviewService {
	return &overviewService{
		projects:   projects,
		resources:  resources,
		milestones: milestones,
		expenses:   expenses,
		documents:  documents,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Overview loads a project and fetches its related records in parallel.
// Any failed read fails the whole overview.
func (s *overviewService) Overview(ctx context.Context, projectID string, now time.Time) (ov *app.ProjectOverview, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID}
	defer func() { observeUseCase(ctx, s.observer, "project-overview", startedAt, fields, err) }()

	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	st := p.Timeline(now)
	ov = &app.ProjectOverview{
		Project:  p,
		Timeline: st,
		Band:     timeline.Classify(st),
	}

	var spent float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ov.Resources, err = s.resources.ListByProject(gctx, p.ID)
		return wrapIf(err, "loading resources")
	})
	g.Go(func() (err error) {
		ov.Milestones, err = s.milestones.ListByProject(gctx, p.ID)
		return wrapIf(err, "loading milestones")
	})
	g.Go(func() (err error) {
		ov.Expenses, err = s.expenses.ListByProject(gctx, p.ID)
		return wrapIf(err, "loading expenses")
	})
	g.Go(func() (err error) {
		spent, err = s.expenses.SumByProject(gctx, p.ID)
		return wrapIf(err, "summing expenses")
	})
	g.Go(func() (err error) {
		ov.Documents, err = s.documents.ListByProject(gctx, p.ID, domain.RootFolder)
		return wrapIf(err, "loading documents")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov.Budget = domain.NewBudgetSummary(p.Budget, spent)
	fields["resources"] = len(ov.Resources)
	fields["milestones"] = len(ov.Milestones)
	return ov, nil
}

func wrapIf(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
