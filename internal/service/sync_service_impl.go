package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/importer"
	"github.com/alexanderramin/horizon/internal/remote"
)

// syncConcurrency bounds the number of projects fetched at once.
const syncConcurrency = 4

type syncService struct {
	client   remote.Client
	imports  ImportService
	observer UseCaseObserver
}

func NewSyncService(client remote.Client, imports ImportService, observers ...UseCaseObserver) SyncService {
	return &syncService{client: client, imports: imports, observer: useCaseObserverOrNoop(observers)}
}

type projectDetail struct {
	resources  []importer.ResourceRecord
	milestones []importer.MilestoneRecord
	expenses   []importer.ExpenseRecord
	documents  []importer.DocumentRecord
}

// Pull downloads the backend's portfolio and imports it as one snapshot.
// Per-project details are fetched in parallel; any failed fetch aborts the
// pull before anything is written.
func (s *syncService) Pull(ctx context.Context) (result *app.ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observeUseCase(ctx, s.observer, "sync-pull", startedAt, fields, err) }()

	if !s.client.Available(ctx) {
		return nil, remote.ErrUnavailable
	}

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing remote users: %w", err)
	}
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing remote projects: %w", err)
	}
	fields["projects"] = len(projects)

	details := make([]projectDetail, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	for i, p := range projects {
		g.Go(func() error {
			d, err := s.fetchProject(gctx, p.ID)
			if err != nil {
				return fmt.Errorf("fetching project %q: %w", p.Name, err)
			}
			details[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &importer.Snapshot{Users: users, Projects: projects}
	for _, d := range details {
		snapshot.Resources = append(snapshot.Resources, d.resources...)
		snapshot.Milestones = append(snapshot.Milestones, d.milestones...)
		snapshot.Expenses = append(snapshot.Expenses, d.expenses...)
		snapshot.Documents = append(snapshot.Documents, d.documents...)
	}

	return s.imports.ImportSnapshot(ctx, snapshot)
}

func (s *syncService) fetchProject(ctx context.Context, projectID string) (projectDetail, error) {
	var (
		d  projectDetail
		mu sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rs, err := s.client.ProjectResources(gctx, projectID)
		mu.Lock()
		d.resources = rs
		mu.Unlock()
		return err
	})
	g.Go(func() error {
		ms, err := s.client.ProjectMilestones(gctx, projectID)
		mu.Lock()
		d.milestones = ms
		mu.Unlock()
		return err
	})
	g.Go(func() error {
		es, err := s.client.ProjectExpenses(gctx, projectID)
		mu.Lock()
		d.expenses = es
		mu.Unlock()
		return err
	})
	g.Go(func() error {
		ds, err := s.client.ProjectDocuments(gctx, projectID, domain.RootFolder)
		mu.Lock()
		d.documents = ds
		mu.Unlock()
		return err
	})
	return d, g.Wait()
}

// RemoteStats reads the backend's own dashboard figures.
func (s *syncService) RemoteStats(ctx context.Context) (*app.RemoteStats, error) {
	st, err := s.client.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading remote dashboard: %w", err)
	}
	return &app.RemoteStats{
		BaseURL:           s.client.BaseURL(),
		TotalProjects:     st.TotalProjects,
		ActiveProjects:    st.ActiveProjects,
		TotalExpenses:     st.TotalExpenses,
		OverdueMilestones: st.OverdueMilestones,
	}, nil
}

// RemoteBudget reads the backend's budget summary for a project. Synced
// projects keep the backend's IDs, so a local ID addresses the same record.
func (s *syncService) RemoteBudget(ctx context.Context, projectID string) (*domain.BudgetSummary, error) {
	b, err := s.client.BudgetSummary(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("reading remote budget: %w", err)
	}
	return &domain.BudgetSummary{
		Budget:         b.Budget,
		TotalExpenses:  b.TotalExpenses,
		Remaining:      b.Remaining,
		PercentageUsed: b.PercentageUsed,
	}, nil
}
