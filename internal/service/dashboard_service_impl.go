package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/repository"
	"github.com/alexanderramin/horizon/internal/timeline"
)

type dashboardService struct {
	projects   repository.ProjectRepo
	expenses   repository.ExpenseRepo
	milestones repository.MilestoneRepo
}

func NewDashboardService(
	projects repository.ProjectRepo,
	expenses repository.ExpenseRepo,
	milestones repository.MilestoneRepo,
) DashboardService {
	return &dashboardService{projects: projects, expenses: expenses, milestones: milestones}
}

// Stats summarises the whole portfolio at now. Risk counts cover every
// project, closed ones included, so the totals line up with TotalProjects.
func (s *dashboardService) Stats(ctx context.Context, now time.Time) (*app.DashboardStats, error) {
	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	total, err := s.expenses.SumAll(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.milestones.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	stats := &app.DashboardStats{
		GeneratedAt:       now,
		TotalProjects:     len(projects),
		TotalExpenses:     total,
		OverdueMilestones: overdue,
	}
	windows := make([]timeline.Window, 0, len(projects))
	for _, p := range projects {
		if p.IsActive() {
			stats.ActiveProjects++
		}
		windows = append(windows, p.Window())
	}
	stats.Risk = timeline.Tally(windows, now)
	return stats, nil
}
