package app

import (
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/timeline"
)

// DashboardStats is the portfolio-wide summary shown on the dashboard.
type DashboardStats struct {
	GeneratedAt       time.Time
	TotalProjects     int
	ActiveProjects    int
	TotalExpenses     float64
	OverdueMilestones int
	Risk              timeline.RiskCounts
}

// RemoteStats is the summary the remote backend reports for its own
// portfolio. The backend has no notion of timeline risk.
type RemoteStats struct {
	BaseURL           string
	TotalProjects     int
	ActiveProjects    int
	TotalExpenses     float64
	OverdueMilestones int
}

// ProjectOverview gathers everything shown for a single project.
type ProjectOverview struct {
	Project    *domain.Project
	Timeline   timeline.Status
	Band       timeline.Band
	Budget     domain.BudgetSummary
	Resources  []*domain.Resource
	Milestones []*domain.Milestone
	Expenses   []*domain.Expense
	Documents  []*domain.Document
}
