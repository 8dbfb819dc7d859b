package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/timeline"
	"github.com/stretchr/testify/assert"
)

func TestFormatTimeline(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	overdue := timeline.Status{ProgressPct: 100, IsOverdue: true, DaysOverdue: 31}
	healthy := timeline.Status{ProgressPct: 50, DaysRemaining: 92}

	resp := &app.TimelineResponse{
		Summary: app.TimelineSummary{
			GeneratedAt:   now,
			CountsTotal:   2,
			CountsHealthy: 1,
			Risk:          timeline.RiskCounts{Overdue: 1},
			PolicyMessage: "1 overdue, review end dates",
		},
		Projects: []app.ProjectTimelineView{
			{DisplayID: "LATE01", ProjectName: "Late One", Stage: domain.StageExecution,
				EndDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Status: overdue,
				Band: timeline.BandOverdue, Badge: overdue.Badge()},
			{DisplayID: "HALF01", ProjectName: "Halfway", Stage: domain.StagePlanning,
				EndDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), Status: healthy,
				Band: timeline.BandHealthyMid, Badge: healthy.Badge()},
		},
	}

	out := stripANSI(FormatTimeline(resp))
	assert.Contains(t, out, "LATE01")
	assert.Contains(t, out, "31d overdue")
	assert.Contains(t, out, "92d left")
	assert.Contains(t, out, "Execution")
	assert.Contains(t, out, "2024-05-01")
	assert.Contains(t, out, "1 Overdue")
	assert.Contains(t, out, "0 Near Deadline")
	assert.Contains(t, out, "1 On Track")
	assert.Contains(t, out, "1 overdue, review end dates")
	assert.Less(t, strings.Index(out, "LATE01"), strings.Index(out, "HALF01"), "rows keep response order")
}

func TestFormatTimeline_Empty(t *testing.T) {
	out := stripANSI(FormatTimeline(&app.TimelineResponse{}))
	assert.Equal(t, "No projects found.\n", out)
}

func TestFormatTimelineStatus(t *testing.T) {
	st := timeline.Compute(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	)
	out := stripANSI(FormatTimelineStatus(st))
	assert.Contains(t, out, "NEAR DEADLINE")
	assert.Contains(t, out, "0 days remaining")
	assert.Contains(t, out, " 95%")
}

func TestFormatDashboard(t *testing.T) {
	out := stripANSI(FormatDashboard(&app.DashboardStats{
		GeneratedAt:       time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		TotalProjects:     5,
		ActiveProjects:    4,
		TotalExpenses:     12500,
		OverdueMilestones: 2,
		Risk:              timeline.RiskCounts{Overdue: 1, NearDeadline: 2},
	}))
	assert.Contains(t, out, "DASHBOARD")
	assert.Contains(t, out, "5 total, 4 active")
	assert.Contains(t, out, "$12,500.00")
	assert.Contains(t, out, "(1 overdue, 2 near deadline)")
	assert.Contains(t, out, "2024-06-01 09:30:00")
}

func TestFormatBudget_OverBudget(t *testing.T) {
	out := stripANSI(FormatBudget(domain.NewBudgetSummary(1000, 1250)))
	assert.Contains(t, out, "-$250.00")
	assert.Contains(t, out, "125.0%")
}

func TestStagePill(t *testing.T) {
	assert.Equal(t, "● Execution", stripANSI(StagePill(domain.StageExecution)))
	assert.Equal(t, "✔ Closed", stripANSI(StagePill(domain.StageClosed)))
}
