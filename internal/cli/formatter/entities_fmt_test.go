package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatDashboard_NoRisk(t *testing.T) {
	out := stripANSI(FormatDashboard(&app.DashboardStats{}))
	assert.NotContains(t, out, "near deadline")
}

func TestFormatBudget_UnderBudget(t *testing.T) {
	out := stripANSI(FormatBudget(domain.NewBudgetSummary(10000, 2500)))
	assert.Contains(t, out, "$7,500.00")
	assert.Contains(t, out, "25.0%")
}

func TestFormatMilestones_States(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	done := now.AddDate(0, 0, -3)
	ms := []*domain.Milestone{
		{ID: "m-1", Title: "Kickoff", DueDate: now.AddDate(0, 0, -10), Completed: true, CompletedDate: &done},
		{ID: "m-2", Title: "Beta", DueDate: now.AddDate(0, 0, -2)},
		{ID: "m-3", Title: "Launch", DueDate: now.AddDate(0, 1, 0)},
	}

	out := stripANSI(FormatMilestones(ms, now))
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "Overdue")
	assert.Contains(t, out, "Open")
}

func TestFormatEmptyLists(t *testing.T) {
	assert.Contains(t, FormatUsers(nil), "No users.")
	assert.Contains(t, FormatResources(nil), "No resources.")
	assert.Contains(t, FormatExpenses(nil), "No expenses.")
	assert.Contains(t, FormatDocuments(nil), "No documents.")
}
