package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/app"
)

// FormatDashboard renders the portfolio stats box.
func FormatDashboard(s *app.DashboardStats) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("%-20s %s\n", Dim(label), value))
	}

	line("Projects", fmt.Sprintf("%d total, %d active", s.TotalProjects, s.ActiveProjects))
	line("Total expenses", Bold(Money(s.TotalExpenses)))

	overdueMs := StyleGreen.Render("0")
	if s.OverdueMilestones > 0 {
		overdueMs = StyleRed.Render(fmt.Sprintf("%d", s.OverdueMilestones))
	}
	line("Overdue milestones", overdueMs)

	atRisk := StyleGreen.Render("0")
	if s.Risk.AtRisk() > 0 {
		atRisk = StyleRed.Render(fmt.Sprintf("%d", s.Risk.AtRisk())) +
			Dim(fmt.Sprintf(" (%d overdue, %d near deadline)", s.Risk.Overdue, s.Risk.NearDeadline))
	}
	line("At risk", atRisk)

	content := strings.TrimRight(b.String(), "\n") + "\n\n" +
		Dim("Updated "+s.GeneratedAt.Format("2006-01-02 15:04:05"))
	return RenderBox("Dashboard", content)
}

// FormatRemoteStats renders the backend's own portfolio figures.
func FormatRemoteStats(s *app.RemoteStats) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("%-20s %s\n", Dim(label), value))
	}
	line("Projects", fmt.Sprintf("%d total, %d active", s.TotalProjects, s.ActiveProjects))
	line("Total expenses", Bold(Money(s.TotalExpenses)))
	overdueMs := StyleGreen.Render("0")
	if s.OverdueMilestones > 0 {
		overdueMs = StyleRed.Render(fmt.Sprintf("%d", s.OverdueMilestones))
	}
	line("Overdue milestones", overdueMs)

	content := strings.TrimRight(b.String(), "\n") + "\n\n" + Dim("From "+s.BaseURL)
	return RenderBox("Remote", content)
}
