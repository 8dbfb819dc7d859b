package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/timeline"
)

// FormatProjectList renders projects as a table with their timeline at now.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	headers := []string{"ID", "NAME", "STAGE", "BUDGET", "PROGRESS", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		st := p.Timeline(now)
		rows = append(rows, []string{
			StyleGreen.Render(p.DisplayID()),
			Bold(Truncate(p.Name, 32)),
			StagePill(p.Stage),
			Money(p.Budget),
			RenderStatusProgress(st, 10),
			BandStyle(timeline.Classify(st)).Render(st.Badge()),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectInspect renders the detail block for one project.
func FormatProjectInspect(p *domain.Project, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Bold(p.Name), StyleGreen.Render("["+p.DisplayID()+"]")))
	b.WriteString(StagePill(p.Stage) + "\n\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	b.WriteString(fmt.Sprintf("%s %s → %s\n", Dim("Window "), ShortDate(p.StartDate), ShortDate(p.EndDate)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Budget "), Money(p.Budget)))
	if p.ManagerID != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Manager"), p.ManagerID))
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("ID     "), TruncID(p.ID)))
	b.WriteString(FormatTimelineStatus(p.Timeline(now)))
	return RenderBox("Project", strings.TrimRight(b.String(), "\n"))
}

// FormatOverview renders a full project overview.
func FormatOverview(ov *app.ProjectOverview, now time.Time) string {
	var b strings.Builder
	b.WriteString(FormatProjectInspect(ov.Project, now))
	b.WriteString("\n\n")
	b.WriteString(Header("Budget") + "\n")
	b.WriteString(FormatBudget(ov.Budget))
	b.WriteString("\n" + Header("Milestones") + "\n")
	b.WriteString(FormatMilestones(ov.Milestones, now))
	b.WriteString("\n" + Header("Resources") + "\n")
	b.WriteString(FormatResources(ov.Resources))
	b.WriteString("\n" + Header("Expenses") + "\n")
	b.WriteString(FormatExpenses(ov.Expenses))
	b.WriteString("\n" + Header("Documents") + "\n")
	b.WriteString(FormatDocuments(ov.Documents))
	return b.String()
}
