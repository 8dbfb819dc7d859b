package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/timeline"
)

const timelineBarWidth = 12

// FormatTimeline renders the timeline dashboard: one row per project in
// attention order followed by the risk summary.
func FormatTimeline(resp *app.TimelineResponse) string {
	if len(resp.Projects) == 0 {
		return Dim("No projects found.") + "\n"
	}

	var b strings.Builder
	headers := []string{"ID", "NAME", "STAGE", "PROGRESS", "STATUS", "END"}
	rows := make([][]string, 0, len(resp.Projects))
	for _, v := range resp.Projects {
		rows = append(rows, []string{
			StyleGreen.Render(v.DisplayID),
			Bold(Truncate(v.ProjectName, 32)),
			StagePill(v.Stage),
			RenderProgress(v.Status.ProgressPct, timelineBarWidth, v.Band),
			BandStyle(v.Band).Render(v.Badge),
			ShortDate(v.EndDate),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(FormatTimelineSummary(resp.Summary))
	return b.String()
}

// FormatTimelineSummary renders the counts line and policy message.
func FormatTimelineSummary(s app.TimelineSummary) string {
	overdue := StyleRed.Render(fmt.Sprintf("%d Overdue", s.Risk.Overdue))
	near := StyleOrange.Render(fmt.Sprintf("%d Near Deadline", s.Risk.NearDeadline))
	healthy := StyleGreen.Render(fmt.Sprintf("%d On Track", s.CountsHealthy))

	policy := StyleGreen.Render(s.PolicyMessage)
	if s.Risk.AtRisk() > 0 {
		policy = StyleYellow.Render(s.PolicyMessage)
	}

	return fmt.Sprintf("%s  %s  %s  %s\n%s\n",
		overdue, near, healthy,
		Dim(fmt.Sprintf("(%d total, as of %s)", s.CountsTotal, s.GeneratedAt.Format("2006-01-02 15:04"))),
		policy,
	)
}

// FormatTimelineStatus renders a single status as a labelled block, used by
// project inspect and overview.
func FormatTimelineStatus(st timeline.Status) string {
	band := timeline.Classify(st)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", RenderProgress(st.ProgressPct, 24, band), BandIndicator(band)))
	b.WriteString(fmt.Sprintf("%s %d/%dd  %s\n",
		Dim("Elapsed"), max(st.DaysElapsed, 0), st.DaysTotal, BandStyle(band).Render(st.Long())))
	return b.String()
}
