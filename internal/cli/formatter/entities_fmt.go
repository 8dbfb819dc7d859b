package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
)

// FormatBudget renders a budget summary as aligned label/value lines.
func FormatBudget(s domain.BudgetSummary) string {
	remaining := StyleGreen.Render(Money(s.Remaining))
	if s.Remaining < 0 {
		remaining = StyleRed.Render(Money(s.Remaining))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Budget    "), Money(s.Budget)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Spent     "), Money(s.TotalExpenses)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Remaining "), remaining))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Used      "), BudgetUsage(s.PercentageUsed)))
	return b.String()
}

func FormatUsers(users []*domain.User) string {
	if len(users) == 0 {
		return Dim("No users.") + "\n"
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{TruncID(u.ID), Bold(u.Name), u.Email, Dim(u.Role)})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
}

func FormatResources(resources []*domain.Resource) string {
	if len(resources) == 0 {
		return Dim("No resources.") + "\n"
	}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			StylePurple.Render(r.Type.Label()),
			fmt.Sprintf("%s × %g", Money(r.CostPerUnit), r.AllocatedAmount),
			Money(r.TotalCost()),
			Dim(r.Availability),
		})
	}
	return RenderTable([]string{"ID", "NAME", "TYPE", "RATE", "TOTAL", "AVAILABILITY"}, rows)
}

func FormatExpenses(expenses []*domain.Expense) string {
	if len(expenses) == 0 {
		return Dim("No expenses.") + "\n"
	}
	rows := make([][]string, 0, len(expenses))
	var total float64
	for _, e := range expenses {
		linked := ""
		if e.ResourceID != nil {
			linked = Dim("↳ resource")
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			ShortDate(e.Date),
			e.Description,
			StylePurple.Render(string(e.Type)),
			Money(e.Amount),
			linked,
		})
		total += e.Amount
	}
	return RenderTable([]string{"ID", "DATE", "DESCRIPTION", "TYPE", "AMOUNT", ""}, rows) +
		fmt.Sprintf("%s %s\n", Dim("Total"), Bold(Money(total)))
}

func FormatMilestones(milestones []*domain.Milestone, now time.Time) string {
	if len(milestones) == 0 {
		return Dim("No milestones.") + "\n"
	}
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		state := StyleBlue.Render("○ Open")
		due := StyleFg.Render(RelativeDateFrom(m.DueDate, now))
		switch {
		case m.Completed:
			state = StyleDim.Render("✔ Done")
			due = Dim(ShortDate(m.DueDate))
		case m.IsOverdue(now):
			state = StyleRed.Render("● Overdue")
			due = StyleRed.Render(RelativeDateFrom(m.DueDate, now))
		}
		rows = append(rows, []string{TruncID(m.ID), Bold(m.Title), state, due})
	}
	return RenderTable([]string{"ID", "TITLE", "STATE", "DUE"}, rows)
}

func FormatDocuments(docs []*domain.Document) string {
	if len(docs) == 0 {
		return Dim("No documents.") + "\n"
	}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			TruncID(d.ID),
			Dim(d.FolderPath),
			Bold(d.Name),
			fmt.Sprintf("v%d", d.Version),
			DocumentStatusPill(d.Status),
			FileSize(d.FileSize),
		})
	}
	return RenderTable([]string{"ID", "FOLDER", "NAME", "VER", "STATUS", "SIZE"}, rows)
}

// FileSize formats a byte count using binary units.
func FileSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
