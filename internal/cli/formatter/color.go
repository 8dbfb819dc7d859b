package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BandColor returns the color a timeline band is drawn in.
func BandColor(b timeline.Band) lipgloss.Color {
	switch b {
	case timeline.BandOverdue:
		return ColorRed
	case timeline.BandDanger:
		return ColorOrange
	case timeline.BandHealthyHigh:
		return ColorGreen
	case timeline.BandHealthyMid:
		return ColorBlue
	default:
		return ColorDim
	}
}

// BandStyle returns the foreground style for a timeline band.
func BandStyle(b timeline.Band) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(BandColor(b))
}

// BandIndicator returns a colored indicator such as "● OVERDUE".
func BandIndicator(b timeline.Band) string {
	switch b {
	case timeline.BandOverdue:
		return StyleRed.Render("● OVERDUE")
	case timeline.BandDanger:
		return StyleOrange.Render("● NEAR DEADLINE")
	default:
		return BandStyle(b).Render("● ON TRACK")
	}
}

// StagePill returns a colored lifecycle stage label.
func StagePill(stage domain.ProjectStage) string {
	label := capitalize(string(stage))
	switch stage {
	case domain.StageInitiation, domain.StagePlanning:
		return StyleBlue.Render("○ " + label)
	case domain.StageExecution, domain.StageMonitoring:
		return StyleGreen.Render("● " + label)
	case domain.StageClosing:
		return StyleYellow.Render("◐ " + label)
	case domain.StageClosed:
		return StyleDim.Render("✔ " + label)
	default:
		return StyleDim.Render(string(stage))
	}
}

// DocumentStatusPill returns a colored document approval status.
func DocumentStatusPill(status domain.DocumentStatus) string {
	switch status {
	case domain.DocumentApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.DocumentPendingApproval:
		return StyleYellow.Render("◐ Pending")
	case domain.DocumentRejected:
		return StyleRed.Render("✖ Rejected")
	default:
		return StyleDim.Render("○ Draft")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
