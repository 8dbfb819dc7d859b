package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// horizonHuhTheme returns a custom huh theme using the formatter's Gruvbox palette.
func horizonHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectFormValues collects the raw strings entered in the project form.
type projectFormValues struct {
	Name        string
	ShortID     string
	Description string
	Stage       string
	Start       string
	End         string
	Budget      string
}

// projectForm builds the interactive form used by `project add`.
func projectForm(v *projectFormValues) *huh.Form {
	stageOptions := make([]huh.Option[string], 0, len(domain.ProjectStages))
	for _, st := range domain.ProjectStages {
		stageOptions = append(stageOptions, huh.NewOption(string(st), string(st)))
	}
	if v.Stage == "" {
		v.Stage = string(domain.StageInitiation)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateRequired),
			huh.NewInput().Title("Short ID (e.g. WEB01, blank for none)").Value(&v.ShortID).Validate(validateShortID),
			huh.NewText().Title("Description").Value(&v.Description),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Stage").Options(stageOptions...).Value(&v.Stage),
			dateInput("Start Date (YYYY-MM-DD)", &v.Start),
			dateInput("End Date (YYYY-MM-DD)", &v.End),
			huh.NewInput().Title("Budget").Placeholder("0").Value(&v.Budget).Validate(validateOptionalAmount),
		),
	).WithTheme(horizonHuhTheme()).WithShowHelp(false)
}

// dateInput returns a huh.Input for a required date field with YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(time.Now().Format(dateLayout)).
		Value(value).
		Validate(validateRequiredDate)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(horizonHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateShortID(s string) error {
	p := domain.Project{ShortID: strings.ToUpper(strings.TrimSpace(s))}
	return p.ValidateShortID()
}

// validateRequiredDate accepts a YYYY-MM-DD date string.
func validateRequiredDate(s string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalAmount accepts empty or a non-negative number.
func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// toProject converts validated form values into a project.
func (v *projectFormValues) toProject() (*domain.Project, error) {
	start, err := parseDate("start", v.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end", v.End)
	if err != nil {
		return nil, err
	}
	var budget float64
	if strings.TrimSpace(v.Budget) != "" {
		if budget, err = parseAmount("budget", v.Budget); err != nil {
			return nil, err
		}
	}
	return &domain.Project{
		Name:        strings.TrimSpace(v.Name),
		ShortID:     strings.ToUpper(strings.TrimSpace(v.ShortID)),
		Description: strings.TrimSpace(v.Description),
		Stage:       domain.ProjectStage(v.Stage),
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
	}, nil
}
