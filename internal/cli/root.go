package cli

import (
	"time"

	"github.com/alexanderramin/horizon/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects   service.ProjectService
	Users      service.UserService
	Resources  service.ResourceService
	Expenses   service.ExpenseService
	Milestones service.MilestoneService
	Documents  service.DocumentService
	Timeline   service.TimelineService
	Dashboard  service.DashboardService
	Overview   service.OverviewService
	Import     service.ImportService
	// Sync is nil when no remote backend is configured.
	Sync service.SyncService

	// IsInteractive reports whether stdin is a terminal; forms are only
	// offered when it returns true.
	IsInteractive func() bool
	// Now overrides the wall clock for timeline rendering.
	Now func() time.Time
	// RefreshInterval is how often `dashboard --watch` recomputes.
	RefreshInterval time.Duration
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "horizon" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "horizon",
		Short:         "Project portfolio tracker with timeline risk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newUserCmd(app),
		newResourceCmd(app),
		newExpenseCmd(app),
		newBudgetCmd(app),
		newMilestoneCmd(app),
		newDocCmd(app),
		newTimelineCmd(app),
		newDashboardCmd(app),
		newOverviewCmd(app),
		newImportCmd(app),
		newSyncCmd(app),
	)

	return root
}
