package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var watch, fromRemote bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show portfolio stats and at-risk counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				if !app.interactive() {
					return fmt.Errorf("--watch needs an interactive terminal")
				}
				p := tea.NewProgram(
					newDashboardModel(app),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
				_, err := p.Run()
				return err
			}

			ctx := context.Background()
			view, err := loadDashboard(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), view.render())
			if !fromRemote {
				return nil
			}

			sync, err := app.syncUseCase()
			if err != nil {
				return err
			}
			stats, err := sync.RemoteStats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), "\n"+formatter.FormatRemoteStats(stats)+"\n")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep the dashboard open and refresh it periodically")
	cmd.Flags().BoolVar(&fromRemote, "remote", false, "Also show the remote backend's stats")
	cmd.MarkFlagsMutuallyExclusive("watch", "remote")
	return cmd
}

func newOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview PROJECT",
		Short: "Show a project's timeline, budget, resources, milestones and documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			now := app.now()
			ov, err := app.Overview.Overview(ctx, projectID, now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverview(ov, now))
			return nil
		},
	}
}
