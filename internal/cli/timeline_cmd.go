package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(a *App) *cobra.Command {
	var scope []string
	var at string
	var all bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show time-based progress and deadline risk for active projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewTimelineRequest()
			req.ProjectScope = scope
			req.IncludeClosed = all

			now := a.now()
			if at != "" {
				var err error
				if now, err = parseDate("at", at); err != nil {
					return err
				}
			}
			req.Now = &now

			resp, err := a.timelineUseCase().GetTimeline(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(resp))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&scope, "project", "p", nil, "Limit to a project by ID or short ID (repeatable)")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&all, "all", false, "Include closing and closed projects")

	return cmd
}
