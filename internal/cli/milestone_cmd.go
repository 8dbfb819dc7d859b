package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage project milestones",
	}

	var title, description, due string
	add := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			dueDate, err := parseDate("due", due)
			if err != nil {
				return err
			}
			m := &domain.Milestone{
				ProjectID:   projectID,
				Title:       title,
				Description: description,
				DueDate:     dueDate,
			}
			if err := app.Milestones.Create(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added milestone %s due %s\n", m.Title, formatter.ShortDate(m.DueDate))
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "Milestone title")
	add.Flags().StringVar(&description, "description", "", "Description")
	add.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("due")

	list := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			milestones, err := app.Milestones.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMilestones(milestones, app.now()))
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a milestone completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Milestones.Complete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Milestone completed.")
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Milestones.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Milestone removed.")
			return nil
		},
	}

	cmd.AddCommand(add, list, done, remove)
	return cmd
}
