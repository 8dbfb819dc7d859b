package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectStageCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var v projectFormValues
	var manager string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		Long:  "Create a new project. Run without flags in a terminal to fill in a form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") {
				if !app.interactive() {
					return fmt.Errorf("--name, --start and --end are required")
				}
				if err := projectForm(&v).Run(); err != nil {
					return err
				}
			}

			p, err := v.toProject()
			if err != nil {
				return err
			}
			p.ManagerID = manager

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&v.ShortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. WEB01)")
	cmd.Flags().StringVar(&v.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&v.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&v.Stage, "stage", "", "Lifecycle stage (default initiation)")
	cmd.Flags().StringVar(&v.Start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&v.End, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&v.Budget, "budget", "", "Budget amount")
	cmd.Flags().StringVar(&manager, "manager", "", "Manager user ID")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}

			fmt.Fprint(out, formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include closed projects")

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Resolve(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectInspect(p, app.now()))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			upd, err := projectUpdateFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			p, err := app.Projects.Update(ctx, projectID, upd)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().String("id", "", "New short ID")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().String("budget", "", "New budget")
	cmd.Flags().String("manager", "", "New manager user ID")

	return cmd
}

// projectUpdateFromFlags builds a partial update from the flags that were
// explicitly set; untouched fields stay nil.
func projectUpdateFromFlags(flags *pflag.FlagSet) (service.ProjectUpdate, error) {
	var upd service.ProjectUpdate
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "id":
			upd.ShortID = &v
		case "name":
			upd.Name = &v
		case "description":
			upd.Description = &v
		case "manager":
			upd.ManagerID = &v
		case "start", "end":
			var t time.Time
			if t, err = parseDate(f.Name, v); err != nil {
				return
			}
			if f.Name == "start" {
				upd.StartDate = &t
			} else {
				upd.EndDate = &t
			}
		case "budget":
			var b float64
			if b, err = parseAmount("budget", v); err != nil {
				return
			}
			upd.Budget = &b
		}
	})
	return upd, err
}

func newProjectStageCmd(app *App) *cobra.Command {
	stages := make([]string, len(domain.ProjectStages))
	for i, st := range domain.ProjectStages {
		stages[i] = string(st)
	}

	return &cobra.Command{
		Use:       "stage ID STAGE",
		Short:     "Move a project to another lifecycle stage",
		Long:      "Move a project to another lifecycle stage: " + strings.Join(stages, ", "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: stages,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.UpdateStage(ctx, projectID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", p.Name, formatter.StagePill(p.Stage))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force, yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				title := fmt.Sprintf("Delete %s and all its resources, expenses, milestones and documents?", p.Name)
				if err := wizardConfirm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, p.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the project is not closed")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
