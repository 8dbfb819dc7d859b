package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage project resources",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceUpdateCmd(app),
		newResourceRemoveCmd(app),
	)

	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var name, resType, availability, description string
	var cost, allocated float64

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a resource; its total cost is booked as an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			r := &domain.Resource{
				ProjectID:       projectID,
				Name:            name,
				Type:            domain.ResourceType(resType),
				CostPerUnit:     cost,
				AllocatedAmount: allocated,
				Availability:    availability,
				Description:     description,
			}
			booked, err := app.Resources.Create(ctx, r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s %s\n", r.Type.Label(), r.Name)
			if booked != nil {
				fmt.Fprintf(out, "Booked expense %q for %s\n", booked.Description, formatter.Money(booked.Amount))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Resource name")
	cmd.Flags().StringVar(&resType, "type", string(domain.ResourceTeamMember), "team_member, vendor, equipment or material")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Cost per unit")
	cmd.Flags().Float64Var(&allocated, "allocated", 0, "Allocated units")
	cmd.Flags().StringVar(&availability, "availability", "", "Availability note")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resources, err := app.Resources.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResources(resources))
			return nil
		},
	}
}

func newResourceUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a resource; its booked expense follows the new cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd, err := resourceUpdateFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			r, err := app.Resources.Update(context.Background(), args[0], upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s (%s)\n", r.Type.Label(), r.Name, formatter.Money(r.TotalCost()))
			return nil
		},
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("type", "", "team_member, vendor, equipment or material")
	cmd.Flags().String("cost", "", "New cost per unit")
	cmd.Flags().String("allocated", "", "New allocated units")
	cmd.Flags().String("availability", "", "New availability note")
	cmd.Flags().String("description", "", "New description")

	return cmd
}

func resourceUpdateFromFlags(flags *pflag.FlagSet) (service.ResourceUpdate, error) {
	var upd service.ResourceUpdate
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "name":
			upd.Name = &v
		case "type":
			t := domain.ResourceType(v)
			upd.Type = &t
		case "availability":
			upd.Availability = &v
		case "description":
			upd.Description = &v
		case "cost", "allocated":
			var n float64
			if n, err = parseAmount(f.Name, v); err != nil {
				return
			}
			if f.Name == "cost" {
				upd.CostPerUnit = &n
			} else {
				upd.AllocatedAmount = &n
			}
		}
	})
	return upd, err
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a resource and the expenses linked to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Resources.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Resource removed.")
			return nil
		},
	}
}
