package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newExpenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Track project expenses",
	}

	cmd.AddCommand(
		newExpenseAddCmd(app),
		newExpenseListCmd(app),
		newExpenseUpdateCmd(app),
		newExpenseRemoveCmd(app),
	)

	return cmd
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var description, expType, date string
	var amount float64
	var resourceName, resourceType string
	var cost, allocated float64

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Record an expense",
		Long: "Record an expense. With --resource a new resource is created and the\n" +
			"expense is linked to it; description and amount default to the resource's.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			e := &domain.Expense{
				ProjectID:   projectID,
				Description: description,
				Amount:      amount,
				Type:        domain.ExpenseType(expType),
			}
			if date != "" {
				if e.Date, err = parseDate("expense", date); err != nil {
					return err
				}
			}

			if resourceName != "" {
				if !cmd.Flags().Changed("type") {
					e.Type = ""
				}
				r := &domain.Resource{
					ProjectID:       projectID,
					Name:            resourceName,
					Type:            domain.ResourceType(resourceType),
					CostPerUnit:     cost,
					AllocatedAmount: allocated,
				}
				if err := app.Expenses.CreateWithResource(ctx, e, r); err != nil {
					return err
				}
			} else if err := app.Expenses.Create(ctx, e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s\n", formatter.Money(e.Amount), e.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "What the money was spent on")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&expType, "type", string(domain.ExpenseOther), "resource, vendor, equipment, material or other")
	cmd.Flags().StringVar(&date, "date", "", "Expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&resourceName, "resource", "", "Create and link a resource with this name")
	cmd.Flags().StringVar(&resourceType, "resource-type", string(domain.ResourceTeamMember), "Type of the linked resource")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Linked resource cost per unit")
	cmd.Flags().Float64Var(&allocated, "allocated", 0, "Linked resource allocated units")

	return cmd
}

func newExpenseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			expenses, err := app.Expenses.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExpenses(expenses))
			return nil
		},
	}
}

func newExpenseUpdateCmd(app *App) *cobra.Command {
	var description, expType, date string
	var amount float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an expense; a linked resource follows the change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Expense{
				ID:          args[0],
				Description: description,
				Amount:      amount,
				Type:        domain.ExpenseType(expType),
			}
			if date != "" {
				var err error
				if e.Date, err = parseDate("expense", date); err != nil {
					return err
				}
			}
			if err := app.Expenses.Update(context.Background(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated expense %s\n", e.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount")
	cmd.Flags().StringVar(&expType, "type", string(domain.ExpenseOther), "Expense type")
	cmd.Flags().StringVar(&date, "date", "", "Expense date (YYYY-MM-DD, default unchanged)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newExpenseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an expense; a linked resource is removed with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Expenses.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Expense removed.")
			return nil
		},
	}
}

func newBudgetCmd(app *App) *cobra.Command {
	var fromRemote bool

	cmd := &cobra.Command{
		Use:   "budget PROJECT",
		Short: "Show budget, spend and remaining budget for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			summary, err := app.Expenses.BudgetSummary(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBudget(*summary))
			if !fromRemote {
				return nil
			}

			sync, err := app.syncUseCase()
			if err != nil {
				return err
			}
			remoteSummary, err := sync.RemoteBudget(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n%s", formatter.Bold("Remote"), formatter.FormatBudget(*remoteSummary))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromRemote, "remote", false, "Also show the remote backend's figures")
	return cmd
}
