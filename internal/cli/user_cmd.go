package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var name, email, role string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{Name: name, Email: email, Role: role}
			if err := app.Users.Create(context.Background(), u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %s (%s)\n", u.Name, u.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Full name")
	add.Flags().StringVar(&email, "email", "", "Email address")
	add.Flags().StringVar(&role, "role", "", "Role (default "+domain.DefaultUserRole+")")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("email")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUsers(users))
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
