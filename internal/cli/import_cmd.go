package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON portfolio snapshot",
		Long: "Import a JSON portfolio snapshot. Records are upserted by id, so\n" +
			"importing the same snapshot twice updates rather than duplicates them.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.importUseCase().ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatImportResult("Imported", result))
			return nil
		},
	}
}

func newSyncCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the portfolio from the configured remote backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync, err := a.syncUseCase()
			if err != nil {
				return err
			}
			result, err := sync.Pull(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatImportResult("Synced", result))
			return nil
		},
	}
}

func formatImportResult(verb string, r *app.ImportResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %d projects, %d resources, %d milestones, %d expenses, %d documents, %d users\n",
		formatter.StyleGreen.Render("✔"), verb,
		len(r.Projects), r.Resources, r.Milestones, r.Expenses, r.Documents, r.Users))
	for _, p := range r.Projects {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			formatter.StyleGreen.Render(p.DisplayID()),
			p.Name))
	}
	return b.String()
}
