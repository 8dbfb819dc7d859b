package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/spf13/cobra"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"document"},
		Short:   "Manage versioned project documents",
	}

	cmd.AddCommand(
		newDocUploadCmd(app),
		newDocListCmd(app),
		newDocApproveCmd(app),
		newDocDownloadCmd(app),
	)

	return cmd
}

func newDocUploadCmd(app *App) *cobra.Command {
	var name, folder, by string

	cmd := &cobra.Command{
		Use:   "upload PROJECT FILE",
		Short: "Upload a file; re-uploading the same name bumps its version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			doc, err := app.Documents.Upload(ctx, service.UploadRequest{
				ProjectID:  projectID,
				SourcePath: args[1],
				Name:       name,
				FolderPath: folder,
				UploadedBy: by,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s v%d to %s (%s)\n",
				doc.Name, doc.Version, doc.FolderPath, formatter.FileSize(doc.FileSize))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Document name (default: file name)")
	cmd.Flags().StringVar(&folder, "folder", domain.RootFolder, "Folder path")
	cmd.Flags().StringVar(&by, "by", "", "Uploader")

	return cmd
}

func newDocListCmd(app *App) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List documents in a project folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			docs, err := app.Documents.List(ctx, projectID, folder)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocuments(docs))
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", domain.RootFolder, "Folder path")
	return cmd
}

func newDocApproveCmd(app *App) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "approve ID",
		Short: "Approve a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Documents.Approve(context.Background(), args[0], by)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Approved %s v%d\n", doc.Name, doc.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Approver")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func newDocDownloadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "download ID DEST",
		Short: "Write a stored document to DEST",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[1], err)
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					_ = os.Remove(args[1])
				}
			}()

			doc, err := app.Documents.Download(context.Background(), args[0], f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s v%d to %s\n", doc.Name, doc.Version, args[1])
			return nil
		},
	}
}
