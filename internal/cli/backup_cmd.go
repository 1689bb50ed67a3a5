package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a decision record as JSON or Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "json":
				data, err = app.Backup.ExportProject(ctx, id)
			case "markdown", "md":
				var doc string
				doc, err = app.Backup.ExportMarkdown(ctx, id)
				data = []byte(doc)
			default:
				return fmt.Errorf("unknown format %q: expected json or markdown", format)
			}
			if err != nil {
				return err
			}

			return writeExport(out, data)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format: json or markdown")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")

	return cmd
}

func newExportAllCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-all",
		Short: "Export every decision record to a single JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Backup.ExportAll(context.Background())
			if err != nil {
				return err
			}
			return writeExport(out, data)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import records from a JSON backup",
		Long: `Imports a backup file. Accepts both the multi-record backup envelope and a
single exported record. Existing records with matching IDs are updated;
a malformed file imports nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Backup.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d new, updated %d existing\n", res.Imported, res.Updated)
			return nil
		},
	}
}

func writeExport(out string, data []byte) error {
	if out == "" {
		_, err := os.Stdout.Write(data)
		if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Println()
		}
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}
