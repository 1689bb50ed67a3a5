package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bordenet/adr/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScoreCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "score [ID]",
		Short: "Score a decision document against the quality rubric",
		Long: `Scores the final document of a record, or any Markdown file with --file,
across four dimensions: Context, Decision, Consequences, and Status.
Each dimension is worth 25 points.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var document string

			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading document: %w", err)
				}
				document = string(data)
			case len(args) == 1:
				ctx := context.Background()
				id, err := resolveProjectID(ctx, app, args[0])
				if err != nil {
					return err
				}
				p, err := app.Projects.GetByID(ctx, id)
				if err != nil {
					return err
				}
				document = p.FinalDocument()
				if document == "" {
					return fmt.Errorf("%s has no final document yet: finish phase 3 first", p.Title)
				}
			default:
				return fmt.Errorf("pass a record ID or --file doc.md")
			}

			fmt.Println(formatter.FormatScoreReport(app.Rubric.Score(document)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Score a Markdown file instead of a record")

	return cmd
}
