package cli

import (
	"context"
	"fmt"

	"github.com/bordenet/adr/internal/cli/formatter"
	"github.com/bordenet/adr/internal/domain"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	var title, status, contextText string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new decision record",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags win; an interactive terminal without flags gets a form.
			if title == "" && app.interactive() {
				if err := runNewProjectForm(&title, &status, &contextText); err != nil {
					return err
				}
			}

			p := &domain.Project{
				Title:   title,
				Status:  domain.DecisionStatus(status),
				Context: contextText,
			}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created %s [%s]\n", p.Title, p.DisplayID())
			fmt.Println(formatter.Dim(fmt.Sprintf("Next: adr prompt %s", p.DisplayID())))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Decision title")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (Proposed, Accepted, Deprecated, Superseded)")
	cmd.Flags().StringVar(&contextText, "context", "", "Problem context the decision addresses")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List decision records",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No decision records found. Start one with 'adr new'.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a decision record's details and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProjectDetail(p))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var title, status, contextText string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a decision record's title, status, or context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if title == "" && status == "" && contextText == "" {
				if !app.interactive() {
					return fmt.Errorf("nothing to change: pass --title, --status, or --context")
				}
				current, err := app.Projects.GetByID(ctx, id)
				if err != nil {
					return err
				}
				title, status, contextText = current.Title, string(current.Status), current.Context
				if err := runEditProjectForm(&title, &status, &contextText); err != nil {
					return err
				}
			}

			p, err := app.Projects.UpdateDetails(ctx, id, title, domain.DecisionStatus(status), contextText)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s [%s]\n", p.Title, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&contextText, "context", "", "New context")

	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a decision record permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !force {
				if !promptYesNo(fmt.Sprintf("Delete %q permanently? This cannot be undone. [y/N] ", p.Title)) {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", p.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
