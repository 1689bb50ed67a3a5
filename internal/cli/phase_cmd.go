package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/bordenet/adr/internal/cli/formatter"
	"github.com/bordenet/adr/internal/domain"
	"github.com/bordenet/adr/internal/workflow"
	"github.com/spf13/cobra"
)

// phaseOrCurrent returns the explicit --phase value, or the project's
// current phase clamped into working range.
func phaseOrCurrent(ctx context.Context, app *App, id string, flagPhase int) (int, error) {
	if flagPhase != 0 {
		return flagPhase, nil
	}
	p, err := app.Projects.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	phase := p.Phase
	if phase < 1 {
		phase = 1
	}
	if phase > domain.PhaseCount {
		phase = domain.PhaseCount
	}
	return phase, nil
}

func newPromptCmd(app *App) *cobra.Command {
	var phase int
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "prompt ID",
		Short: "Generate the prompt for a phase and print it",
		Long: `Generates the prompt for the given phase (default: the project's current
phase) from the project's fields and any earlier phase outputs. Copy the
printed prompt into your AI chat, then bring the reply back with
'adr respond'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phase, err = phaseOrCurrent(ctx, app, id, phase)
			if err != nil {
				return err
			}

			rendered, err := app.Workflow.GeneratePrompt(ctx, id, phase)
			if err != nil {
				return err
			}

			fmt.Println(rendered)

			if copyToClipboard {
				if err := clipboard.WriteAll(rendered); err != nil {
					fmt.Fprintln(os.Stderr, formatter.Dim("(could not copy to clipboard: "+err.Error()+")"))
				} else {
					fmt.Fprintln(os.Stderr, formatter.Dim("Prompt copied to clipboard."))
				}
			}
			fmt.Fprintln(os.Stderr, formatter.Dim(fmt.Sprintf("When you have the AI's reply: adr respond %s", args[0])))
			return nil
		},
	}

	cmd.Flags().IntVar(&phase, "phase", 0, "Phase to generate (1-3, default: current)")
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the prompt to the clipboard")

	return cmd
}

func newRespondCmd(app *App) *cobra.Command {
	var phase int
	var file string
	var noAdvance bool

	cmd := &cobra.Command{
		Use:   "respond ID",
		Short: "Save the AI's reply for a phase",
		Long: `Saves the AI's reply for the given phase (default: the project's current
phase). The reply is read from --file, from stdin when piped, or from an
interactive paste screen on a terminal. Saving a response completes the
phase and advances the workflow unless --no-advance is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phase, err = phaseOrCurrent(ctx, app, id, phase)
			if err != nil {
				return err
			}

			response, err := readResponse(ctx, app, id, phase, file)
			if err != nil {
				return err
			}
			if response == "" {
				fmt.Println("Aborted.")
				return nil
			}

			p, err := app.Workflow.SaveResponse(ctx, id, phase, response, workflow.SaveOptions{SkipAutoAdvance: noAdvance})
			if err != nil {
				return err
			}

			fmt.Printf("Saved phase %d response for %s\n", phase, p.Title)
			if phase < domain.PhaseCount {
				fmt.Println(formatter.Dim(fmt.Sprintf("Next: adr prompt %s --phase %d", args[0], p.Phase)))
			} else {
				fmt.Println(formatter.Dim(fmt.Sprintf("Next: adr score %s, then adr finish %s", args[0], args[0])))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&phase, "phase", 0, "Phase to respond to (1-3, default: current)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the reply from a file")
	cmd.Flags().BoolVar(&noAdvance, "no-advance", false, "Save without advancing to the next phase")

	return cmd
}

// readResponse fetches the reply text from, in order: --file, piped stdin,
// or the interactive paste screen. An empty return with nil error means the
// user cancelled.
func readResponse(ctx context.Context, app *App, id string, phase int, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading response file: %w", err)
		}
		return string(data), nil
	}

	if !app.interactive() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading response from stdin: %w", err)
		}
		return string(data), nil
	}

	p, err := app.Projects.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return runRespondScreen(p, phase)
}

func newBackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "back ID",
		Short: "Step back to the previous phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Workflow.PreviousPhase(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now at %s\n", p.Title, formatter.PhaseLabel(p.Phase))
			return nil
		},
	}
}

func newGotoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "goto ID PHASE",
		Short: "Jump to a specific phase",
		Long: `Jumps directly to a phase. Moving forward requires the previous phase to
have a saved response; moving backward is always allowed and keeps all
saved responses.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phase, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid phase %q: expected a number 1-%d", args[1], domain.PhaseCount)
			}
			p, err := app.Workflow.GotoPhase(ctx, id, phase)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now at %s\n", p.Title, formatter.PhaseLabel(p.Phase))
			return nil
		},
	}
}

func newFinishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "finish ID",
		Short: "Mark the workflow complete and show the final score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Workflow.Finish(ctx, id)
			if err != nil {
				return err
			}

			res := app.Rubric.Score(p.FinalDocument())
			fmt.Printf("%s is complete.\n\n", p.Title)
			fmt.Println(formatter.FormatScoreReport(res))
			fmt.Println()
			fmt.Println(formatter.Dim(fmt.Sprintf("Export it with: adr export %s", args[0])))
			return nil
		},
	}
}
