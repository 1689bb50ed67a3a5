package cli

import (
	"github.com/bordenet/adr/internal/scoring"
	"github.com/bordenet/adr/internal/service"
	"github.com/bordenet/adr/internal/workflow"
	"github.com/spf13/cobra"
)

// App holds references to all services used by CLI commands.
type App struct {
	Projects service.ProjectService
	Workflow *workflow.Engine
	Backup   service.BackupService
	Rubric   scoring.Rubric

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// and the paste screen are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "adr" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "adr",
		Short: "Guided Architecture Decision Record authoring",
		Long: `adr walks a decision through a three-phase workflow: generate a prompt,
carry it to your AI chat of choice, paste the reply back, repeat. Phase 1
drafts the record, phase 2 critiques it, phase 3 synthesizes the final
document, which adr then scores against an ADR quality rubric.`,
	}

	root.AddCommand(
		newNewCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newRemoveCmd(app),
		newPromptCmd(app),
		newRespondCmd(app),
		newBackCmd(app),
		newGotoCmd(app),
		newFinishCmd(app),
		newScoreCmd(app),
		newExportCmd(app),
		newExportAllCmd(app),
		newImportCmd(app),
	)

	return root
}
