package cli

import (
	"fmt"
	"strings"

	"github.com/bordenet/adr/internal/cli/formatter"
	"github.com/bordenet/adr/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// adrHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func adrHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func statusOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		options = append(options, huh.NewOption(string(s), string(s)))
	}
	return options
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter a title")
	}
	return nil
}

// runNewProjectForm collects title, status, and context for a new record.
func runNewProjectForm(title, status, contextText *string) error {
	if *status == "" {
		*status = string(domain.StatusProposed)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Decision Title").
				Placeholder("Adopt PostgreSQL for the orders service").
				Value(title).
				Validate(validateTitle),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions()...).
				Value(status),
			huh.NewText().
				Title("Context (optional)").
				Description("What problem or situation prompts this decision?").
				Value(contextText),
		),
	).WithTheme(adrHuhTheme()).WithShowHelp(false)

	return form.Run()
}

// runEditProjectForm edits a record's details; the pointers carry the current values in.
func runEditProjectForm(title, status, contextText *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Decision Title").
				Value(title).
				Validate(validateTitle),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions()...).
				Value(status),
			huh.NewText().
				Title("Context").
				Value(contextText),
		),
	).WithTheme(adrHuhTheme()).WithShowHelp(false)

	return form.Run()
}
