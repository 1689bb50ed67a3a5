package cli

import (
	"fmt"
	"strings"

	"github.com/bordenet/adr/internal/cli/formatter"
	"github.com/bordenet/adr/internal/domain"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// respondModel is a full-screen paste surface for an AI reply. The top
// pane shows the prompt that was sent out, the bottom pane collects the
// response. Ctrl+D submits, Esc cancels.
type respondModel struct {
	title  string
	phase  int
	prompt viewport.Model
	input  textarea.Model

	width  int
	height int
	ready  bool

	submitted bool
}

func newRespondModel(p *domain.Project, phase int) respondModel {
	ta := textarea.New()
	ta.Placeholder = "Paste the AI's reply here..."
	ta.CharLimit = 0
	ta.Focus()

	vp := viewport.New(0, 0)
	vp.SetContent(p.PhaseRecordFor(phase).Prompt)

	return respondModel{
		title:  p.Title,
		phase:  phase,
		prompt: vp,
		input:  ta,
	}
}

func (m respondModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m respondModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlD:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown:
			// Scroll keys go to the prompt pane; everything else types.
			var cmd tea.Cmd
			m.prompt, cmd = m.prompt.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *respondModel) resize() {
	promptHeight := m.height / 3
	if promptHeight < 4 {
		promptHeight = 4
	}
	inputHeight := m.height - promptHeight - 4
	if inputHeight < 4 {
		inputHeight = 4
	}

	m.prompt.Width = m.width
	m.prompt.Height = promptHeight
	m.input.SetWidth(m.width)
	m.input.SetHeight(inputHeight)
}

func (m respondModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	header := fmt.Sprintf("%s — %s", m.title, formatter.PhaseLabel(m.phase))
	b.WriteString(formatter.StyleHeader.Render(header))
	b.WriteString("\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n")
	b.WriteString(formatter.Dim(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(formatter.Dim("ctrl+d save · esc cancel · pgup/pgdn scroll prompt"))

	return b.String()
}

// runRespondScreen collects a pasted response for the given phase.
// A cancelled screen returns an empty string and no error.
func runRespondScreen(p *domain.Project, phase int) (string, error) {
	program := tea.NewProgram(newRespondModel(p, phase), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("running respond screen: %w", err)
	}

	m, ok := final.(respondModel)
	if !ok || !m.submitted {
		return "", nil
	}
	return m.input.Value(), nil
}
