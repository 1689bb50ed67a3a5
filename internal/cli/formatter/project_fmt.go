package formatter

import (
	"fmt"
	"strings"

	"github.com/bordenet/adr/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// PhaseNames maps phase numbers to the workflow step they represent.
var PhaseNames = map[int]string{
	1: "Draft",
	2: "Review",
	3: "Synthesis",
}

// PhaseLabel returns a human label for a project's current phase.
func PhaseLabel(phase int) string {
	if phase >= domain.PhaseComplete {
		return "Complete"
	}
	if name, ok := PhaseNames[phase]; ok {
		return fmt.Sprintf("Phase %d/%d — %s", phase, domain.PhaseCount, name)
	}
	return fmt.Sprintf("Phase %d", phase)
}

// FormatProjectList renders projects as an aligned table.
func FormatProjectList(projects []*domain.Project) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("%-10s %-40s %-12s %s", "ID", "TITLE", "STATUS", "PHASE")))
	b.WriteString("\n")

	for _, p := range projects {
		title := p.Title
		if len(title) > 38 {
			title = title[:35] + "..."
		}
		b.WriteString(fmt.Sprintf("%-10s %-40s %-12s %s\n",
			Dim(fmt.Sprintf("%-10s", p.DisplayID())[:10]),
			fmt.Sprintf("%-40s", title)[:40],
			statusStyle(p.Status).Render(fmt.Sprintf("%-12s", string(p.Status))[:12]),
			phaseStyle(p).Render(PhaseLabel(p.Phase)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatProjectDetail renders a single project with its phase progress.
func FormatProjectDetail(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), p.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), statusStyle(p.Status).Render(string(p.Status))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Phase:"), phaseStyle(p).Render(PhaseLabel(p.Phase))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Updated:"), p.UpdatedAt.Local().Format("2006-01-02 15:04")))

	if p.Context != "" {
		b.WriteString("\n" + StyleHeader.Render("CONTEXT") + "\n")
		b.WriteString(p.Context + "\n")
	}

	b.WriteString("\n" + StyleHeader.Render("PROGRESS") + "\n")
	for phase := 1; phase <= domain.PhaseCount; phase++ {
		rec := p.PhaseRecordFor(phase)
		marker := StyleDim.Render("○")
		detail := Dim("not started")
		switch {
		case rec.Completed:
			marker = StyleGreen.Render("●")
			detail = fmt.Sprintf("response saved (%d chars)", len(rec.Response))
		case rec.Prompt != "":
			marker = StyleYellow.Render("◐")
			detail = "prompt generated, awaiting response"
		}
		b.WriteString(fmt.Sprintf("  %s %-12s %s\n", marker, PhaseNames[phase], detail))
	}

	return strings.TrimRight(b.String(), "\n")
}

func statusStyle(s domain.DecisionStatus) lipgloss.Style {
	switch s {
	case domain.StatusAccepted:
		return StyleGreen
	case domain.StatusProposed:
		return StyleBlue
	case domain.StatusDeprecated:
		return StyleYellow
	case domain.StatusSuperseded:
		return StyleDim
	default:
		return StyleFg
	}
}

func phaseStyle(p *domain.Project) lipgloss.Style {
	if p.IsComplete() {
		return StyleGreen
	}
	return StyleFg
}
