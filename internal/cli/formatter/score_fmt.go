package formatter

import (
	"fmt"
	"strings"

	"github.com/bordenet/adr/internal/scoring"
)

// FormatScoreReport renders a scoring result: a headline score with its
// readiness label, a bar per dimension, and the ranked issue list. Issues
// are the part users act on, so they get the most space.
func FormatScoreReport(res scoring.Result) string {
	var b strings.Builder

	headline := fmt.Sprintf("%d/100 — %s", res.TotalScore, scoring.Label(res.TotalScore))
	b.WriteString(BandStyle(res.TotalScore).Bold(true).Render(headline) + "\n\n")

	dims := []struct {
		name string
		dim  scoring.Dimension
	}{
		{"Context", res.Context},
		{"Decision", res.Decision},
		{"Consequences", res.Consequences},
		{"Status", res.Status},
	}

	for _, d := range dims {
		b.WriteString(fmt.Sprintf("%-14s %s %2d/%d\n",
			d.name, scoreBar(d.dim.Score, d.dim.MaxScore), d.dim.Score, d.dim.MaxScore))
	}

	var issues []string
	for _, d := range dims {
		for _, issue := range d.dim.Issues {
			issues = append(issues, fmt.Sprintf("%s: %s", d.name, issue))
		}
	}
	if len(issues) > 0 {
		b.WriteString("\n" + StyleHeader.Render("ISSUES") + "\n")
		for _, issue := range issues {
			b.WriteString("  " + StyleYellow.Render("!") + " " + issue + "\n")
		}
	} else {
		b.WriteString("\n" + StyleGreen.Render("No issues found.") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// scoreBar renders a fixed-width fill bar for a dimension score.
func scoreBar(score, max int) string {
	const width = 20
	filled := 0
	if max > 0 {
		filled = score * width / max
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := 0
	if max > 0 {
		pct = score * 100 / max
	}
	return BandStyle(pct).Render(bar)
}
