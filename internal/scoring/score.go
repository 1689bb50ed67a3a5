// Package scoring evaluates a Markdown ADR against a weighted heuristic
// rubric. Scoring is pure pattern matching (regex headings plus vocabulary
// density), so it is deterministic, side-effect free, and cheap enough to
// re-run on every save.
package scoring

import (
	"regexp"
	"strings"
)

// noContentIssue is the single issue attached to every dimension when the
// document is too short to score.
const noContentIssue = "No content to validate"

// Dimension is the score for one rubric dimension plus its remediation
// issues. Issues are the primary user-facing output; the number is only a
// summary of them.
type Dimension struct {
	Score    int
	MaxScore int
	Issues   []string
}

// Result is the full evaluation of one document.
type Result struct {
	TotalScore   int
	Context      Dimension
	Decision     Dimension
	Consequences Dimension
	Status       Dimension
}

// Score evaluates a document against the default rubric.
func Score(document string) Result {
	return DefaultRubric().Score(document)
}

// Score evaluates a document against this rubric. Input shorter than
// MinDocumentLen short-circuits to all-zero scores.
func (r Rubric) Score(document string) Result {
	if len(strings.TrimSpace(document)) < r.MinDocumentLen {
		empty := Dimension{MaxScore: DimensionMax, Issues: []string{noContentIssue}}
		return Result{Context: empty, Decision: empty, Consequences: empty, Status: empty}
	}

	res := Result{
		Context:      scoreDimension(r.Context, document),
		Decision:     scoreDimension(r.Decision, document),
		Consequences: scoreDimension(r.Consequences, document),
		Status:       scoreDimension(r.Status, document),
	}
	res.TotalScore = res.Context.Score + res.Decision.Score + res.Consequences.Score + res.Status.Score
	return res
}

func scoreDimension(d DimensionRubric, document string) Dimension {
	dim := Dimension{MaxScore: DimensionMax}

	addPattern := func(c PatternCheck) {
		if c.Pattern == "" {
			return
		}
		re, err := regexp.Compile(c.Pattern)
		if err != nil || !re.MatchString(document) {
			dim.Issues = append(dim.Issues, c.MissingIssue)
			return
		}
		dim.Score += c.Points
	}

	addPattern(d.Heading)
	for _, v := range d.Vocabularies {
		pts, issue := scoreVocabulary(v, document)
		dim.Score += pts
		if issue != "" {
			dim.Issues = append(dim.Issues, issue)
		}
	}
	for _, ph := range d.Phrases {
		addPattern(ph)
	}

	if dim.Score > DimensionMax {
		dim.Score = DimensionMax
	}
	if dim.Score < 0 {
		dim.Score = 0
	}
	return dim
}

// scoreVocabulary counts word-boundary occurrences of any term and applies
// the tiering rule: full points at FullThreshold, half on partial credit,
// zero when absent.
func scoreVocabulary(v VocabularyCheck, document string) (int, string) {
	count := countOccurrences(v.Terms, document)
	switch {
	case v.FullThreshold > 0 && count >= v.FullThreshold:
		return v.Points, ""
	case count >= v.PartialThreshold && count > 0:
		return v.Points / 2, v.PartialIssue
	default:
		return 0, v.MissingIssue
	}
}

func countOccurrences(terms []string, document string) int {
	if len(terms) == 0 {
		return 0
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(t))
	}
	re, err := regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllString(document, -1))
}

// Band maps a total score to a traffic-light color band for display.
func Band(score int) string {
	switch {
	case score >= 70:
		return "green"
	case score >= 50:
		return "yellow"
	case score >= 30:
		return "orange"
	default:
		return "red"
	}
}

// Label maps a total score to a readiness label.
func Label(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 70:
		return "Ready"
	case score >= 50:
		return "Needs Work"
	case score >= 30:
		return "Draft"
	default:
		return "Incomplete"
	}
}
