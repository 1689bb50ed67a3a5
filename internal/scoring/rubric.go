package scoring

// DimensionMax is the point ceiling of every rubric dimension.
const DimensionMax = 25

// VocabularyCheck awards tiered credit for the density of a vocabulary in
// the document: full points at or above FullThreshold occurrences, roughly
// half in [PartialThreshold, FullThreshold), zero below.
type VocabularyCheck struct {
	Terms            []string `yaml:"terms"`
	FullThreshold    int      `yaml:"full_threshold"`
	PartialThreshold int      `yaml:"partial_threshold"`
	Points           int      `yaml:"points"`
	PartialIssue     string   `yaml:"partial_issue"`
	MissingIssue     string   `yaml:"missing_issue"`
}

// PatternCheck awards all-or-nothing credit for a regex match.
type PatternCheck struct {
	Pattern      string `yaml:"pattern"`
	Points       int    `yaml:"points"`
	MissingIssue string `yaml:"missing_issue"`
}

// DimensionRubric describes one scored dimension: a heading check plus any
// number of vocabulary and phrase checks. Check points sum to DimensionMax.
type DimensionRubric struct {
	Name         string            `yaml:"name"`
	Heading      PatternCheck      `yaml:"heading"`
	Vocabularies []VocabularyCheck `yaml:"vocabularies"`
	Phrases      []PatternCheck    `yaml:"phrases"`
}

// Rubric is the full scoring configuration. Thresholds and vocabularies are
// plain data so tuning the rubric never touches control flow.
type Rubric struct {
	// MinDocumentLen short-circuits scoring for trivially incomplete input.
	MinDocumentLen int             `yaml:"min_document_len"`
	Context        DimensionRubric `yaml:"context"`
	Decision       DimensionRubric `yaml:"decision"`
	Consequences   DimensionRubric `yaml:"consequences"`
	Status         DimensionRubric `yaml:"status"`
}

// DefaultRubric returns the built-in rubric: four dimensions worth 25 points
// each, calibrated to be harsh but fast.
func DefaultRubric() Rubric {
	return Rubric{
		MinDocumentLen: 50,
		Context: DimensionRubric{
			Name: "Context",
			Heading: PatternCheck{
				Pattern:      `(?im)^#{1,6}\s+.*(context|background|problem)`,
				Points:       10,
				MissingIssue: "Add a '## Context' section describing the problem and its background",
			},
			Vocabularies: []VocabularyCheck{
				{
					Terms:            []string{"because", "therefore", "requirement", "currently", "existing", "problem", "challenge", "need", "goal", "motivation", "force"},
					FullThreshold:    3,
					PartialThreshold: 1,
					Points:           8,
					PartialIssue:     "Context is thin — explain more of the forces and requirements behind the decision",
					MissingIssue:     "Context does not explain why this decision is needed",
				},
				{
					Terms:            []string{"must", "cannot", "constraint", "limited", "budget", "deadline", "compliance", "regulation", "dependency", "restriction"},
					FullThreshold:    3,
					PartialThreshold: 1,
					Points:           7,
					PartialIssue:     "Name more of the constraints that bound this decision",
					MissingIssue:     "No constraints mentioned — state what limits the solution space",
				},
			},
		},
		Decision: DimensionRubric{
			Name: "Decision",
			Heading: PatternCheck{
				Pattern:      `(?im)^#{1,6}\s+.*(decision|choice)`,
				Points:       10,
				MissingIssue: "Add a '## Decision' section stating what was chosen",
			},
			Vocabularies: []VocabularyCheck{
				{
					Terms:            []string{"decided", "decide", "choose", "chose", "chosen", "selected", "adopt", "option", "alternative", "approach", "solution"},
					FullThreshold:    3,
					PartialThreshold: 1,
					Points:           8,
					PartialIssue:     "Expand the decision rationale — compare the chosen approach against alternatives",
					MissingIssue:     "Decision language is missing — describe what was chosen and why",
				},
			},
			Phrases: []PatternCheck{
				{
					Pattern:      `(?i)\b(we will|we have decided|the decision is|we chose|we are going to)\b`,
					Points:       7,
					MissingIssue: "State the decision decisively, e.g. 'We will adopt ...'",
				},
			},
		},
		Consequences: DimensionRubric{
			Name: "Consequences",
			Heading: PatternCheck{
				Pattern:      `(?im)^#{1,6}\s+.*(consequence|impact|implication)`,
				Points:       8,
				MissingIssue: "Add a '## Consequences' section covering the effects of this decision",
			},
			Vocabularies: []VocabularyCheck{
				{
					Terms:            []string{"benefit", "advantage", "improve", "improves", "enable", "enables", "simplify", "simplifies", "easier", "faster", "gain"},
					FullThreshold:    3,
					PartialThreshold: 1,
					Points:           9,
					PartialIssue:     "List more of the positive outcomes this decision buys",
					MissingIssue:     "No benefits described — what does this decision make better?",
				},
				{
					Terms:            []string{"trade-off", "tradeoff", "risk", "cost", "debt", "drawback", "downside", "however", "complexity", "harder", "overhead", "migration"},
					FullThreshold:    3,
					PartialThreshold: 1,
					Points:           8,
					PartialIssue:     "Cover more of the trade-offs — a decision with no downsides is suspicious",
					MissingIssue:     "No trade-offs or risks mentioned — every decision has a cost",
				},
			},
		},
		Status: DimensionRubric{
			Name: "Status",
			Heading: PatternCheck{
				Pattern:      `(?im)^#{1,6}\s+.*status`,
				Points:       10,
				MissingIssue: "Add a '## Status' section",
			},
			Phrases: []PatternCheck{
				{
					Pattern:      `(?i)\b(proposed|accepted|deprecated|superseded|rejected|draft)\b`,
					Points:       15,
					MissingIssue: "State a recognized status value: Proposed, Accepted, Deprecated, Superseded, Rejected, or Draft",
				},
			},
		},
	}
}
