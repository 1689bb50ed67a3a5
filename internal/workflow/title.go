package workflow

import (
	"regexp"
	"strings"
)

// genericHeadings are first-heading values that carry no document-specific
// title. The AI's reply format is freeform, so these placeholders show up
// whenever it echoes a template skeleton back.
var genericHeadings = map[string]bool{
	"PRESS RELEASE":                true,
	"ARCHITECTURE DECISION RECORD": true,
	"ADR":                          true,
	"TITLE":                        true,
	"DOCUMENT TITLE":               true,
	"UNTITLED":                     true,
}

var boldSpanPattern = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)

const (
	headlineMinLen = 10
	headlineMaxLen = 150
)

// ExtractTitle pulls a document title out of a freeform Markdown response.
// Tier 1 is the first level-1 heading, skipped when it is a generic
// placeholder or an unfilled template artifact (contains braces). Tier 2 is
// the first bold span that reads like a headline: 10-150 characters and not
// a full sentence ending in a period.
func ExtractTitle(document string) (string, bool) {
	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		title := strings.TrimSpace(strings.TrimPrefix(line, "# "))
		if title == "" || strings.ContainsAny(title, "{}") || genericHeadings[strings.ToUpper(title)] {
			break
		}
		return title, true
	}

	if m := boldSpanPattern.FindStringSubmatch(document); m != nil {
		candidate := strings.TrimSpace(m[1])
		if len(candidate) >= headlineMinLen && len(candidate) <= headlineMaxLen &&
			!strings.HasSuffix(candidate, ".") && !strings.ContainsAny(candidate, "{}") {
			return candidate, true
		}
	}
	return "", false
}
