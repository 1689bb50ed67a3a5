package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     string
		found    bool
	}{
		{
			name:     "plain h1 heading",
			document: "# My Decision\n\nbody",
			want:     "My Decision",
			found:    true,
		},
		{
			name:     "generic heading falls back to bold span",
			document: "# PRESS RELEASE\n**Real Title**\n\nbody",
			want:     "Real Title",
			found:    true,
		},
		{
			name:     "unfilled placeholder heading yields nothing",
			document: "# {Document Title}\n\nbody",
			found:    false,
		},
		{
			name:     "h2 headings are not titles",
			document: "## Status\nAccepted\n## Context\nstuff",
			found:    false,
		},
		{
			name:     "bold span too short is rejected",
			document: "# ADR\n**Short**\nbody",
			found:    false,
		},
		{
			name:     "bold span ending in period is a sentence, not a headline",
			document: "# TITLE\n**We decided to adopt PostgreSQL for storage.**\n",
			found:    false,
		},
		{
			name:     "bold span too long is rejected",
			document: "# TITLE\n**" + strings.Repeat("long headline ", 12) + "x**\n",
			found:    false,
		},
		{
			name:     "generic heading matching is case-insensitive",
			document: "# press release\n**Adopting PostgreSQL**\n",
			want:     "Adopting PostgreSQL",
			found:    true,
		},
		{
			name:     "heading later in document still counts",
			document: "preamble text\n\n# Adopt PostgreSQL\n\nbody",
			want:     "Adopt PostgreSQL",
			found:    true,
		},
		{
			name:     "empty document",
			document: "",
			found:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractTitle(tc.document)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
