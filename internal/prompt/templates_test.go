package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_EmbeddedTemplates(t *testing.T) {
	lib := NewLibrary("")

	tests := []struct {
		phase  int
		tokens []string
	}{
		{1, []string{"{{TITLE}}", "{{STATUS}}", "{{CONTEXT}}"}},
		{2, []string{"{{PHASE1_OUTPUT}}"}},
		{3, []string{"{{PHASE1_OUTPUT}}", "{{PHASE2_OUTPUT}}"}},
	}

	for _, tc := range tests {
		tmpl, err := lib.Template(tc.phase)
		require.NoError(t, err, "phase %d", tc.phase)
		assert.Contains(t, tmpl, InstructionMarker, "phase %d", tc.phase)
		for _, token := range tc.tokens {
			assert.Contains(t, tmpl, token, "phase %d", tc.phase)
		}
	}
}

func TestLibrary_PhaseOutOfRange(t *testing.T) {
	lib := NewLibrary("")
	for _, phase := range []int{0, 4, -1} {
		_, err := lib.Template(phase)
		assert.Error(t, err, "phase %d", phase)
	}
}

func TestLibrary_DirOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "# Custom phase 1\n\n## Instructions for the AI\n\n{{TITLE}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "phase1.md"), []byte(custom), 0644))

	lib := NewLibrary(dir)

	got, err := lib.Template(1)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	// Phases without an override fall back to the embedded copy.
	got2, err := lib.Template(2)
	require.NoError(t, err)
	assert.Contains(t, got2, "{{PHASE1_OUTPUT}}")
}
