package prompt

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bordenet/adr/internal/domain"
)

//go:embed templates/*.md
var embeddedTemplates embed.FS

// InstructionMarker is the heading every shipped template opens its
// instruction block with. A pasted "response" containing it is almost
// certainly the prompt itself; the workflow engine uses this for
// prompt-paste detection.
const InstructionMarker = "## Instructions for the AI"

// Library resolves phase templates. When Dir is non-empty and contains a
// phaseN.md file, that file overrides the embedded template, mirroring how
// users can drop customized templates into ~/.adr/templates.
type Library struct {
	Dir string
}

// NewLibrary creates a Library reading overrides from dir ("" disables
// overrides).
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// Template returns the Markdown template text for the given phase (1..3).
func (l *Library) Template(phase int) (string, error) {
	if phase < 1 || phase > domain.PhaseCount {
		return "", fmt.Errorf("no template for phase %d (valid range 1-%d)", phase, domain.PhaseCount)
	}

	name := fmt.Sprintf("phase%d.md", phase)

	if l.Dir != "" {
		data, err := os.ReadFile(filepath.Join(l.Dir, name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading template override %s: %w", name, err)
		}
	}

	data, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("reading embedded template %s: %w", name, err)
	}
	return string(data), nil
}
