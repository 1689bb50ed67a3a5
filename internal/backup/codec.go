package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bordenet/adr/internal/domain"
)

// ErrInvalidFormat is returned when an import payload is neither a backup
// envelope nor a single project record.
var ErrInvalidFormat = errors.New("invalid file format")

// attributionFooter is appended to every Markdown export.
const attributionFooter = "\n\n---\n\n*Authored with adr, a guided Architecture Decision Record workflow.*\n"

// EncodeProject marshals a single project for export.
func EncodeProject(p *domain.Project) ([]byte, error) {
	data, err := json.MarshalIndent(FromDomain(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return data, nil
}

// EncodeEnvelope marshals all projects into a versioned backup envelope.
func EncodeEnvelope(projects []*domain.Project) ([]byte, error) {
	env := Envelope{
		Version:      EnvelopeVersion,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		ProjectCount: len(projects),
		Projects:     make([]ProjectJSON, 0, len(projects)),
	}
	for _, p := range projects {
		env.Projects = append(env.Projects, FromDomain(p))
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup envelope: %w", err)
	}
	return data, nil
}

// ExportMarkdown renders the synthesized document plus the attribution
// footer. It fails when the workflow has not produced a final document yet.
func ExportMarkdown(p *domain.Project) (string, error) {
	doc := strings.TrimSpace(p.FinalDocument())
	if doc == "" {
		return "", fmt.Errorf("project %q has no synthesized document yet: complete phase %d first", p.Title, domain.PhaseCount)
	}
	return doc + attributionFooter, nil
}

// DecodeImport parses an import payload. It accepts a backup envelope (with
// either the exportedAt or legacy exportDate key) or, when the payload looks
// like one project record (has id and title), a single project. Anything
// else fails with ErrInvalidFormat before any record is touched.
func DecodeImport(data []byte) ([]*domain.Project, error) {
	var probe struct {
		Projects json.RawMessage `json:"projects"`
		ID       string          `json:"id"`
		Title    string          `json:"title"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if probe.Projects != nil {
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		projects := make([]*domain.Project, 0, len(env.Projects))
		for _, pj := range env.Projects {
			p, err := pj.ToDomain()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
			}
			projects = append(projects, p)
		}
		return projects, nil
	}

	if probe.ID != "" && probe.Title != "" {
		var pj ProjectJSON
		if err := json.Unmarshal(data, &pj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		p, err := pj.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return []*domain.Project{p}, nil
	}

	return nil, ErrInvalidFormat
}
