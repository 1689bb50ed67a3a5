package backup

import (
	"fmt"
	"time"

	"github.com/bordenet/adr/internal/domain"
)

// EnvelopeVersion is written into every new backup envelope.
const EnvelopeVersion = 2

// PhaseJSON is the wire shape of one phase record.
type PhaseJSON struct {
	Prompt    string `json:"prompt,omitempty"`
	Response  string `json:"response,omitempty"`
	Completed bool   `json:"completed"`
}

// ProjectJSON is the wire shape of a project. Besides the structured phases
// map it accepts the legacy flat fields older exports used; on import those
// are folded into the phases map once, flat fields winning when both are
// present, so no previously saved content is ever lost.
type ProjectJSON struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Status    string            `json:"status,omitempty"`
	Context   string            `json:"context,omitempty"`
	Phase     int               `json:"phase"`
	Phases    map[int]PhaseJSON `json:"phases,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`

	// Legacy flat fields, first generation.
	Phase1Output string `json:"phase1_output,omitempty"`
	Phase2Output string `json:"phase2_output,omitempty"`
	Phase3Output string `json:"phase3_output,omitempty"`

	// Legacy flat fields, second generation.
	Phase1Response string `json:"phase1Response,omitempty"`
	Phase2Review   string `json:"phase2Review,omitempty"`
	FinalADR       string `json:"finalADR,omitempty"`
}

// Envelope is the export-all backup shape. ExportedAt is the current key;
// ExportDate is accepted from older files.
type Envelope struct {
	Version      int           `json:"version"`
	ExportedAt   string        `json:"exportedAt,omitempty"`
	ExportDate   string        `json:"exportDate,omitempty"`
	ProjectCount int           `json:"projectCount"`
	Projects     []ProjectJSON `json:"projects"`
}

// FromDomain converts a project to its wire shape. Legacy flat fields are
// never written on export.
func FromDomain(p *domain.Project) ProjectJSON {
	pj := ProjectJSON{
		ID:        p.ID,
		Title:     p.Title,
		Status:    string(p.Status),
		Context:   p.Context,
		Phase:     p.Phase,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if len(p.Phases) > 0 {
		pj.Phases = make(map[int]PhaseJSON, len(p.Phases))
		for phase, rec := range p.Phases {
			pj.Phases[phase] = PhaseJSON{Prompt: rec.Prompt, Response: rec.Response, Completed: rec.Completed}
		}
	}
	return pj
}

// ToDomain converts an imported wire record to a domain project, folding the
// legacy flat response fields into the structured phases map.
func (pj ProjectJSON) ToDomain() (*domain.Project, error) {
	if pj.ID == "" || pj.Title == "" {
		return nil, fmt.Errorf("project record missing id or title")
	}

	status := domain.DecisionStatus(pj.Status)
	if status == "" {
		status = domain.StatusProposed
	}
	if !domain.ValidStatuses[status] {
		return nil, fmt.Errorf("project %s: unknown status %q", pj.ID, pj.Status)
	}

	p := &domain.Project{
		ID:        pj.ID,
		Title:     pj.Title,
		Status:    status,
		Context:   pj.Context,
		Phase:     clampPhase(pj.Phase),
		CreatedAt: pj.CreatedAt,
		UpdatedAt: pj.UpdatedAt,
	}

	for phase, rec := range pj.Phases {
		if phase < 1 || phase > domain.PhaseCount {
			return nil, fmt.Errorf("project %s: phase %d out of range", pj.ID, phase)
		}
		p.SetPhaseRecord(phase, domain.PhaseRecord{
			Prompt:    rec.Prompt,
			Response:  rec.Response,
			Completed: rec.Completed || rec.Response != "",
		})
	}

	// Legacy flat fields take precedence over the structured map.
	flat := map[int]string{
		1: firstNonEmpty(pj.Phase1Output, pj.Phase1Response),
		2: firstNonEmpty(pj.Phase2Output, pj.Phase2Review),
		3: firstNonEmpty(pj.Phase3Output, pj.FinalADR),
	}
	for phase, response := range flat {
		if response == "" {
			continue
		}
		rec := p.PhaseRecordFor(phase)
		rec.Response = response
		rec.Completed = true
		p.SetPhaseRecord(phase, rec)
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return p, nil
}

func clampPhase(phase int) int {
	if phase < 1 {
		return 1
	}
	if phase > domain.PhaseComplete {
		return domain.PhaseComplete
	}
	return phase
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
