package domain

import (
	"fmt"
	"time"
)

// PhaseCount is the number of workflow phases (draft, review, synthesis).
const PhaseCount = 3

// PhaseComplete is the terminal phase marker, one past the last phase.
const PhaseComplete = PhaseCount + 1

// PhaseRecord holds the generated prompt and pasted response for one phase.
// Completed is true iff a response has been saved; it never transitions back
// to false once set.
type PhaseRecord struct {
	Prompt    string
	Response  string
	Completed bool
}

// Project is the unit of work: one Architecture Decision Record in progress.
type Project struct {
	ID        string
	Title     string
	Status    DecisionStatus
	Context   string
	Phase     int
	Phases    map[int]PhaseRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhaseRecordFor returns the record for the given phase, zero-valued when the
// phase has never been touched.
func (p *Project) PhaseRecordFor(phase int) PhaseRecord {
	if p.Phases == nil {
		return PhaseRecord{}
	}
	return p.Phases[phase]
}

// SetPhaseRecord stores a record for the given phase, allocating the map on
// first use.
func (p *Project) SetPhaseRecord(phase int, rec PhaseRecord) {
	if p.Phases == nil {
		p.Phases = make(map[int]PhaseRecord)
	}
	p.Phases[phase] = rec
}

// PhaseResponse returns the saved response text for the given phase, or "".
func (p *Project) PhaseResponse(phase int) string {
	return p.PhaseRecordFor(phase).Response
}

// PhaseCompleted reports whether the given phase has a saved response.
func (p *Project) PhaseCompleted(phase int) bool {
	return p.PhaseRecordFor(phase).Completed
}

// FinalDocument returns the synthesized ADR text: the last phase's response.
func (p *Project) FinalDocument() string {
	return p.PhaseResponse(PhaseCount)
}

// IsComplete reports whether the workflow has reached its terminal state.
func (p *Project) IsComplete() bool {
	return p.Phase >= PhaseComplete
}

// Validate checks the fields a project must carry before it can be persisted.
func (p *Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Status != "" && !ValidStatuses[p.Status] {
		return fmt.Errorf("status %q must be one of Proposed, Accepted, Deprecated, Superseded", p.Status)
	}
	return nil
}

// DisplayID returns a short identifier for list output: the UUID truncated
// to 8 characters.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
