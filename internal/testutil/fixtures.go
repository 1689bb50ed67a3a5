package testutil

import (
	"time"

	"github.com/bordenet/adr/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithStatus(s domain.DecisionStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithContext(context string) ProjectOption {
	return func(p *domain.Project) {
		p.Context = context
	}
}

func WithPhase(phase int) ProjectOption {
	return func(p *domain.Project) {
		p.Phase = phase
	}
}

func WithPhaseRecord(phase int, rec domain.PhaseRecord) ProjectOption {
	return func(p *domain.Project) {
		p.SetPhaseRecord(phase, rec)
	}
}

// NewTestProject builds a fresh project at phase 1 with sensible defaults.
func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.StatusProposed,
		Context:   "We need to pick a relational database for the new service.",
		Phase:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CompletedPhases marks phases 1..n completed with canned prompt/response
// text, advancing the project's phase counter past n.
func CompletedPhases(n int) ProjectOption {
	return func(p *domain.Project) {
		for phase := 1; phase <= n; phase++ {
			p.SetPhaseRecord(phase, domain.PhaseRecord{
				Prompt:    "prompt for phase",
				Response:  "response for phase",
				Completed: true,
			})
		}
		if n < domain.PhaseCount {
			p.Phase = n + 1
		} else {
			p.Phase = domain.PhaseCount
		}
	}
}
