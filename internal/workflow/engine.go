package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bordenet/adr/internal/domain"
	"github.com/bordenet/adr/internal/prompt"
	"github.com/bordenet/adr/internal/repository"
)

// minResponseLen is the minimum trimmed length of a pasted response.
const minResponseLen = 3

// SaveOptions tunes SaveResponse behavior.
type SaveOptions struct {
	// SkipAutoAdvance keeps the phase counter where it is after a
	// successful save.
	SkipAutoAdvance bool
}

// Engine drives the three-phase guided workflow (draft, review, synthesis)
// for a project. Every mutation re-fetches the persisted record first, so a
// save always operates on the freshest copy plus the user's new input.
type Engine struct {
	projects  repository.ProjectRepo
	templates *prompt.Library
}

// NewEngine creates a workflow engine over the given store and template
// library.
func NewEngine(projects repository.ProjectRepo, templates *prompt.Library) *Engine {
	return &Engine{projects: projects, templates: templates}
}

// GeneratePrompt renders the template for the given phase from the project's
// current fields and persists it into the phase record. It never marks the
// phase completed and never advances the phase counter.
func (e *Engine) GeneratePrompt(ctx context.Context, id string, phase int) (string, error) {
	if err := checkPhaseRange(phase); err != nil {
		return "", err
	}

	p, err := e.projects.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	tmpl, err := e.templates.Template(phase)
	if err != nil {
		return "", err
	}

	rendered := prompt.Render(tmpl, e.phaseVars(p, phase))

	rec := p.PhaseRecordFor(phase)
	rec.Prompt = rendered
	p.SetPhaseRecord(phase, rec)
	p.UpdatedAt = time.Now().UTC()

	if err := e.projects.Update(ctx, p); err != nil {
		return "", fmt.Errorf("saving phase %d prompt: %w", phase, err)
	}
	return rendered, nil
}

// SaveResponse validates and persists the AI's reply for a phase, marks the
// phase completed, and auto-advances the phase counter unless suppressed.
// A save to the final phase also extracts a document title from the reply.
func (e *Engine) SaveResponse(ctx context.Context, id string, phase int, response string, opts SaveOptions) (*domain.Project, error) {
	if err := checkPhaseRange(phase); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(response)
	if len(trimmed) < minResponseLen {
		return nil, ErrResponseTooShort
	}

	p, err := e.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec := p.PhaseRecordFor(phase)
	if looksLikePrompt(trimmed, rec.Prompt) {
		return nil, ErrPromptPasted
	}

	rec.Response = trimmed
	rec.Completed = true
	p.SetPhaseRecord(phase, rec)
	p.UpdatedAt = time.Now().UTC()

	if phase == domain.PhaseCount {
		if title, ok := ExtractTitle(trimmed); ok {
			p.Title = title
		}
	}

	// Advance only forward: re-saving an earlier phase never rewinds the
	// counter, and the terminal marker is set solely by Finish.
	if phase < domain.PhaseCount && !opts.SkipAutoAdvance && p.Phase <= phase {
		p.Phase = phase + 1
	}

	if err := e.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("saving phase %d response: %w", phase, err)
	}
	return p, nil
}

// PreviousPhase steps the phase counter back by one. Saved responses are
// retained.
func (e *Engine) PreviousPhase(ctx context.Context, id string) (*domain.Project, error) {
	p, err := e.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Phase <= 1 {
		return p, nil
	}

	p.Phase--
	p.UpdatedAt = time.Now().UTC()
	if err := e.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("rewinding phase: %w", err)
	}
	return p, nil
}

// GotoPhase moves directly to a phase via explicit navigation. Entry into
// phase N > 1 requires phase N-1 to have a saved response.
func (e *Engine) GotoPhase(ctx context.Context, id string, phase int) (*domain.Project, error) {
	if err := checkPhaseRange(phase); err != nil {
		return nil, err
	}

	p, err := e.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if phase > 1 && !p.PhaseCompleted(phase-1) {
		return nil, fmt.Errorf("cannot enter phase %d: %w", phase, ErrPhaseGate)
	}

	p.Phase = phase
	p.UpdatedAt = time.Now().UTC()
	if err := e.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("switching to phase %d: %w", phase, err)
	}
	return p, nil
}

// Finish marks the workflow complete. It requires the final phase's response
// to be saved; completion is always an explicit action, never implicit.
func (e *Engine) Finish(ctx context.Context, id string) (*domain.Project, error) {
	p, err := e.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.PhaseCompleted(domain.PhaseCount) {
		return nil, ErrNotFinished
	}

	p.Phase = domain.PhaseComplete
	p.UpdatedAt = time.Now().UTC()
	if err := e.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("finishing workflow: %w", err)
	}
	return p, nil
}

// phaseVars assembles the template variables for a phase. Missing upstream
// outputs become bracketed fallbacks so a prematurely copied prompt still
// reads sensibly.
func (e *Engine) phaseVars(p *domain.Project, phase int) map[string]string {
	vars := map[string]string{
		"TITLE": prompt.OrFallback(p.Title, "[Untitled decision]"),
	}
	switch phase {
	case 1:
		vars["STATUS"] = prompt.OrFallback(string(p.Status), string(domain.StatusProposed))
		vars["CONTEXT"] = prompt.OrFallback(p.Context, "[No context provided]")
	case 2:
		vars["PHASE1_OUTPUT"] = prompt.OrFallback(p.PhaseResponse(1), "[No Phase 1 output yet]")
	case 3:
		vars["PHASE1_OUTPUT"] = prompt.OrFallback(p.PhaseResponse(1), "[No Phase 1 output yet]")
		vars["PHASE2_OUTPUT"] = prompt.OrFallback(p.PhaseResponse(2), "[No Phase 2 output yet]")
	}
	return vars
}

func checkPhaseRange(phase int) error {
	if phase < 1 || phase > domain.PhaseCount {
		return fmt.Errorf("phase %d is out of range (valid range 1-%d)", phase, domain.PhaseCount)
	}
	return nil
}

// looksLikePrompt reports whether a pasted response is actually the phase
// prompt. "Near-identical" is defined concretely as equality after collapsing
// all whitespace runs; the template instruction heading is the secondary
// signal for customized or truncated prompts.
func looksLikePrompt(response, storedPrompt string) bool {
	if strings.Contains(response, prompt.InstructionMarker) {
		return true
	}
	if storedPrompt == "" {
		return false
	}
	return normalizeWhitespace(response) == normalizeWhitespace(storedPrompt)
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
