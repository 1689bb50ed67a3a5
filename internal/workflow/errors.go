package workflow

import "errors"

// Validation errors surfaced directly to the user. Each aborts the operation
// with no state written.
var (
	// ErrResponseTooShort rejects empty or trivially short pasted responses.
	ErrResponseTooShort = errors.New("response is too short: paste the AI's full reply")

	// ErrPromptPasted rejects a response that is the phase prompt itself,
	// a common copy/paste slip.
	ErrPromptPasted = errors.New("this looks like the prompt, not the AI's response: copy the reply out of your AI chat instead")

	// ErrPhaseGate rejects explicit navigation into a phase whose
	// predecessor has no saved response.
	ErrPhaseGate = errors.New("previous phase has no saved response yet")

	// ErrNotFinished rejects finishing a workflow whose last phase has no
	// saved response.
	ErrNotFinished = errors.New("final phase has no saved response yet")
)
