package workflow

import (
	"context"
	"testing"

	"github.com/bordenet/adr/internal/domain"
	"github.com/bordenet/adr/internal/prompt"
	"github.com/bordenet/adr/internal/repository"
	"github.com/bordenet/adr/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) (*Engine, *repository.SQLiteProjectRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	return NewEngine(repo, prompt.NewLibrary("")), repo
}

func createProject(t *testing.T, repo *repository.SQLiteProjectRepo, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Use PostgreSQL", opts...)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestEngine_GeneratePrompt_RendersProjectFields(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	rendered, err := engine.GeneratePrompt(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Contains(t, rendered, "Use PostgreSQL")
	assert.Contains(t, rendered, "Proposed")
	assert.Contains(t, rendered, p.Context)
	assert.NotContains(t, rendered, "{{")

	// Prompt is persisted without completing or advancing anything.
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, rendered, got.PhaseRecordFor(1).Prompt)
	assert.False(t, got.PhaseCompleted(1))
	assert.Equal(t, 1, got.Phase)
}

func TestEngine_GeneratePrompt_FallbackForMissingUpstreamOutput(t *testing.T) {
	engine, repo := setupEngine(t)
	p := createProject(t, repo)

	rendered, err := engine.GeneratePrompt(context.Background(), p.ID, 2)
	require.NoError(t, err)
	assert.Contains(t, rendered, "[No Phase 1 output yet]")
}

func TestEngine_GeneratePrompt_UsesSavedUpstreamOutput(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	_, err := engine.SaveResponse(ctx, p.ID, 1, "We will adopt PostgreSQL.", SaveOptions{})
	require.NoError(t, err)

	rendered, err := engine.GeneratePrompt(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Contains(t, rendered, "We will adopt PostgreSQL.")
	assert.NotContains(t, rendered, "[No Phase 1 output yet]")
}

func TestEngine_GeneratePrompt_PhaseOutOfRange(t *testing.T) {
	engine, repo := setupEngine(t)
	p := createProject(t, repo)

	for _, phase := range []int{0, 4} {
		_, err := engine.GeneratePrompt(context.Background(), p.ID, phase)
		assert.Error(t, err, "phase %d", phase)
	}
}

func TestEngine_SaveResponse_AutoAdvances(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	got, err := engine.SaveResponse(ctx, p.ID, 1, "We will adopt PostgreSQL.", SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Phase)
	assert.True(t, got.PhaseCompleted(1))
	assert.Equal(t, "We will adopt PostgreSQL.", got.PhaseResponse(1))
}

func TestEngine_SaveResponse_SkipAutoAdvance(t *testing.T) {
	engine, repo := setupEngine(t)
	p := createProject(t, repo)

	got, err := engine.SaveResponse(context.Background(), p.ID, 1, "We will adopt PostgreSQL.", SaveOptions{SkipAutoAdvance: true})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Phase)
	assert.True(t, got.PhaseCompleted(1))
}

func TestEngine_SaveResponse_TooShort(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	for _, response := range []string{"", "  ", "ok", "\n\t"} {
		_, err := engine.SaveResponse(ctx, p.ID, 1, response, SaveOptions{})
		assert.ErrorIs(t, err, ErrResponseTooShort, "response %q", response)
	}

	// Nothing persisted, nothing advanced.
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Phase)
	assert.False(t, got.PhaseCompleted(1))
}

func TestEngine_SaveResponse_RejectsPastedPrompt(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	rendered, err := engine.GeneratePrompt(ctx, p.ID, 1)
	require.NoError(t, err)

	// Byte-identical paste.
	_, err = engine.SaveResponse(ctx, p.ID, 1, rendered, SaveOptions{})
	assert.ErrorIs(t, err, ErrPromptPasted)

	// Same text with reflowed whitespace is still the prompt.
	reflowed := normalizeWhitespace(rendered)
	_, err = engine.SaveResponse(ctx, p.ID, 1, reflowed, SaveOptions{})
	assert.ErrorIs(t, err, ErrPromptPasted)

	// A response carrying the instruction marker is caught even when it
	// no longer matches the stored prompt verbatim.
	marked := "Some answer\n\n" + prompt.InstructionMarker + "\nleftover instructions"
	_, err = engine.SaveResponse(ctx, p.ID, 1, marked, SaveOptions{})
	assert.ErrorIs(t, err, ErrPromptPasted)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.PhaseCompleted(1))
	assert.Equal(t, 1, got.Phase)
}

func TestEngine_SaveResponse_ResaveEarlierPhaseDoesNotRewind(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	_, err := engine.SaveResponse(ctx, p.ID, 1, "first draft response", SaveOptions{})
	require.NoError(t, err)
	_, err = engine.SaveResponse(ctx, p.ID, 2, "review response text", SaveOptions{})
	require.NoError(t, err)

	// Re-save phase 1; the counter stays at 3 and phase 1 stays completed.
	got, err := engine.SaveResponse(ctx, p.ID, 1, "revised draft response", SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Phase)
	assert.True(t, got.PhaseCompleted(1))
	assert.Equal(t, "revised draft response", got.PhaseResponse(1))
}

func TestEngine_SaveResponse_FinalPhaseExtractsTitle(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo, testutil.CompletedPhases(2))

	got, err := engine.SaveResponse(ctx, p.ID, 3, "# Adopt PostgreSQL for Persistence\n\n## Status\nAccepted\n", SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Adopt PostgreSQL for Persistence", got.Title)
	// Final save does not set the terminal marker; Finish does.
	assert.Equal(t, 3, got.Phase)
}

func TestEngine_SaveResponse_FinalPhaseKeepsTitleWhenNoneExtractable(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo, testutil.CompletedPhases(2))

	got, err := engine.SaveResponse(ctx, p.ID, 3, "# {Document Title}\n\nbody text here", SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Use PostgreSQL", got.Title, "project title unchanged")
}

func TestEngine_SaveResponse_UnknownProject(t *testing.T) {
	engine, _ := setupEngine(t)
	_, err := engine.SaveResponse(context.Background(), "missing", 1, "some response", SaveOptions{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEngine_PreviousPhase(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo, testutil.CompletedPhases(1))
	require.Equal(t, 2, p.Phase)

	got, err := engine.PreviousPhase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Phase)
	assert.True(t, got.PhaseCompleted(1), "going back keeps saved responses")

	// At phase 1 the rewind is a no-op.
	got, err = engine.PreviousPhase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Phase)
}

func TestEngine_GotoPhase_GatedOnPredecessor(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	_, err := engine.GotoPhase(ctx, p.ID, 2)
	assert.ErrorIs(t, err, ErrPhaseGate)

	_, err = engine.SaveResponse(ctx, p.ID, 1, "We will adopt PostgreSQL.", SaveOptions{SkipAutoAdvance: true})
	require.NoError(t, err)

	got, err := engine.GotoPhase(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Phase)

	// Backward navigation to phase 1 needs no gate.
	got, err = engine.GotoPhase(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Phase)
}

func TestEngine_Finish(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	_, err := engine.Finish(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFinished)

	_, err = engine.SaveResponse(ctx, p.ID, 1, "first draft response", SaveOptions{})
	require.NoError(t, err)
	_, err = engine.SaveResponse(ctx, p.ID, 2, "review response text", SaveOptions{})
	require.NoError(t, err)
	_, err = engine.SaveResponse(ctx, p.ID, 3, "# Adopt PostgreSQL\n\nfinal document", SaveOptions{})
	require.NoError(t, err)

	got, err := engine.Finish(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseComplete, got.Phase)
	assert.True(t, got.IsComplete())
}

func TestEngine_FullLinearFlow(t *testing.T) {
	engine, repo := setupEngine(t)
	ctx := context.Background()
	p := createProject(t, repo)

	for phase := 1; phase <= domain.PhaseCount; phase++ {
		rendered, err := engine.GeneratePrompt(ctx, p.ID, phase)
		require.NoError(t, err)
		require.NotEmpty(t, rendered)

		response := "# Adopt PostgreSQL\n\nResponse for this phase with enough substance."
		got, err := engine.SaveResponse(ctx, p.ID, phase, response, SaveOptions{})
		require.NoError(t, err)
		assert.True(t, got.PhaseCompleted(phase))
		if phase < domain.PhaseCount {
			assert.Equal(t, phase+1, got.Phase)
		}
	}

	got, err := engine.Finish(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsComplete())
	assert.NotEmpty(t, got.FinalDocument())
}
