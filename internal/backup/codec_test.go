package backup

import (
	"encoding/json"
	"testing"

	"github.com/bordenet/adr/internal/domain"
	"github.com/bordenet/adr/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_SingleProject(t *testing.T) {
	p := testutil.NewTestProject("Use PostgreSQL", testutil.CompletedPhases(3))

	data, err := EncodeProject(p)
	require.NoError(t, err)

	got, err := DecodeImport(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].ID)
	assert.Equal(t, p.Title, got[0].Title)
	assert.Equal(t, p.Phase, got[0].Phase)
	assert.True(t, got[0].PhaseCompleted(3))
}

func TestEncodeDecode_Envelope(t *testing.T) {
	projects := []*domain.Project{
		testutil.NewTestProject("First decision"),
		testutil.NewTestProject("Second decision", testutil.CompletedPhases(1)),
	}

	data, err := EncodeEnvelope(projects)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.Equal(t, 2, env.ProjectCount)
	assert.NotEmpty(t, env.ExportedAt)

	got, err := DecodeImport(data)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First decision", got[0].Title)
}

func TestDecodeImport_LegacyExportDateKey(t *testing.T) {
	payload := `{
		"version": 1,
		"exportDate": "2023-04-01T12:00:00Z",
		"projectCount": 1,
		"projects": [
			{"id": "p1", "title": "Old decision", "phase": 2}
		]
	}`

	got, err := DecodeImport([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Old decision", got[0].Title)
	assert.Equal(t, domain.StatusProposed, got[0].Status, "missing status defaults")
}

func TestDecodeImport_LegacyFlatFieldsFoldIntoPhases(t *testing.T) {
	payload := `{
		"id": "p1",
		"title": "Legacy record",
		"phase": 3,
		"phases": {"1": {"response": "structured response", "completed": true}},
		"phase1_output": "flat response wins",
		"phase2Review": "review text",
		"finalADR": "# Final\n\ndocument"
	}`

	got, err := DecodeImport([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "flat response wins", p.PhaseResponse(1), "flat field takes precedence")
	assert.Equal(t, "review text", p.PhaseResponse(2))
	assert.Equal(t, "# Final\n\ndocument", p.PhaseResponse(3))
	for phase := 1; phase <= 3; phase++ {
		assert.True(t, p.PhaseCompleted(phase), "phase %d", phase)
	}
}

func TestDecodeImport_InvalidShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "definitely not json"},
		{"empty object", "{}"},
		{"array", "[1, 2, 3]"},
		{"id without title", `{"id": "p1"}`},
		{"unknown status", `{"id": "p1", "title": "X", "status": "Maybe"}`},
		{"phase out of range in map", `{"id": "p1", "title": "X", "phases": {"9": {"response": "r"}}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeImport([]byte(tc.payload))
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestDecodeImport_ClampsPhase(t *testing.T) {
	got, err := DecodeImport([]byte(`{"id": "p1", "title": "X", "phase": 99}`))
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseComplete, got[0].Phase)

	got, err = DecodeImport([]byte(`{"id": "p2", "title": "Y", "phase": 0}`))
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].Phase)
}

func TestExportMarkdown(t *testing.T) {
	p := testutil.NewTestProject("Use PostgreSQL",
		testutil.WithPhaseRecord(3, domain.PhaseRecord{Response: "# Adopt PostgreSQL\n\nbody", Completed: true}))

	md, err := ExportMarkdown(p)
	require.NoError(t, err)
	assert.Contains(t, md, "# Adopt PostgreSQL")
	assert.Contains(t, md, "Authored with adr")

	incomplete := testutil.NewTestProject("Unfinished")
	_, err = ExportMarkdown(incomplete)
	assert.Error(t, err)
}
