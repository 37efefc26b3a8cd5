package labmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestPatchAppliesOnlyPresentFields(t *testing.T) {
	seq := &Sequence{
		Mixin:       Mixin{ID: 4, Name: "rabi", Version: 2},
		Path:        "/seq",
		Filename:    "rabi.py",
		Description: "rabi flop",
		PipelineID:  3,
	}

	params := datatypes.JSON(`{"shots": 100}`)
	patch := &SequencePatch{Description: strPtr("rabi flop, long"), Params: &params, PipelineID: intPtr(9)}
	require.NoError(t, patch.Apply(seq))

	require.Equal(t, "rabi", seq.Name)
	require.Equal(t, "/seq", seq.Path)
	require.Equal(t, "rabi.py", seq.Filename)
	require.Equal(t, "rabi flop, long", seq.Description)
	require.Equal(t, params, seq.Params)
	require.Equal(t, 9, seq.PipelineID)
	require.Equal(t, 4, seq.ID)
	require.Equal(t, 2, seq.Version)
}

func TestGatewarePatchConnections(t *testing.T) {
	g := &Gateware{EEMConnections: datatypes.JSONSlice[string]{"ttl0"}}
	conns := []string{"ttl0", "urukul0"}
	require.NoError(t, (&GatewarePatch{EEMConnections: &conns}).Apply(g))
	require.Equal(t, datatypes.JSONSlice[string]{"ttl0", "urukul0"}, g.EEMConnections)
}

func TestPatchWrongKind(t *testing.T) {
	require.ErrorIs(t, (&ProjectPatch{Name: strPtr("p")}).Apply(&Pipeline{}), ErrWrongKind)
	require.ErrorIs(t, (&MeasurementPatch{}).Apply(&Sequence{}), ErrWrongKind)
}
