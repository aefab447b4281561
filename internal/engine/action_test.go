package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordermode/internal/ir"
)

func TestActionRecord_JournalRoundTrip(t *testing.T) {
	actions := []Action{
		Move{EventID: "e", TargetIndex: 0},
		ApplyHint{Hint: ir.AnchorHint{EventID: "d", Position: 2}},
		Hydrate{Hints: []ir.Hint{ir.BracketHint{EventID: "rome", YearRange: [2]int{-69, -19}}}},
	}

	for _, a := range actions {
		data, err := json.Marshal(a.Record())
		require.NoError(t, err)

		var rec ir.ActionRecord
		require.NoError(t, json.Unmarshal(data, &rec))

		decoded, err := ActionFromRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, a, decoded)
	}
}

func TestActionFromRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record ir.ActionRecord
		errMsg string
	}{
		{"unknown type", ir.ActionRecord{Type: "shuffle"}, "unknown action type"},
		{"move without event", ir.ActionRecord{Type: ir.ActionMove}, "event_id"},
		{"apply-hint without hint", ir.ActionRecord{Type: ir.ActionApplyHint}, "requires hint"},
		{"hydrate with malformed hint", ir.ActionRecord{Type: ir.ActionHydrate, Hints: []ir.HintRecord{{Type: ir.HintAnchor}}}, "hydrate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ActionFromRecord(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNormalizeAction(t *testing.T) {
	const nfd, nfc = "cafe\u0301", "caf\u00e9"

	tests := []struct {
		name string
		in   Action
		want Action
	}{
		{"move", Move{EventID: nfd, TargetIndex: 2}, Move{EventID: nfc, TargetIndex: 2}},
		{"apply-hint", ApplyHint{Hint: ir.AnchorHint{EventID: nfd, Position: 1}}, ApplyHint{Hint: ir.AnchorHint{EventID: nfc, Position: 1}}},
		{"hydrate", Hydrate{Hints: []ir.Hint{ir.BracketHint{EventID: nfd, YearRange: [2]int{1, 51}}}}, Hydrate{Hints: []ir.Hint{ir.BracketHint{EventID: nfc, YearRange: [2]int{1, 51}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAction(tt.in)
			assert.Equal(t, tt.want, got)

			// The normalised action is what the journal gives back.
			data, err := ir.MarshalCanonical(got.Record().Value())
			require.NoError(t, err)
			var rec ir.ActionRecord
			require.NoError(t, json.Unmarshal(data, &rec))
			back, err := ActionFromRecord(rec)
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}
}
