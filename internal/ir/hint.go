package ir

import (
	"encoding/json"
	"fmt"
)

// HintRecord is the flat wire form of a Hint, used in JSON snapshots, the
// action journal and YAML scenarios. Fields that do not apply to Type are empty.
type HintRecord struct {
	Type           HintKind `json:"type" yaml:"type"`
	EventID        string   `json:"event_id,omitempty" yaml:"event_id,omitempty"`
	Position       *int     `json:"position,omitempty" yaml:"position,omitempty"`
	EarlierEventID string   `json:"earlier_event_id,omitempty" yaml:"earlier_event_id,omitempty"`
	LaterEventID   string   `json:"later_event_id,omitempty" yaml:"later_event_id,omitempty"`
	YearRange      []int    `json:"year_range,omitempty" yaml:"year_range,omitempty"`
}

// RecordOf converts a Hint to its wire form.
func RecordOf(h Hint) HintRecord {
	switch v := h.(type) {
	case AnchorHint:
		pos := v.Position
		return HintRecord{Type: HintAnchor, EventID: v.EventID, Position: &pos}
	case RelativeHint:
		return HintRecord{Type: HintRelative, EarlierEventID: v.EarlierEventID, LaterEventID: v.LaterEventID}
	case BracketHint:
		return HintRecord{Type: HintBracket, EventID: v.EventID, YearRange: []int{v.YearRange[0], v.YearRange[1]}}
	}
	return HintRecord{}
}

// Hint converts the record back into a typed Hint.
// Returns an error if the record is missing fields required by its type.
func (r HintRecord) Hint() (Hint, error) {
	switch r.Type {
	case HintAnchor:
		if r.EventID == "" || r.Position == nil {
			return nil, fmt.Errorf("anchor hint requires event_id and position")
		}
		return AnchorHint{EventID: r.EventID, Position: *r.Position}, nil
	case HintRelative:
		if r.EarlierEventID == "" || r.LaterEventID == "" {
			return nil, fmt.Errorf("relative hint requires earlier_event_id and later_event_id")
		}
		return RelativeHint{EarlierEventID: r.EarlierEventID, LaterEventID: r.LaterEventID}, nil
	case HintBracket:
		if r.EventID == "" || len(r.YearRange) != 2 {
			return nil, fmt.Errorf("bracket hint requires event_id and a two-element year_range")
		}
		return BracketHint{EventID: r.EventID, YearRange: [2]int{r.YearRange[0], r.YearRange[1]}}, nil
	default:
		return nil, fmt.Errorf("unknown hint type %q", r.Type)
	}
}

// Records converts hints to wire form, preserving order.
func Records(hints []Hint) []HintRecord {
	out := make([]HintRecord, len(hints))
	for i, h := range hints {
		out[i] = RecordOf(h)
	}
	return out
}

// HintsFromRecords converts wire records to hints, failing on the first
// malformed record.
func HintsFromRecords(records []HintRecord) ([]Hint, error) {
	out := make([]Hint, 0, len(records))
	for i, r := range records {
		h, err := r.Hint()
		if err != nil {
			return nil, fmt.Errorf("hint[%d]: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// HintList is a JSON-serialisable list of hints in insertion order.
type HintList []Hint

// MarshalJSON implements json.Marshaler.
func (l HintList) MarshalJSON() ([]byte, error) {
	return json.Marshal(Records(l))
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *HintList) UnmarshalJSON(data []byte) error {
	var records []HintRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	hints, err := HintsFromRecords(records)
	if err != nil {
		return err
	}
	*l = hints
	return nil
}
