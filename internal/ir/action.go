package ir

// Action type names used in ActionRecord.Type.
const (
	ActionMove      = "move"
	ActionApplyHint = "apply-hint"
	ActionHydrate   = "hydrate"
)

// ActionRecord is the flat wire form of an engine action.
// It is what the session journal persists and what replay feeds back in.
type ActionRecord struct {
	Type        string       `json:"type" yaml:"type"`
	EventID     string       `json:"event_id,omitempty" yaml:"event_id,omitempty"`
	TargetIndex int          `json:"target_index,omitempty" yaml:"target_index,omitempty"`
	Hint        *HintRecord  `json:"hint,omitempty" yaml:"hint,omitempty"`
	Hints       []HintRecord `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Value returns the canonical form of the record for hashing and storage.
func (a ActionRecord) Value() Object {
	obj := Object{"type": String(a.Type)}
	switch a.Type {
	case ActionMove:
		obj["event_id"] = String(a.EventID)
		obj["target_index"] = Int(a.TargetIndex)
	case ActionApplyHint:
		if a.Hint != nil {
			obj["hint"] = a.Hint.Value()
		}
	case ActionHydrate:
		hints := make(Array, len(a.Hints))
		for i, h := range a.Hints {
			hints[i] = h.Value()
		}
		obj["hints"] = hints
	}
	return obj
}
