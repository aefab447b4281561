package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for algorithm migration.
const (
	DomainState  = "ordermode/state/v1"
	DomainHint   = "ordermode/hint/v1"
	DomainAction = "ordermode/action/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Value returns the canonical form of a hint record.
func (r HintRecord) Value() Object {
	obj := Object{"type": String(r.Type)}
	if r.EventID != "" {
		obj["event_id"] = String(r.EventID)
	}
	if r.Position != nil {
		obj["position"] = Int(*r.Position)
	}
	if r.EarlierEventID != "" {
		obj["earlier_event_id"] = String(r.EarlierEventID)
	}
	if r.LaterEventID != "" {
		obj["later_event_id"] = String(r.LaterEventID)
	}
	if r.YearRange != nil {
		years := make(Array, len(r.YearRange))
		for i, y := range r.YearRange {
			years[i] = Int(y)
		}
		obj["year_range"] = years
	}
	return obj
}

// HintKey returns the content-addressed identity of a hint.
// Two hints are equivalent exactly when their keys are equal; relative hints
// are keyed on the ordered pair.
func HintKey(h Hint) string {
	canonical, err := MarshalCanonical(RecordOf(h).Value())
	if err != nil {
		// Hint fields are ids and ints; only invalid UTF-8 ids can fail.
		return hashWithDomain(DomainHint, []byte(fmt.Sprintf("%#v", h)))
	}
	return hashWithDomain(DomainHint, canonical)
}

// StateHash computes the content-addressed identity of an ordering plus its
// granted hints. The same ordering and hint list always hash identically,
// which is what replay verification compares.
func StateHash(ordering []string, hints []Hint) (string, error) {
	hintVals := make(Array, len(hints))
	for i, h := range hints {
		hintVals[i] = RecordOf(h).Value()
	}
	canonical, err := MarshalCanonical(Object{
		"ordering": Strings(ordering),
		"hints":    hintVals,
	})
	if err != nil {
		return "", fmt.Errorf("StateHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainState, canonical), nil
}

// ActionID computes the content-addressed identity of a journaled action.
func ActionID(attemptID string, seq int64, action ActionRecord) (string, error) {
	canonical, err := MarshalCanonical(Object{
		"attempt_id": String(attemptID),
		"seq":        Int(seq),
		"action":     action.Value(),
	})
	if err != nil {
		return "", fmt.Errorf("ActionID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainAction, canonical), nil
}
