package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/ordermode/internal/ir"
)

// marshalIDs converts an event id list to canonical JSON TEXT.
func marshalIDs(ids []string) (string, error) {
	data, err := ir.MarshalCanonical(ir.Strings(ids))
	if err != nil {
		return "", fmt.Errorf("marshal ids: %w", err)
	}
	return string(data), nil
}

// marshalHints converts hint records to canonical JSON TEXT.
func marshalHints(hints []ir.HintRecord) (string, error) {
	vals := make(ir.Array, len(hints))
	for i, h := range hints {
		vals[i] = h.Value()
	}
	data, err := ir.MarshalCanonical(vals)
	if err != nil {
		return "", fmt.Errorf("marshal hints: %w", err)
	}
	return string(data), nil
}

// marshalAction converts an action record to canonical JSON TEXT.
func marshalAction(a ir.ActionRecord) (string, error) {
	data, err := ir.MarshalCanonical(a.Value())
	if err != nil {
		return "", fmt.Errorf("marshal action: %w", err)
	}
	return string(data), nil
}

// unmarshalIDs parses a JSON array of ids. Empty TEXT is an empty list.
func unmarshalIDs(data string) ([]string, error) {
	ids := []string{}
	if data == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal ids: %w", err)
	}
	return ids, nil
}

// unmarshalHints parses a JSON array of hint records and checks each one
// decodes to a typed hint.
func unmarshalHints(data string) ([]ir.HintRecord, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var records []ir.HintRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshal hints: %w", err)
	}
	if _, err := ir.HintsFromRecords(records); err != nil {
		return nil, fmt.Errorf("unmarshal hints: %w", err)
	}
	return records, nil
}

// unmarshalAction parses a JSON action record.
func unmarshalAction(data string) (ir.ActionRecord, error) {
	var a ir.ActionRecord
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return ir.ActionRecord{}, fmt.Errorf("unmarshal action: %w", err)
	}
	return a, nil
}
