package ir

import "golang.org/x/text/unicode/norm"

// NormalizeID returns id in NFC, the form every string takes in canonical
// JSON and therefore in journals and hashes.
func NormalizeID(id string) string {
	return norm.NFC.String(id)
}

// NormalizeIDs returns a copy of ids with each id in NFC.
func NormalizeIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = NormalizeID(id)
	}
	return out
}

// NormalizeHint returns h with its event ids in NFC.
func NormalizeHint(h Hint) Hint {
	switch v := h.(type) {
	case AnchorHint:
		v.EventID = NormalizeID(v.EventID)
		return v
	case RelativeHint:
		v.EarlierEventID = NormalizeID(v.EarlierEventID)
		v.LaterEventID = NormalizeID(v.LaterEventID)
		return v
	case BracketHint:
		v.EventID = NormalizeID(v.EventID)
		return v
	}
	return h
}

// NormalizeHints returns a copy of hints with NormalizeHint applied to each.
func NormalizeHints(hints []Hint) []Hint {
	if hints == nil {
		return nil
	}
	out := make([]Hint, len(hints))
	for i, h := range hints {
		out[i] = NormalizeHint(h)
	}
	return out
}
