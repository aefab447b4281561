package ordering

// Project maps the full ordering into unlocked space: the ids of full that
// are not locked, in the relative order they appear.
func Project(full []string, locks Locks) []string {
	out := make([]string, 0, max(len(full)-locks.Len(), 0))
	for _, id := range full {
		if !locks.IsLocked(id) {
			out = append(out, id)
		}
	}
	return out
}

// Reassemble maps an unlocked subsequence back into a full ordering of
// length n. Slots are visited in ascending order: a locked slot takes its
// locked id, every other slot takes the next id from sub.
//
// ok is false when the inputs are inconsistent (a lock outside [0, n), or
// len(sub) != n - locks.Len()); callers keep their previous ordering then.
func Reassemble(sub []string, locks Locks, n int) (full []string, ok bool) {
	if n < 0 || len(sub) != n-locks.Len() {
		return nil, false
	}
	for _, pos := range locks.Positions() {
		if pos < 0 || pos >= n {
			return nil, false
		}
	}

	full = make([]string, n)
	next := 0
	for i := 0; i < n; i++ {
		if id, locked := locks.At(i); locked {
			full[i] = id
			continue
		}
		full[i] = sub[next]
		next++
	}
	return full, true
}
