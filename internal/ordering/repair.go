package ordering

// IsPermutation reports whether candidate contains exactly the ids of
// baseline, each once: same length, no duplicates, no foreign ids.
func IsPermutation(candidate, baseline []string) bool {
	if len(candidate) != len(baseline) {
		return false
	}
	want := make(map[string]int, len(baseline))
	for _, id := range baseline {
		want[id]++
	}
	for _, id := range candidate {
		if want[id] == 0 {
			return false
		}
		want[id]--
	}
	return true
}

// Repair returns candidate if it is a valid permutation of baseline, and a
// copy of baseline otherwise. There is no partial repair: any defect
// (duplicates, foreign ids, missing ids, wrong length) discards the whole
// candidate so corruption is never silently papered over.
//
// repaired reports whether the fallback was taken. The returned slice is
// always a fresh copy.
func Repair(candidate, baseline []string) (ordering []string, repaired bool) {
	src := candidate
	if !IsPermutation(candidate, baseline) {
		src = baseline
		repaired = true
	}
	ordering = make([]string, len(src))
	copy(ordering, src)
	return ordering, repaired
}
