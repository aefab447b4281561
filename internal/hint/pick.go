package hint

// Pick selects an index in [0, n) from a seed: ((seed mod n) + n) mod n.
//
// The formula is the whole contract: it depends on nothing but its
// arguments, consecutive seeds walk consecutive candidates, and negative
// seeds wrap instead of producing a negative index. n <= 0 returns -1.
func Pick(n int, seed int64) int {
	if n <= 0 {
		return -1
	}
	m := int64(n)
	return int(((seed % m) + m) % m)
}

// choose returns candidates[0] without a seed, candidates[Pick(...)] with one.
func choose[T any](candidates []T, seed *int64) (T, bool) {
	var zero T
	if len(candidates) == 0 {
		return zero, false
	}
	if seed == nil {
		return candidates[0], true
	}
	return candidates[Pick(len(candidates), *seed)], true
}
