package ordering

// Clamp bounds i to [0, n-1]. For n <= 0 it returns 0.
func Clamp(i, n int) int {
	if i < 0 || n <= 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// Move returns a copy of seq with the element at from relocated to to,
// using splice semantics: remove, then insert. Elements between the two
// indices shift by one; nothing is swapped.
//
// to is clamped to [0, len(seq)-1]. If from is out of range the copy is
// returned unchanged.
func Move(seq []string, from, to int) []string {
	out := make([]string, len(seq))
	copy(out, seq)
	if from < 0 || from >= len(seq) {
		return out
	}
	to = Clamp(to, len(seq))
	if from == to {
		return out
	}

	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out
}

// IndexOf returns the index of id in seq, or -1.
func IndexOf(seq []string, id string) int {
	for i, v := range seq {
		if v == id {
			return i
		}
	}
	return -1
}

// Equal reports whether a and b hold the same ids in the same order.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
