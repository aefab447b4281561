package ordering

import "sort"

// Locks maps absolute positions in the full ordering to the ids fixed there.
// Each id is locked at most once and each position holds at most one id.
//
// The zero value is an empty lock set. Locks is treated as a value: With
// returns a new set and never modifies the receiver.
type Locks struct {
	byPos map[int]string
	byID  map[string]int
}

// Len returns the number of locked positions.
func (l Locks) Len() int { return len(l.byPos) }

// IsLocked reports whether id is fixed at some position.
func (l Locks) IsLocked(id string) bool {
	_, ok := l.byID[id]
	return ok
}

// PositionOf returns the position id is locked at.
func (l Locks) PositionOf(id string) (int, bool) {
	pos, ok := l.byID[id]
	return pos, ok
}

// At returns the id locked at pos.
func (l Locks) At(pos int) (string, bool) {
	id, ok := l.byPos[pos]
	return id, ok
}

// CanLock reports whether id can be fixed at pos without conflicting with an
// existing lock. Re-locking the same id at the same position is allowed.
func (l Locks) CanLock(id string, pos int) bool {
	if existing, ok := l.byPos[pos]; ok && existing != id {
		return false
	}
	if existing, ok := l.byID[id]; ok && existing != pos {
		return false
	}
	return true
}

// With returns a copy of l with id locked at pos. The caller checks CanLock
// first; a conflicting lock replaces nothing and returns l unchanged.
func (l Locks) With(id string, pos int) Locks {
	if !l.CanLock(id, pos) {
		return l
	}
	out := Locks{
		byPos: make(map[int]string, len(l.byPos)+1),
		byID:  make(map[string]int, len(l.byID)+1),
	}
	for p, v := range l.byPos {
		out.byPos[p] = v
	}
	for v, p := range l.byID {
		out.byID[v] = p
	}
	out.byPos[pos] = id
	out.byID[id] = pos
	return out
}

// Positions returns the locked positions in ascending order.
func (l Locks) Positions() []int {
	out := make([]int, 0, len(l.byPos))
	for p := range l.byPos {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Map returns a copy of the position → id mapping.
func (l Locks) Map() map[int]string {
	out := make(map[int]string, len(l.byPos))
	for p, v := range l.byPos {
		out[p] = v
	}
	return out
}
