package engine

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ordermode/internal/ir"
	"github.com/roach88/ordermode/internal/ordering"
)

var letters = []string{"a", "b", "c", "d", "e", "f"}

func newTestEngine(baseline []string) *Engine {
	return New(Context{Baseline: baseline}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func anchor(id string, pos int) ir.AnchorHint {
	return ir.AnchorHint{EventID: id, Position: pos}
}

func TestInitialize_AnchorPlacedAndRemainderKeepsOrder(t *testing.T) {
	e := newTestEngine(letters)

	s := e.Initialize([]string{"d", "c", "b", "a", "e", "f"}, []ir.Hint{anchor("d", 2)})

	assert.Equal(t, []string{"c", "b", "d", "a", "e", "f"}, Select(s))
	assert.Equal(t, map[int]string{2: "d"}, s.Locked())
	assert.Equal(t, int64(0), s.Version())
}

func TestInitialize_CorruptOrderingFallsBackToBaseline(t *testing.T) {
	e := newTestEngine(letters)

	s := e.Initialize([]string{"a", "a", "b", "g"}, nil)

	assert.Equal(t, letters, Select(s))
}

func TestInitialize_DropsMalformedAndConflictingAnchors(t *testing.T) {
	e := newTestEngine(letters)

	s := e.Initialize([]string{"f", "e", "d", "c", "b", "a"}, []ir.Hint{
		anchor("a", 0),
		anchor("b", 0),  // position taken
		anchor("a", 3),  // event already anchored
		anchor("c", 6),  // out of range
		anchor("zz", 1), // unknown event
		anchor("a", 0),  // duplicate
		ir.RelativeHint{EarlierEventID: "c", LaterEventID: "d"},
	})

	assert.Equal(t, []ir.Hint{anchor("a", 0), ir.RelativeHint{EarlierEventID: "c", LaterEventID: "d"}}, s.Hints())
	assert.Equal(t, []string{"a", "f", "e", "d", "c", "b"}, Select(s))
}

func TestInitialize_DoesNotMutateInputs(t *testing.T) {
	e := newTestEngine(letters)
	raw := []string{"d", "c", "b", "a", "e", "f"}
	hints := []ir.Hint{anchor("d", 2)}

	s := e.Initialize(raw, hints)

	assert.Equal(t, []string{"d", "c", "b", "a", "e", "f"}, raw)
	assert.Equal(t, []ir.Hint{anchor("d", 2)}, hints)

	out := Select(s)
	out[0] = "mutated"
	assert.NotEqual(t, "mutated", Select(s)[0], "Select must return a copy")
}

func TestReduceMove_ReassemblesAroundLocks(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize(letters, []ir.Hint{anchor("b", 1)})

	next := e.Reduce(s, Move{EventID: "e", TargetIndex: 0})

	assert.Equal(t, []string{"e", "b", "a", "c", "d", "f"}, Select(next))
	assert.Equal(t, int64(1), next.Version())
	assert.Equal(t, letters, Select(s), "input state unchanged")
}

func TestReduceMove_TargetClampedToSubsequence(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize(letters, []ir.Hint{anchor("b", 1)})

	next := e.Reduce(s, Move{EventID: "a", TargetIndex: 99})
	assert.Equal(t, []string{"c", "b", "d", "e", "f", "a"}, Select(next))

	next = e.Reduce(s, Move{EventID: "f", TargetIndex: -3})
	assert.Equal(t, []string{"f", "b", "a", "c", "d", "e"}, Select(next))
}

func TestReduceMove_NoOps(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize(letters, []ir.Hint{anchor("b", 1)})

	tests := []struct {
		name   string
		action Move
	}{
		{"locked card", Move{EventID: "b", TargetIndex: 4}},
		{"unknown card", Move{EventID: "zz", TargetIndex: 0}},
		{"already there", Move{EventID: "c", TargetIndex: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := e.Reduce(s, tt.action)
			assert.Equal(t, Select(s), Select(next))
			assert.Equal(t, s.Version(), next.Version())
		})
	}
}

func TestReduceApplyHint_AnchorKeepsEarlierLocks(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize(letters, []ir.Hint{anchor("b", 1)})

	next := e.Reduce(s, ApplyHint{Hint: anchor("e", 0)})

	assert.Equal(t, []string{"e", "b", "a", "c", "d", "f"}, Select(next))
	assert.Equal(t, map[int]string{0: "e", 1: "b"}, next.Locked())
}

func TestReduceApplyHint_Idempotent(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize([]string{"f", "e", "d", "c", "b", "a"}, nil)
	h := ApplyHint{Hint: anchor("a", 0)}

	once := e.Reduce(s, h)
	twice := e.Reduce(once, h)

	assert.Equal(t, Select(once), Select(twice))
	assert.Equal(t, once.Hints(), twice.Hints())
	assert.Equal(t, once.Version(), twice.Version())

	h1, err := once.Hash()
	require.NoError(t, err)
	h2, err := twice.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestReduceApplyHint_MalformedAnchorIsNoOp(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize(letters, []ir.Hint{anchor("b", 1)})

	for _, h := range []ir.Hint{anchor("b", -1), anchor("b", 6), anchor("zz", 0), anchor("c", 1), anchor("b", 3)} {
		next := e.Reduce(s, ApplyHint{Hint: h})
		assert.Equal(t, Select(s), Select(next), "hint %+v", h)
		assert.Len(t, next.Hints(), 1, "hint %+v must not be recorded", h)
	}

	assert.Equal(t, s.Version(), e.Reduce(s, ApplyHint{}).Version(), "nil hint")
}

func TestReduceApplyHint_InformationalHintsRecordedOnly(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize([]string{"c", "a", "b", "d", "e", "f"}, nil)

	rel := ir.RelativeHint{EarlierEventID: "a", LaterEventID: "c"}
	brk := ir.BracketHint{EventID: "c", YearRange: [2]int{-10, 40}}

	next := e.Reduce(e.Reduce(s, ApplyHint{Hint: rel}), ApplyHint{Hint: brk})

	assert.Equal(t, Select(s), Select(next))
	assert.Equal(t, []ir.Hint{rel, brk}, next.Hints())
	assert.Equal(t, int64(2), next.Version())
	assert.Empty(t, next.Locked())

	again := e.Reduce(next, ApplyHint{Hint: rel})
	assert.Equal(t, next.Version(), again.Version(), "duplicate relative hint is a no-op")
}

func TestReduceHydrate_MatchesSequentialApplication(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize([]string{"f", "e", "d", "c", "b", "a"}, nil)
	hints := []ir.Hint{
		anchor("a", 0),
		ir.RelativeHint{EarlierEventID: "c", LaterEventID: "d"},
		anchor("f", 5),
	}

	hydrated := e.Reduce(s, Hydrate{Hints: hints})

	sequential := s
	for _, h := range hints {
		sequential = e.Reduce(sequential, ApplyHint{Hint: h})
	}

	assert.Equal(t, []string{"a", "e", "d", "c", "b", "f"}, Select(hydrated))
	assert.Equal(t, Select(sequential), Select(hydrated))
	assert.Equal(t, sequential.Hints(), hydrated.Hints())
}

func TestReduceHydrate_OrderIndependent(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize([]string{"f", "e", "d", "c", "b", "a"}, nil)

	a := e.Reduce(s, Hydrate{Hints: []ir.Hint{anchor("a", 0), anchor("c", 2), anchor("f", 5)}})
	b := e.Reduce(s, Hydrate{Hints: []ir.Hint{anchor("f", 5), anchor("a", 0), anchor("c", 2)}})

	assert.Equal(t, Select(a), Select(b))
	assert.Equal(t, a.Locked(), b.Locked())
}

func TestReduceHydrate_MergesWithoutDuplicates(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize(letters, []ir.Hint{anchor("b", 1)})

	same := e.Reduce(s, Hydrate{Hints: []ir.Hint{anchor("b", 1)}})
	assert.Equal(t, s.Version(), same.Version())

	merged := e.Reduce(s, Hydrate{Hints: []ir.Hint{anchor("b", 1), anchor("d", 3)}})
	assert.Equal(t, []ir.Hint{anchor("b", 1), anchor("d", 3)}, merged.Hints())
}

func TestSolved(t *testing.T) {
	e := newTestEngine(letters)

	assert.True(t, e.Solved(e.Initialize(letters, nil)))
	assert.False(t, e.Solved(e.Initialize([]string{"b", "a", "c", "d", "e", "f"}, nil)))
}

func TestSnapshot(t *testing.T) {
	e := newTestEngine(letters)
	s := e.Initialize([]string{"d", "c", "b", "a", "e", "f"}, []ir.Hint{anchor("d", 2)})

	snap := s.Snapshot()
	assert.Equal(t, []string{"c", "b", "d", "a", "e", "f"}, snap.Ordering)
	assert.Equal(t, ir.HintList{anchor("d", 2)}, snap.Hints)
	assert.Equal(t, map[int]string{2: "d"}, snap.Locked)
	assert.Equal(t, int64(0), snap.Version)
}

// TestReduce_InvariantsUnderRandomActions drives the engine with a long
// seeded stream of moves, hints and hydrations, checking the permutation and
// lock invariants after every step.
func TestReduce_InvariantsUnderRandomActions(t *testing.T) {
	baseline := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	e := newTestEngine(baseline)
	r := rand.New(rand.NewPCG(42, 7))

	randomHint := func() ir.Hint {
		id := baseline[r.IntN(len(baseline))]
		switch r.IntN(3) {
		case 0:
			return anchor(id, r.IntN(len(baseline)+2)-1)
		case 1:
			return ir.RelativeHint{EarlierEventID: id, LaterEventID: baseline[r.IntN(len(baseline))]}
		default:
			return ir.BracketHint{EventID: id, YearRange: [2]int{r.IntN(10), 10 + r.IntN(10)}}
		}
	}

	for run := 0; run < 20; run++ {
		raw := make([]string, len(baseline))
		for i, p := range r.Perm(len(baseline)) {
			raw[i] = baseline[p]
		}
		s := e.Initialize(raw, nil)

		for step := 0; step < 50; step++ {
			var act Action
			switch r.IntN(3) {
			case 0:
				act = Move{EventID: baseline[r.IntN(len(baseline))], TargetIndex: r.IntN(12) - 2}
			case 1:
				act = ApplyHint{Hint: randomHint()}
			default:
				act = Hydrate{Hints: []ir.Hint{randomHint(), randomHint()}}
			}
			s = e.Reduce(s, act)

			got := Select(s)
			require.True(t, ordering.IsPermutation(got, baseline), "run %d step %d: %v", run, step, got)
			for _, h := range s.Hints() {
				if a, ok := h.(ir.AnchorHint); ok {
					require.Equal(t, a.EventID, got[a.Position], "run %d step %d: lock %+v broken in %v", run, step, a, got)
				}
			}
		}
	}
}
