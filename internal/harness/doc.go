// Package harness runs order-mode conformance scenarios.
//
// A scenario names a puzzle, a starting ordering and hints, a list of steps
// and assertions on the final state. The harness plays the steps through a
// real session.Session backed by a session.MemoryJournal, records the
// ordering after every step, and finally resumes the attempt from the journal
// to check that replay reproduces the same state.
//
// # Scenario Format
//
//	name: anchor_reassembly
//	description: "An anchor pins its card and the rest keep their order"
//	puzzle: ../puzzles/letters.yaml   # or inline events/baseline
//	initial: [d, c, b, a, e, f]
//	hints:
//	  - {type: anchor, event_id: d, position: 2}
//	steps:
//	  - move: {event_id: e, target_index: 0}
//	  - hint: {type: relative, earlier_event_id: a, later_event_id: b}
//	  - hydrate:
//	      - {type: anchor, event_id: f, position: 5}
//	  - buy: {kind: bracket, seed: 3}
//	  - buy: {kind: anchor}
//	    expect_error: NO_HINT_AVAILABLE
//	assertions:
//	  - {type: ordering, expect: [e, c, d, a, b, f]}
//	  - {type: locked, locked: {2: d, 5: f}}
//	  - {type: hint_count, count: 4}
//	  - {type: version, version: 4}
//	  - {type: permutation}
//	  - {type: solved, solved: false}
//
// # Assertion Types
//
//   - ordering: the final ordering equals expect
//   - locked: the final locked map equals locked
//   - hint_count: exactly count hints are granted
//   - version: the final version equals version
//   - permutation: the final ordering is a permutation of the baseline and
//     every anchor holds
//   - solved: whether the ordering equals the baseline
//
// # Deterministic Testing
//
// Attempt ids come from testutil.FixedIDGenerator, purchases take explicit
// seeds, and logs go to a discard handler, so traces are byte-identical
// across runs and can be compared against golden files.
package harness
