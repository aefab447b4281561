// Package engine implements the order-mode sequencing engine.
//
// The engine owns one value, OrderState: the full ordering of a puzzle's
// event ids plus the hints the player has been granted. Every operation is a
// pure reduction that returns a new OrderState and never modifies its input.
//
// ARCHITECTURE:
//
// Two coordinate spaces (see package ordering):
//   - Full space: absolute positions 0..N-1, where anchor hints lock events.
//   - Unlocked space: the movable cards only, where drag targets are indexed.
//
// Every state change goes through the same placement rule: project the
// current ordering into unlocked space, edit there, then reassemble with each
// locked event at its fixed slot and the remaining slots filled in ascending
// order. Initialize, Move, ApplyHint and Hydrate differ only in how they
// obtain the lock set and the unlocked subsequence.
//
// INVARIANTS (hold after every operation):
//   - The ordering is a permutation of Context.Baseline
//   - Every granted anchor's event sits at its position
//   - Relative and bracket hints never change the ordering
//   - Granting an equivalent hint twice is the same as granting it once
//
// Malformed input (corrupt orderings, out-of-range anchors, unknown ids,
// conflicting anchors) is never an error: it falls back to the baseline or is
// dropped as a no-op, and is logged at debug level.
//
// Concurrency: the engine is stateless apart from its immutable Context and
// logger, so it is safe for concurrent use. The caller holds exactly one
// authoritative OrderState and replaces it with each reduction's result.
package engine
