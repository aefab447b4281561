// Package ordering provides the pure primitives the sequencing engine is
// built from: splice moves, permutation validation and repair, and the
// project/reassemble transform pair between the two coordinate spaces.
//
// # Coordinate Spaces
//
// Full space: the complete ordering of N event ids, indexed 0..N-1. Anchor
// locks are expressed here as absolute positions.
//
// Unlocked space: the subsequence of ids that are not locked, in their
// relative order within the full ordering. Drag targets are indexed here.
//
//	full:      [ e  B  a  c  d  f ]     B locked at 1
//	            |     |  |  |  |
//	unlocked:  [ e     a  c  d  f ]
//
// Project maps full → unlocked. Reassemble maps unlocked → full by placing
// every locked id at its fixed slot, then filling the remaining slots in
// ascending index order from the unlocked subsequence.
//
// None of the functions in this package mutate their inputs.
package ordering
