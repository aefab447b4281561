// Package store provides SQLite-backed durable storage for attempt journals.
//
// The store is an append-only log with two tables:
//   - attempts: one row per attempt, holding what Initialize needs
//   - actions: the state-changing actions of each attempt, with the state
//     hash each one produced
//
// # Guarantees
//
// Idempotent writes: attempts are keyed by id and actions by
// UNIQUE(attempt_id, seq); rewriting either is silently ignored.
//
// Logical time: ordering uses integer seq columns, never timestamps, so
// replay does not depend on the wall clock.
//
// Deterministic reads: every multi-row query has an ORDER BY on a seq
// column.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Actions must reference an existing attempt
//
// JSON columns hold RFC 8785 canonical JSON produced by internal/ir, so the
// same attempt always serialises to the same bytes.
package store
