// Package ir provides the canonical record types for ordermode.
//
// This package contains type definitions and their serialisation only. All
// other internal packages import ir; ir imports nothing internal, which keeps
// it the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Hint is a sealed interface: AnchorHint, RelativeHint and BracketHint are
//     the only implementations
//   - NO float types anywhere; years and positions are ints
//   - All JSON and YAML tags use snake_case
//   - Content-addressed identity uses RFC 8785 canonical JSON (see canonical.go)
package ir
