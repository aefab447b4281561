// Package hint applies and synthesises order-mode hints.
//
// Only anchor hints affect the ordering; relative and bracket hints are
// informational. Generators are pure and deterministic: the same inputs and
// seed always produce the same hint, and an absent seed means "first eligible
// candidate in scan order".
package hint
