// Package session drives one puzzle attempt: it owns the engine state,
// stamps every state-changing action with a logical sequence number and
// journals it, and turns hint purchases into ApplyHint actions.
//
// The engine is pure; Session is where identity (attempt ids), ordering
// (Clock) and persistence (Journal) live.
//
// Concurrency: a Session serialises its own methods with a mutex. The
// engine.OrderState values it returns are immutable and safe to share.
//
// Replay: Resume rebuilds a session from its journal and checks the state
// hash recorded with every action, so a journal written by a different
// engine version fails loudly instead of silently diverging.
package session
