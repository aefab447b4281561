package session

import (
	"errors"
	"fmt"
)

// Error is a session failure with a stable code for callers and the CLI.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// AttemptID identifies the affected attempt, when known.
	AttemptID string
}

// ErrorCode categorizes session errors.
type ErrorCode string

const (
	// ErrCodeNoHintAvailable means the requested hint kind has nothing left
	// to reveal for the current state.
	ErrCodeNoHintAvailable ErrorCode = "NO_HINT_AVAILABLE"

	// ErrCodeUnknownHintKind means BuyHint was asked for a kind it does not know.
	ErrCodeUnknownHintKind ErrorCode = "UNKNOWN_HINT_KIND"

	// ErrCodeAttemptNotFound means the journal has no attempt with that id.
	ErrCodeAttemptNotFound ErrorCode = "ATTEMPT_NOT_FOUND"

	// ErrCodeReplayDiverged means replaying the journal produced a state
	// hash different from the recorded one.
	ErrCodeReplayDiverged ErrorCode = "REPLAY_DIVERGED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.AttemptID != "" {
		return fmt.Sprintf("%s: %s (attempt=%s)", e.Code, e.Message, e.AttemptID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNoHintError reports whether err is a NO_HINT_AVAILABLE error.
// Uses errors.As to handle wrapped errors.
func IsNoHintError(err error) bool {
	return hasCode(err, ErrCodeNoHintAvailable)
}

// IsNotFoundError reports whether err is an ATTEMPT_NOT_FOUND error.
func IsNotFoundError(err error) bool {
	return hasCode(err, ErrCodeAttemptNotFound)
}

// IsReplayDivergedError reports whether err is a REPLAY_DIVERGED error.
func IsReplayDivergedError(err error) bool {
	return hasCode(err, ErrCodeReplayDiverged)
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
