package timetable

import (
	"errors"
	"fmt"
)

var (
	// ErrKindMismatch is the umbrella for every operation that mixed
	// relative and absolute times in a way the value algebra forbids.
	ErrKindMismatch = errors.New("time kind mismatch")

	// ErrDuplicateLabel indicates a definition or rename collided with a
	// key already present in the registry.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrBadToken indicates a time token that does not parse under the
	// active format.
	ErrBadToken = errors.New("bad time token")
)

// OpError reports a value operation forbidden by the closure rules.
type OpError struct {
	Op    string // "add", "subtract" or "compare"
	Left  Kind
	Right Kind
}

// Error returns a human-readable string naming the operation and both kinds.
func (e *OpError) Error() string {
	switch e.Op {
	case "add":
		if e.Left == Absolute && e.Right == Absolute {
			return "can't add two absolute times"
		}
		return fmt.Sprintf("can't add %s and %s times", e.Left, e.Right)
	case "subtract":
		return fmt.Sprintf("can't subtract %s time from %s time", e.Right, e.Left)
	default:
		return fmt.Sprintf("can't %s %s and %s times", e.Op, e.Left, e.Right)
	}
}

// Unwrap returns ErrKindMismatch for use with errors.Is.
func (e *OpError) Unwrap() error { return ErrKindMismatch }

// TokenError reports a single time token that failed to parse.
type TokenError struct {
	Token  string
	Reason string
}

// Error returns a human-readable string quoting the offending token.
func (e *TokenError) Error() string {
	return fmt.Sprintf("bad time token %q: %s", e.Token, e.Reason)
}

// Unwrap returns ErrBadToken for use with errors.Is.
func (e *TokenError) Unwrap() error { return ErrBadToken }
