package verify

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/rota/internal/timetable"
)

// ErrVerification is the umbrella every check failure matches.
var ErrVerification = errors.New("verification failed")

// DimensionError reports an event whose label count diverges from the
// first event's.
type DimensionError struct {
	Expected int
	Actual   int
	Event    timetable.Event
}

// Error returns a human-readable string quoting the offending row.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("unmatching dimensions: expected %d labels, got %d in row %q",
		e.Expected, e.Actual, e.Event)
}

// Unwrap returns ErrVerification for use with errors.Is.
func (e *DimensionError) Unwrap() error { return ErrVerification }

// SeparatorError reports a label whose name contains the field separator.
type SeparatorError struct {
	Sep   string
	Label *timetable.Label
	Event timetable.Event
}

// Error returns a human-readable string quoting the offending row.
func (e *SeparatorError) Error() string {
	return fmt.Sprintf("separator %q inside label %q in row %q", e.Sep, e.Label.Name, e.Event)
}

// Unwrap returns ErrVerification for use with errors.Is.
func (e *SeparatorError) Unwrap() error { return ErrVerification }

// ConflictError reports a label key occurring twice at one timestamp.
type ConflictError struct {
	Label *timetable.Label
	Event timetable.Event
}

// Error returns a human-readable string naming the conflicting key.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("label %q conflicts with itself at %s", e.Label.Key, e.Event.Time)
}

// Unwrap returns ErrVerification for use with errors.Is.
func (e *ConflictError) Unwrap() error { return ErrVerification }

// CountError reports two labels with diverging occurrence counts.
type CountError struct {
	LabelA *timetable.Label
	CountA int
	LabelB *timetable.Label
	CountB int
}

// Error returns a human-readable string naming both labels and their counts.
func (e *CountError) Error() string {
	return fmt.Sprintf("unbalanced counts: %q occurs %d times, %q occurs %d times",
		e.LabelA.Name, e.CountA, e.LabelB.Name, e.CountB)
}

// Unwrap returns ErrVerification for use with errors.Is.
func (e *CountError) Unwrap() error { return ErrVerification }
