// Package slotfit redistributes a timetable's events onto the discrete
// positions of ordered slot ranges. Events sharing a time form a group and
// groups are never split: every member lands on the same new position.
package slotfit

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/papapumpkin/rota/internal/timetable"
)

var (
	// ErrCapacity indicates the slot ranges ran out of positions before
	// every group was assigned.
	ErrCapacity = errors.New("not all data fitted")

	// ErrBadStep indicates a slot step of zero or less, which would walk
	// its range forever.
	ErrBadStep = errors.New("slot step must be positive")
)

// Slot is a half-open time range [Start, End) walked in Step increments.
type Slot struct {
	Start timetable.Value
	End   timetable.Value
	Step  time.Duration
}

// CapacityError reports capacity exhaustion: how many groups stayed
// unassigned and, when at least one assignment happened, the last position
// handed out. Last renders with default formats; callers holding a
// specific format can re-render it.
type CapacityError struct {
	Remaining int
	Last      timetable.Value
	Assigned  bool
}

// Error returns a human-readable string counting the unassigned groups.
func (e *CapacityError) Error() string {
	if !e.Assigned {
		return fmt.Sprintf("not all data fitted: %d group(s) left, none assigned", e.Remaining)
	}
	return fmt.Sprintf("not all data fitted: %d group(s) left after %s", e.Remaining, e.Last)
}

// Unwrap returns ErrCapacity for use with errors.Is.
func (e *CapacityError) Unwrap() error { return ErrCapacity }

// Observer is called once per group assignment with the group's index, its
// size and the time movement.
type Observer func(group, events int, from, to timetable.Value)

// Fit sorts tt and reassigns its equal-time groups, in order, onto the
// positions of slots. Slots are walked in Start order; a range whose Start
// is not before its End contributes no positions. Spare positions are
// fine, spare groups are a *CapacityError. Overlapping ranges are allowed
// and simply hand out the shared positions twice.
func Fit(tt *timetable.Timetable, slots []Slot) error {
	return FitObserved(tt, slots, nil)
}

// FitObserved is Fit with a per-assignment callback, used for tracing.
func FitObserved(tt *timetable.Timetable, slots []Slot, obs Observer) error {
	if err := validate(tt, slots); err != nil {
		return err
	}

	ordered := make([]Slot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		c, _ := ordered[i].Start.Compare(ordered[j].Start)
		return c < 0
	})

	tt.Sort()
	groups := groupSpans(tt)

	next := 0
	var last timetable.Value
	assigned := false

	for _, s := range ordered {
		cursor := s.Start
		for {
			c, err := cursor.Compare(s.End)
			if err != nil {
				return err
			}
			if c >= 0 {
				break
			}
			if next == len(groups) {
				return nil
			}
			g := groups[next]
			from := tt.At(g.start).Time
			for i := g.start; i < g.end; i++ {
				if err := tt.SetTime(i, cursor); err != nil {
					return err
				}
			}
			if obs != nil {
				obs(next, g.end-g.start, from, cursor)
			}
			last, assigned = cursor, true
			next++

			stepped, err := timetable.Add(cursor, timetable.Rel(s.Step))
			if err != nil {
				return err
			}
			cursor = stepped
		}
	}

	if next < len(groups) {
		return &CapacityError{Remaining: len(groups) - next, Last: last, Assigned: assigned}
	}
	return nil
}

// Groups returns the number of equal-time groups tt currently holds,
// sorting it first. The fit consumes one slot position per group.
func Groups(tt *timetable.Timetable) int {
	tt.Sort()
	return len(groupSpans(tt))
}

type span struct {
	start, end int // event index range [start, end)
}

// groupSpans partitions the sorted event list into maximal runs of equal
// time.
func groupSpans(tt *timetable.Timetable) []span {
	events := tt.Events()
	var spans []span
	for i := 0; i < len(events); {
		j := i + 1
		for j < len(events) && events[j].Time.Equal(events[i].Time) {
			j++
		}
		spans = append(spans, span{start: i, end: j})
		i = j
	}
	return spans
}

func validate(tt *timetable.Timetable, slots []Slot) error {
	for i, s := range slots {
		if s.Step <= 0 {
			return fmt.Errorf("slot %d: %w", i, ErrBadStep)
		}
		if s.Start.Kind() != tt.Kind() || s.End.Kind() != tt.Kind() {
			return fmt.Errorf("slot %d: %w: %s to %s range against %s timetable",
				i, timetable.ErrKindMismatch, s.Start.Kind(), s.End.Kind(), tt.Kind())
		}
	}
	return nil
}
