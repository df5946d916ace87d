// Package verify checks timetable invariants: rectangular label
// dimensions, separator-free label text, conflict-free timestamps and
// balanced occurrence counts. Checks are pure and independent; each one
// reports only the first violation it finds.
package verify

import (
	"strings"

	"github.com/papapumpkin/rota/internal/timetable"
)

// Check is a named invariant check. Fn returns nil on a clean table and a
// structured error wrapping ErrVerification on the first violation.
type Check struct {
	Name string
	Fn   func(*timetable.Timetable) error
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name   string
	Passed bool
	Err    error
}

// Result collects the outcomes of a run.
type Result struct {
	Passed bool
	Checks []CheckResult
}

// FirstFailure returns the first failed check of the run, or nil when
// everything passed.
func (r *Result) FirstFailure() *CheckResult {
	for i := range r.Checks {
		if !r.Checks[i].Passed {
			return &r.Checks[i]
		}
	}
	return nil
}

// Run executes every check against tt in order. A failing check does not
// stop the ones after it.
func Run(tt *timetable.Timetable, checks ...Check) Result {
	res := Result{Passed: true}
	for _, c := range checks {
		err := c.Fn(tt)
		res.Checks = append(res.Checks, CheckResult{Name: c.Name, Passed: err == nil, Err: err})
		if err != nil {
			res.Passed = false
		}
	}
	return res
}

// Dimensions checks that every event carries as many labels as the first
// one. Empty tables pass.
func Dimensions() Check {
	return Check{Name: "dimensions", Fn: checkDimensions}
}

func checkDimensions(tt *timetable.Timetable) error {
	events := tt.Events()
	if len(events) == 0 {
		return nil
	}
	want := len(events[0].Data)
	for _, e := range events[1:] {
		if len(e.Data) != want {
			return &DimensionError{Expected: want, Actual: len(e.Data), Event: e}
		}
	}
	return nil
}

// LabelText checks that no label name contains sep, which would corrupt
// formatted output.
func LabelText(sep string) Check {
	return Check{Name: "labels", Fn: func(tt *timetable.Timetable) error {
		for _, e := range tt.Events() {
			for _, l := range e.Data {
				if strings.Contains(l.Name, sep) {
					return &SeparatorError{Sep: sep, Label: l, Event: e}
				}
			}
		}
		return nil
	}}
}

// Conflicts checks that the label keys sharing one timestamp are pairwise
// distinct. Events group by exact time value, so the table does not need
// to be sorted.
func Conflicts() Check {
	return Check{Name: "conflicts", Fn: checkConflicts}
}

func checkConflicts(tt *timetable.Timetable) error {
	seen := make(map[timetable.Value]map[string]bool)
	for _, e := range tt.Events() {
		keys := seen[e.Time]
		if keys == nil {
			keys = make(map[string]bool)
			seen[e.Time] = keys
		}
		for _, l := range e.Data {
			if keys[l.Key] {
				return &ConflictError{Label: l, Event: e}
			}
			keys[l.Key] = true
		}
	}
	return nil
}

// Counts checks that every requested label key occurs equally often across
// the table, measured against the first key. Keys the table never mentions
// count zero. No keys means nothing to compare and the check passes.
func Counts(keys ...string) Check {
	requested := make([]string, len(keys))
	copy(requested, keys)
	return Check{Name: "counts", Fn: func(tt *timetable.Timetable) error {
		return checkCounts(tt, requested)
	}}
}

func checkCounts(tt *timetable.Timetable, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	counts := make(map[string]int, len(keys))
	for _, e := range tt.Events() {
		for _, l := range e.Data {
			if wanted[l.Key] {
				counts[l.Key]++
			}
		}
	}

	baseline := keys[0]
	want := counts[baseline]
	for _, k := range keys[1:] {
		if counts[k] != want {
			return &CountError{
				LabelA: resolve(tt, baseline),
				CountA: want,
				LabelB: resolve(tt, k),
				CountB: counts[k],
			}
		}
	}
	return nil
}

// resolve fetches the table's label for diagnostics, synthesizing one for
// keys it never saw.
func resolve(tt *timetable.Timetable, key string) *timetable.Label {
	if l, ok := tt.Labels().Get(key); ok {
		return l
	}
	return &timetable.Label{Key: key, Name: key}
}
