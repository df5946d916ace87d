// Package timetable models ordered, time-stamped events carrying sequences
// of labels. It provides the relative/absolute time-value algebra, the
// deduplicating label registry and the Timetable container with lazy
// sorting, whole-table shifting and merging.
//
// Reading and writing timetable text lives in internal/tsv, slot fitting
// in internal/slotfit and invariant checking in internal/verify.
package timetable

import (
	"fmt"
	"sort"
	"strings"
)

// Event pairs one time value with an ordered sequence of labels.
type Event struct {
	Time Value
	Data []*Label
}

// At returns the i-th label.
func (e Event) At(i int) *Label { return e.Data[i] }

// Slice projects the event onto the label range [i, j), sharing storage.
func (e Event) Slice(i, j int) Event {
	return Event{Time: e.Time, Data: e.Data[i:j]}
}

// String renders the event tab-separated with the default format for its
// time kind. Diagnostic output; faithful formatting lives in internal/tsv.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Time.String())
	for _, l := range e.Data {
		b.WriteByte('\t')
		b.WriteString(l.Name)
	}
	return b.String()
}

// Timetable is an ordered collection of events sharing one time kind.
//
// Events stay in insertion order until Sort; a dirty bit remembers whether
// the current order is known to be non-decreasing by time. The label
// registry is derived lazily from the events and cached.
type Timetable struct {
	events []Event
	kind   Kind
	labels *Registry
	sorted bool
}

// New returns an empty timetable of the given time kind. Empty tables
// start sorted.
func New(kind Kind) *Timetable {
	return &Timetable{kind: kind, sorted: true}
}

// Kind reports the time kind shared by all events.
func (t *Timetable) Kind() Kind { return t.kind }

// Len returns the number of events.
func (t *Timetable) Len() int { return len(t.events) }

// At returns the i-th event.
func (t *Timetable) At(i int) Event { return t.events[i] }

// Events returns the backing event slice. Callers must not reorder or
// mutate it; SetTime is the mutation path.
func (t *Timetable) Events() []Event { return t.events }

// Sorted reports whether the events are known to be sorted by time.
func (t *Timetable) Sorted() bool { return t.sorted }

// Append adds an event at the end, interning its label keys through the
// table registry. The time's kind must match the table's.
func (t *Timetable) Append(v Value, keys ...string) error {
	if v.Kind() != t.kind {
		return fmt.Errorf("%w: appending %s time to %s timetable", ErrKindMismatch, v.Kind(), t.kind)
	}
	reg := t.Labels()
	data := make([]*Label, len(keys))
	for i, k := range keys {
		data[i] = reg.Intern(k)
	}
	t.events = append(t.events, Event{Time: v, Data: data})
	t.sorted = false
	return nil
}

// Labels returns the registry derived from the events, computing and
// caching it on first use. First occurrence wins: a later event reusing a
// key does not replace the registered label.
func (t *Timetable) Labels() *Registry {
	if t.labels == nil {
		reg := NewRegistry()
		for _, e := range t.events {
			for _, l := range e.Data {
				if _, ok := reg.Get(l.Key); !ok {
					reg.byKey[l.Key] = l
					reg.order = append(reg.order, l.Key)
				}
			}
		}
		t.labels = reg
	}
	return t.labels
}

// Rename re-keys a label across the whole table through its registry.
// Events share label pointers, so every occurrence follows.
func (t *Timetable) Rename(oldKey, newKey string) error {
	return t.Labels().Rename(oldKey, newKey)
}

// Sort stably orders the events by time. A set dirty bit is the only thing
// that makes it do work; ties keep their relative order, which the slot
// fitter depends on.
func (t *Timetable) Sort() {
	if t.sorted {
		return
	}
	sort.SliceStable(t.events, func(i, j int) bool {
		return t.events[i].Time.less(t.events[j].Time)
	})
	t.sorted = true
}

// SetTime replaces the i-th event's time. The new value's kind must match
// the table's; the sorted bit is cleared.
func (t *Timetable) SetTime(i int, v Value) error {
	if v.Kind() != t.kind {
		return fmt.Errorf("%w: setting %s time on %s timetable", ErrKindMismatch, v.Kind(), t.kind)
	}
	t.events[i].Time = v
	t.sorted = false
	return nil
}

// Add returns a new timetable with every event time shifted by v under the
// closure rules. The result's kind follows the algebra, so anchoring a
// relative table with an absolute value yields an absolute table. Shifting
// preserves order, label pointers and the sorted bit.
func (t *Timetable) Add(v Value) (*Timetable, error) {
	return t.shift(Add, v)
}

// Sub is the subtraction counterpart of Add. Subtracting an absolute
// origin from an absolute table yields the relative table of offsets.
func (t *Timetable) Sub(v Value) (*Timetable, error) {
	return t.shift(Sub, v)
}

func (t *Timetable) shift(op func(Value, Value) (Value, error), v Value) (*Timetable, error) {
	// Probing with a zero value of the table's kind settles the result
	// kind and rejects forbidden combinations up front, so empty tables
	// behave like populated ones.
	probed, err := op(Value{kind: t.kind}, v)
	if err != nil {
		return nil, err
	}
	out := &Timetable{kind: probed.Kind(), sorted: t.sorted}
	if len(t.events) == 0 {
		return out, nil
	}
	out.events = make([]Event, len(t.events))
	for i, e := range t.events {
		nv, err := op(e.Time, v)
		if err != nil {
			return nil, err
		}
		out.events[i] = Event{Time: nv, Data: e.Data}
	}
	return out, nil
}

// Merge returns the concatenation of t and o. The kinds must match. The
// result is always marked unsorted. A key used by both sources resolves to
// its first occurrence; later occurrences are re-pointed at that label so
// the merged table keeps one pointer per key and renames stay coherent.
func (t *Timetable) Merge(o *Timetable) (*Timetable, error) {
	if t.kind != o.kind {
		return nil, fmt.Errorf("%w: merging %s and %s timetables", ErrKindMismatch, t.kind, o.kind)
	}
	out := &Timetable{kind: t.kind}
	out.events = make([]Event, 0, len(t.events)+len(o.events))
	out.events = append(out.events, t.events...)
	out.events = append(out.events, o.events...)

	reg := out.Labels()
	for i, e := range out.events {
		var data []*Label
		for j, l := range e.Data {
			c, _ := reg.Get(l.Key)
			if c == l {
				continue
			}
			if data == nil {
				// Copy before the first rewrite; the slice is still
				// shared with the source event.
				data = make([]*Label, len(e.Data))
				copy(data, e.Data)
				out.events[i].Data = data
			}
			data[j] = c
		}
	}
	return out, nil
}
