package timetable

import (
	"fmt"
	"time"
)

// Kind tags the two time-value variants.
type Kind int

const (
	// Relative is a signed offset from an unstated origin.
	Relative Kind = iota
	// Absolute is a calendar instant.
	Absolute
)

// String returns "relative" or "absolute".
func (k Kind) String() string {
	switch k {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single time value, either a relative offset or an absolute
// instant. The zero Value is the zero relative offset.
//
// The two kinds form a closed algebra under Add and Sub; nothing else ever
// changes a value's kind. Value is comparable and safe to use as a map key
// as long as all values in the map come from the same parse pipeline.
type Value struct {
	kind Kind
	off  time.Duration // payload when kind == Relative
	at   time.Time     // payload when kind == Absolute
}

// Rel returns a relative value holding the given offset.
func Rel(d time.Duration) Value { return Value{kind: Relative, off: d} }

// Abs returns an absolute value holding the given instant.
func Abs(t time.Time) Value { return Value{kind: Absolute, at: t} }

// Kind reports the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Offset returns the payload of a relative value, zero for absolute ones.
func (v Value) Offset() time.Duration { return v.off }

// Instant returns the payload of an absolute value, the zero time for
// relative ones.
func (v Value) Instant() time.Time { return v.at }

// Add combines two values under the closure rules:
//
//	relative + relative = relative
//	relative + absolute = absolute
//	absolute + relative = absolute
//	absolute + absolute = *OpError
func Add(a, b Value) (Value, error) {
	switch {
	case a.kind == Relative && b.kind == Relative:
		return Rel(a.off + b.off), nil
	case a.kind == Relative && b.kind == Absolute:
		return Abs(b.at.Add(a.off)), nil
	case a.kind == Absolute && b.kind == Relative:
		return Abs(a.at.Add(b.off)), nil
	default:
		return Value{}, &OpError{Op: "add", Left: a.kind, Right: b.kind}
	}
}

// Sub combines two values under the closure rules:
//
//	relative - relative = relative
//	absolute - relative = absolute
//	absolute - absolute = relative
//	relative - absolute = *OpError
func Sub(a, b Value) (Value, error) {
	switch {
	case a.kind == Relative && b.kind == Relative:
		return Rel(a.off - b.off), nil
	case a.kind == Absolute && b.kind == Relative:
		return Abs(a.at.Add(-b.off)), nil
	case a.kind == Absolute && b.kind == Absolute:
		return Rel(a.at.Sub(b.at)), nil
	default:
		return Value{}, &OpError{Op: "subtract", Left: a.kind, Right: b.kind}
	}
}

// Compare orders v against o: -1, 0 or 1. Values of different kinds have
// no ordering and comparing them returns *OpError.
func (v Value) Compare(o Value) (int, error) {
	if v.kind != o.kind {
		return 0, &OpError{Op: "compare", Left: v.kind, Right: o.kind}
	}
	if v.kind == Relative {
		switch {
		case v.off < o.off:
			return -1, nil
		case v.off > o.off:
			return 1, nil
		}
		return 0, nil
	}
	switch {
	case v.at.Before(o.at):
		return -1, nil
	case v.at.After(o.at):
		return 1, nil
	}
	return 0, nil
}

// Equal reports whether v and o share a kind and denote the same offset or
// instant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == Relative {
		return v.off == o.off
	}
	return v.at.Equal(o.at)
}

// less orders two values of the same kind. Containers enforce kind
// uniformity before sorting with it; across kinds the order is arbitrary.
func (v Value) less(o Value) bool {
	if v.kind == Relative || o.kind == Relative {
		return v.off < o.off
	}
	return v.at.Before(o.at)
}

// String renders the value with the default format for its kind.
func (v Value) String() string {
	if v.kind == Relative {
		return DefaultRelative().Render(v)
	}
	return DefaultAbsolute().Render(v)
}
