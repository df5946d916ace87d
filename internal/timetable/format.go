package timetable

import (
	"strconv"
	"time"
)

// DefaultLayout is the calendar pattern absolute tokens parse and render
// with unless a selector overrides it.
const DefaultLayout = "02.01.2006 15:04"

// Selectors understood by ParseSelector. Anything else is taken as an
// absolute layout in Go reference-time form.
const (
	SelectorSeconds = "+S"
	SelectorMinutes = "+M"
	SelectorHours   = "+H"
)

// Format describes how time tokens read and write: the variant they map
// to, the unit relative counts are expressed in, and the layout absolute
// instants are expressed in. Zero fields fall back to minutes and
// DefaultLayout, so a Format built for one kind still renders values of
// the other after a kind-changing shift.
type Format struct {
	Kind   Kind
	Unit   time.Duration
	Layout string
}

// DefaultRelative returns the minutes-relative format.
func DefaultRelative() Format {
	return Format{Kind: Relative, Unit: time.Minute, Layout: DefaultLayout}
}

// DefaultAbsolute returns the default-layout absolute format.
func DefaultAbsolute() Format {
	return Format{Kind: Absolute, Unit: time.Minute, Layout: DefaultLayout}
}

// ParseSelector resolves a format selector: "+S", "+M" and "+H" pick a
// relative unit, any other non-empty string is an absolute layout. The
// empty selector returns ok=false, leaving the choice to inference.
func ParseSelector(s string) (Format, bool) {
	switch s {
	case "":
		return Format{}, false
	case SelectorSeconds:
		f := DefaultRelative()
		f.Unit = time.Second
		return f, true
	case SelectorMinutes:
		return DefaultRelative(), true
	case SelectorHours:
		f := DefaultRelative()
		f.Unit = time.Hour
		return f, true
	default:
		f := DefaultAbsolute()
		f.Layout = s
		return f, true
	}
}

// InferFormat picks a format from the first time token of a document: an
// integer token means minutes-relative, a token matching DefaultLayout
// means absolute. Anything else is a *TokenError.
func InferFormat(token string) (Format, error) {
	if _, err := strconv.Atoi(token); err == nil {
		return DefaultRelative(), nil
	}
	if _, err := time.ParseInLocation(DefaultLayout, token, time.Local); err == nil {
		return DefaultAbsolute(), nil
	}
	return Format{}, &TokenError{Token: token, Reason: "matches neither an integer offset nor " + DefaultLayout}
}

// Parse converts one time token into a Value.
func (f Format) Parse(token string) (Value, error) {
	if f.Kind == Relative {
		n, err := strconv.Atoi(token)
		if err != nil {
			return Value{}, &TokenError{Token: token, Reason: "not an integer offset"}
		}
		return Rel(time.Duration(n) * f.unit()), nil
	}
	t, err := time.ParseInLocation(f.layout(), token, time.Local)
	if err != nil {
		return Value{}, &TokenError{Token: token, Reason: "does not match layout " + f.layout()}
	}
	return Abs(t), nil
}

// Render writes a value back as a token: relative values as a whole count
// of Unit truncated toward zero, absolute values through Layout. The
// value's own kind picks the path.
func (f Format) Render(v Value) string {
	if v.kind == Relative {
		return strconv.FormatInt(int64(v.off/f.unit()), 10)
	}
	return v.at.Format(f.layout())
}

func (f Format) unit() time.Duration {
	if f.Unit <= 0 {
		return time.Minute
	}
	return f.Unit
}

func (f Format) layout() string {
	if f.Layout == "" {
		return DefaultLayout
	}
	return f.Layout
}
