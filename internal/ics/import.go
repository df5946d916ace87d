// Package ics bridges timetables and iCalendar data: Import expands
// calendar events into absolute timetable rows, Export writes absolute
// rows back out as VEVENTs.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/papapumpkin/rota/internal/timetable"
)

const defaultMaxOccurrences = 1000

var (
	// ErrWindow indicates an import window whose end is not after its
	// start.
	ErrWindow = errors.New("import window end must be after start")

	// ErrRelativeExport indicates an attempt to export a relative-kind
	// timetable; iCalendar has no representation for bare offsets.
	ErrRelativeExport = errors.New("can't export a relative timetable to iCalendar")
)

// ImportOptions controls Import.
type ImportOptions struct {
	// From and To bound the half-open window an occurrence must start in.
	From time.Time
	To   time.Time

	// Attendees appends attendee names to each row after the summary.
	Attendees bool

	// MaxOccurrences caps recurrence expansion per event; 0 means the
	// package default. Expansion past the cap is cut off.
	MaxOccurrences int
}

// Import parses iCalendar data into an absolute timetable. Every VEVENT
// occurrence starting within [From, To) becomes one row whose first label
// is the event summary. Recurring events are expanded through their RRULE
// with EXDATE exceptions applied. The table is returned in calendar file
// order, unsorted.
func Import(r io.Reader, opts ImportOptions) (*timetable.Timetable, error) {
	if !opts.To.After(opts.From) {
		return nil, ErrWindow
	}
	limit := opts.MaxOccurrences
	if limit <= 0 {
		limit = defaultMaxOccurrences
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	tt := timetable.New(timetable.Absolute)
	for _, ve := range cal.Events() {
		starts, err := occurrences(ve, opts.From, opts.To, limit)
		if err != nil {
			return nil, err
		}
		if len(starts) == 0 {
			continue
		}
		keys := labelKeys(ve, opts.Attendees)
		for _, s := range starts {
			if err := tt.Append(timetable.Abs(s), keys...); err != nil {
				return nil, err
			}
		}
	}
	return tt, nil
}

// occurrences returns the start times of ve inside [from, to), expanding
// an RRULE when present and honoring EXDATE.
func occurrences(ve *ical.VEvent, from, to time.Time, limit int) ([]time.Time, error) {
	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("event %s: missing DTSTART: %w", eventUID(ve), err)
	}

	rruleProp := ve.GetProperty(ical.ComponentPropertyRrule)
	if rruleProp == nil || rruleProp.Value == "" {
		if !start.Before(from) && start.Before(to) {
			return []time.Time{start}, nil
		}
		return nil, nil
	}

	rule, err := rrule.StrToRRule(rruleProp.Value)
	if err != nil {
		return nil, fmt.Errorf("event %s: bad RRULE %q: %w", eventUID(ve), rruleProp.Value, err)
	}
	rule.DTStart(start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range exdates(ve) {
		set.ExDate(ex.In(start.Location()))
	}

	expanded := set.Between(from.In(start.Location()), to.In(start.Location()), true)
	out := make([]time.Time, 0, len(expanded))
	for _, s := range expanded {
		if !s.Before(to) {
			continue // Between treats both bounds as inclusive
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// exdates collects the EXDATE exceptions of an event. EXDATE can appear
// multiple times and each occurrence can hold a comma-separated list.
func exdates(ve *ical.VEvent) []time.Time {
	var out []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// labelKeys builds the row labels for an event: the summary first, then
// optionally the attendee names.
func labelKeys(ve *ical.VEvent, attendees bool) []string {
	summary := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		summary = p.Value
	}
	if summary == "" {
		summary = eventUID(ve)
	}

	keys := []string{summary}
	if !attendees {
		return keys
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		// Prefer the CN parameter, fall back to the bare address.
		name := strings.TrimPrefix(p.Value, "mailto:")
		if params := p.ICalParameters; params != nil {
			if cns, ok := params["CN"]; ok && len(cns) > 0 && cns[0] != "" {
				name = cns[0]
			}
		}
		keys = append(keys, name)
	}
	return keys
}

func eventUID(ve *ical.VEvent) string {
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		return p.Value
	}
	return "(no uid)"
}

// parseICSTime parses the basic ICS date and date-time shapes used by
// EXDATE values.
func parseICSTime(v string) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
