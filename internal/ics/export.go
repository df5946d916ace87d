package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/papapumpkin/rota/internal/timetable"
)

// Export writes an absolute timetable as an iCalendar document: one
// VEVENT per row, DTSTART at the row time, label names joined into the
// summary. Relative timetables have no calendar anchor and are rejected
// with ErrRelativeExport.
func Export(w io.Writer, tt *timetable.Timetable) error {
	if tt.Kind() != timetable.Absolute {
		return ErrRelativeExport
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	stamp := time.Now().UTC()
	for i, e := range tt.Events() {
		ve := cal.AddEvent(fmt.Sprintf("rota-%d@rota", i))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.Time.Instant())

		names := make([]string, len(e.Data))
		for j, l := range e.Data {
			names[j] = l.Name
		}
		ve.SetSummary(strings.Join(names, ", "))
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
