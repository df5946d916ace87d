package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/rota/internal/ics"
	"github.com/papapumpkin/rota/internal/timetable"
	"github.com/papapumpkin/rota/internal/trace"
)

var importCmd = &cobra.Command{
	Use:   "import ICSFILE",
	Short: "Convert calendar events to an absolute timetable",
	Long: `Read an iCalendar file and print the events inside the window as an
absolute timetable, one row per occurrence. Recurring events are
expanded within the window; each row is labeled with the event summary,
plus the attendee names when --attendees is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("from", "", "window start, dd.mm.yyyy or dd.mm.yyyy hh:mm (default: today)")
	importCmd.Flags().String("to", "", "window end, exclusive (default: a week after start)")
	importCmd.Flags().Bool("attendees", false, "label rows with attendee names as well")
	importCmd.Flags().Int("max-occurrences", 0, "cap per-event recurrence expansion (default 1000)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	fromArg, _ := cmd.Flags().GetString("from")
	toArg, _ := cmd.Flags().GetString("to")
	from, to, err := importWindow(fromArg, toArg, time.Now())
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening calendar: %w", err)
	}
	defer file.Close()

	attendees, _ := cmd.Flags().GetBool("attendees")
	maxOcc, _ := cmd.Flags().GetInt("max-occurrences")
	tt, err := ics.Import(file, ics.ImportOptions{
		From:           from,
		To:             to,
		Attendees:      attendees,
		MaxOccurrences: maxOcc,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	tt.Sort()

	s.emitter.Emit(trace.Record{
		Kind: trace.KindParse,
		File: args[0],
		Data: trace.ParseSummary{Events: tt.Len(), Labels: tt.Labels().Len(), Kind: tt.Kind().String()},
	})
	return s.output(tt, timetable.DefaultAbsolute())
}

// importWindow resolves the half-open import window. The defaults cover
// the week starting today.
func importWindow(fromArg, toArg string, now time.Time) (time.Time, time.Time, error) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if fromArg != "" {
		t, err := parseInstant(fromArg)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --from: %w", err)
		}
		from = t
	}

	to := from.AddDate(0, 0, 7)
	if toArg != "" {
		t, err := parseInstant(toArg)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --to: %w", err)
		}
		to = t
	}
	return from, to, nil
}

// parseInstant accepts the default layout with or without a clock.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(timetable.DefaultLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("02.01.2006", s, time.Local)
}
