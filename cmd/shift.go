package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/rota/internal/timetable"
)

var shiftCmd = &cobra.Command{
	Use:   "shift FILE",
	Short: "Move every row through time",
	Long: `Move every row by one displacement. --by adds a signed duration and
keeps the table's variant; --anchor adds an instant, turning relative
offsets into calendar times; --origin subtracts one, turning calendar
times back into offsets from that instant.`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	shiftCmd.Flags().String("by", "", "signed duration to add, e.g. 90m or -1h30m")
	shiftCmd.Flags().String("anchor", "", "instant to add to a relative table")
	shiftCmd.Flags().String("origin", "", "instant to subtract from an absolute table")
	rootCmd.AddCommand(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	tt, f, err := s.load(args[0])
	if err != nil {
		return err
	}

	by, _ := cmd.Flags().GetString("by")
	anchor, _ := cmd.Flags().GetString("anchor")
	origin, _ := cmd.Flags().GetString("origin")
	v, subtract, err := resolveShift(by, anchor, origin, f)
	if err != nil {
		return err
	}

	var shifted *timetable.Timetable
	if subtract {
		shifted, err = tt.Sub(v)
	} else {
		shifted, err = tt.Add(v)
	}
	if err != nil {
		return err
	}
	return s.output(shifted, f)
}

// resolveShift turns the flag set into the displacement to apply and
// whether it subtracts. Exactly one of the three flags must be given;
// instants reuse the table's layout.
func resolveShift(by, anchor, origin string, f timetable.Format) (timetable.Value, bool, error) {
	given := 0
	for _, flag := range []string{by, anchor, origin} {
		if flag != "" {
			given++
		}
	}
	if given != 1 {
		return timetable.Value{}, false, errors.New("exactly one of --by, --anchor or --origin is required")
	}

	switch {
	case by != "":
		d, err := time.ParseDuration(by)
		if err != nil {
			return timetable.Value{}, false, fmt.Errorf("parsing --by: %w", err)
		}
		return timetable.Rel(d), false, nil
	case anchor != "":
		v, err := instantFormat(f).Parse(anchor)
		if err != nil {
			return timetable.Value{}, false, fmt.Errorf("parsing --anchor: %w", err)
		}
		return v, false, nil
	default:
		v, err := instantFormat(f).Parse(origin)
		if err != nil {
			return timetable.Value{}, false, fmt.Errorf("parsing --origin: %w", err)
		}
		return v, true, nil
	}
}

func instantFormat(f timetable.Format) timetable.Format {
	f.Kind = timetable.Absolute
	return f
}
