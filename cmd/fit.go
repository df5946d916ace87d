package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/rota/internal/slotfit"
	"github.com/papapumpkin/rota/internal/timetable"
	"github.com/papapumpkin/rota/internal/trace"
)

var fitCmd = &cobra.Command{
	Use:   "fit FILE",
	Short: "Assign rows to slot manifest positions",
	Long: `Sort the timetable and walk the slots of a TOML manifest, placing each
group of simultaneous rows at the next free position. Groups stay
together; when the slots run out before the rows do, the command exits
nonzero with the remaining count.`,
	Args: cobra.ExactArgs(1),
	RunE: runFit,
}

func init() {
	fitCmd.Flags().String("slots", "", "TOML slot manifest")
	_ = fitCmd.MarkFlagRequired("slots")
	fitCmd.Flags().Bool("sort", false, "sort the result by time before printing")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	tt, f, err := s.load(args[0])
	if err != nil {
		return err
	}
	slotsPath, _ := cmd.Flags().GetString("slots")
	slots, err := slotfit.LoadFile(slotsPath, f)
	if err != nil {
		return err
	}

	obs := func(group, events int, from, to timetable.Value) {
		s.emitter.Emit(trace.Record{Kind: trace.KindFitAssign, File: args[0], Data: trace.Assign{
			Group:  group,
			Events: events,
			From:   f.Render(from),
			To:     f.Render(to),
		}})
	}
	fitErr := slotfit.FitObserved(tt, slots, obs)

	s.emitter.Emit(trace.Record{Kind: trace.KindFitDone, File: args[0], Data: trace.FitSummary{
		Groups: slotfit.Groups(tt),
		Events: tt.Len(),
		Fitted: fitErr == nil,
	}})
	if fitErr != nil {
		s.printer.FitFailed(fitErr)
		s.close()
		os.Exit(1)
	}
	s.printer.FitDone(slotfit.Groups(tt), tt.Len())

	if doSort, _ := cmd.Flags().GetBool("sort"); doSort {
		tt.Sort()
	}
	return s.output(tt, f)
}
