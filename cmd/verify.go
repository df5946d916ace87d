package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/rota/internal/trace"
	"github.com/papapumpkin/rota/internal/tsv"
	"github.com/papapumpkin/rota/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Run consistency checks over a timetable",
	Long: `Run every consistency check and report them all: row width against the
first row, separator characters smuggled into label names, labels that
conflict with themselves at one time, and balanced occurrence counts.
Any failing check makes the command exit nonzero.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringSlice("counts", nil, "label keys to balance-check (default: every label)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	keys, _ := cmd.Flags().GetStringSlice("counts")
	if len(keys) == 0 {
		keys = s.cfg.CountLabels
	}

	res, err := s.verifyPass(args[0], keys)
	if err != nil {
		return err
	}
	if !res.Passed {
		s.close()
		os.Exit(1)
	}
	return nil
}

// verifyPass loads the timetable at path and runs the full check set,
// reporting each result on stderr and the trace. An empty keys slice
// balance-checks every label in encounter order.
func (s *session) verifyPass(path string, keys []string) (verify.Result, error) {
	tt, _, err := s.load(path)
	if err != nil {
		return verify.Result{}, err
	}
	if len(keys) == 0 {
		keys = tt.Labels().Keys()
	}

	res := verify.Run(tt,
		verify.Dimensions(),
		verify.LabelText(tsv.Separator),
		verify.Conflicts(),
		verify.Counts(keys...),
	)
	for _, chk := range res.Checks {
		s.printer.CheckResult(chk)
		s.emitter.Emit(trace.Record{Kind: trace.KindVerifyCheck, File: path, Data: trace.CheckOutcome{
			Check:  chk.Name,
			Passed: chk.Passed,
			Error:  errText(chk.Err),
		}})
	}
	s.printer.VerifySummary(res)
	return res, nil
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
