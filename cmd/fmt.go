package cmd

import (
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Reprint a timetable in a chosen time format",
	Long: `Reprint a timetable, optionally sorted by time. Combined with --format
and --out-format this converts between relative units and absolute
layouts without touching the rows themselves.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("sort", false, "sort rows by time before printing")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	tt, f, err := s.load(args[0])
	if err != nil {
		return err
	}
	if doSort, _ := cmd.Flags().GetBool("sort"); doSort {
		tt.Sort()
	}
	return s.output(tt, f)
}
