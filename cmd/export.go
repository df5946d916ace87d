package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/rota/internal/ics"
)

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Convert an absolute timetable to iCalendar",
	Long: `Print an absolute timetable as an iCalendar stream, one VEVENT per row
with the labels joined into the summary. Relative timetables have no
calendar position and are refused.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	tt, _, err := s.load(args[0])
	if err != nil {
		return err
	}
	tt.Sort()
	return ics.Export(os.Stdout, tt)
}
