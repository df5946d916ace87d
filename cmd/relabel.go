package cmd

import (
	"github.com/spf13/cobra"
)

var relabelCmd = &cobra.Command{
	Use:   "relabel FILE OLD NEW",
	Short: "Rename a label key across a timetable",
	Long: `Rename the label keyed OLD to NEW in every row that carries it. Display
names that were customized away from the key are kept; renaming onto an
existing key is refused.`,
	Args: cobra.ExactArgs(3),
	RunE: runRelabel,
}

func init() {
	rootCmd.AddCommand(relabelCmd)
}

func runRelabel(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	tt, f, err := s.load(args[0])
	if err != nil {
		return err
	}
	if err := tt.Rename(args[1], args[2]); err != nil {
		return err
	}
	return s.output(tt, f)
}
