package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Concatenate timetables of the same variant",
	Long: `Concatenate the rows of several timetables. All inputs must share one
time variant; the first file's format carries through to the output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().Bool("sort", false, "sort the result by time")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	merged, f, err := s.load(args[0])
	if err != nil {
		return err
	}
	for _, path := range args[1:] {
		next, _, err := s.load(path)
		if err != nil {
			return err
		}
		merged, err = merged.Merge(next)
		if err != nil {
			return fmt.Errorf("merging %s: %w", path, err)
		}
	}

	if doSort, _ := cmd.Flags().GetBool("sort"); doSort {
		merged.Sort()
	}
	return s.output(merged, f)
}
