package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/rota/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Browse a timetable interactively",
	Long: `Open a timetable in a full-screen viewer. Rows can be scrolled and
sorted in place, the verify checks run on demand, and with --slots a
fit can be previewed without touching the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().String("slots", "", "TOML slot manifest for fit previews")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if !isStderrTTY() {
		return fmt.Errorf("rota view requires a TTY (terminal)")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	slotsPath, _ := cmd.Flags().GetString("slots")
	return tui.Run(args[0], slotsPath, cfg)
}

// isStderrTTY reports whether stderr is attached to a terminal.
func isStderrTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}
