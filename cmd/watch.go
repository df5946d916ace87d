package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/rota/internal/slotfit"
	"github.com/papapumpkin/rota/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-verify a timetable whenever it changes",
	Long: `Block on filesystem events for FILE and rerun the verify checks after
every save, plus a fit against --slots when a manifest is given.
Interrupt to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("slots", "", "TOML slot manifest to re-fit on change")
	watchCmd.Flags().StringSlice("counts", nil, "label keys to balance-check (default: every label)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	path := args[0]
	keys, _ := cmd.Flags().GetStringSlice("counts")
	if len(keys) == 0 {
		keys = s.cfg.CountLabels
	}
	slotsPath, _ := cmd.Flags().GetString("slots")

	w, err := watch.New(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.printer.WatchStart(path)
	s.printer.Info("ctrl-c to stop")
	s.watchPass(path, keys, slotsPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ch, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if ch.Removed {
				s.printer.WatchRemoved(path)
				continue
			}
			s.printer.WatchChange(path)
			s.watchPass(path, keys, slotsPath)
		}
	}
}

// watchPass runs one verify round, plus a fit when a manifest was given.
// Failures are reported, not returned, so the loop keeps running across
// broken intermediate saves.
func (s *session) watchPass(path string, keys []string, slotsPath string) {
	if _, err := s.verifyPass(path, keys); err != nil {
		s.printer.Error(err.Error())
		return
	}
	if slotsPath == "" {
		return
	}

	tt, f, err := s.load(path)
	if err != nil {
		s.printer.Error(err.Error())
		return
	}
	slots, err := slotfit.LoadFile(slotsPath, f)
	if err != nil {
		s.printer.Error(err.Error())
		return
	}
	if err := slotfit.Fit(tt, slots); err != nil {
		s.printer.FitFailed(err)
		return
	}
	s.printer.FitDone(slotfit.Groups(tt), tt.Len())
}
