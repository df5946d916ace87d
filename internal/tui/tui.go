// Package tui implements the full-screen timetable viewer behind
// `rota view`.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/rota/internal/config"
)

// Run opens the viewer over the timetable at path and blocks until the
// user quits. slotsPath may be empty; giving one enables the fit preview.
func Run(path, slotsPath string, cfg config.Config) error {
	p := tea.NewProgram(NewModel(path, slotsPath, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
