// Package tui implements the interactive terminal UI for running recon
// modules one at a time.
package tui

import (
	"fmt"

	"github.com/aegis-sec/aegis/internal/module"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI with the given module registry.
func Run(reg *module.Registry) error {
	m := NewModel(reg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
