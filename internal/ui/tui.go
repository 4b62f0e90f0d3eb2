// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the device monitor
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the monitor TUI. Feed it StatusMsg and EventMsg through
// the returned program's Send.
func Run(endpoint string) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(endpoint), tea.WithAltScreen())
	return p, nil
}
