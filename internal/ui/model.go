// ABOUTME: Bubbletea model for the device monitor TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// maxEvents bounds the recent notification log shown in the TUI.
const maxEvents = 6

// Model represents the TUI state
type Model struct {
	// Connection
	connected bool
	endpoint  string
	modelName string

	// Device state
	power   string
	volume  int
	muted   bool
	input   string
	playing string

	// Recent notifications, newest last
	events []string

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int

	// Stats
	received int64
	dropped  int64
}

// NewModel creates a new TUI model
func NewModel(endpoint string) Model {
	return Model{
		endpoint: endpoint,
		power:    "unknown",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case EventMsg:
		m.appendEvent(string(msg))
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderState()
	s += m.renderEvents()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders connection status
func (m Model) renderHeader() string {
	connStatus := "Disconnected"
	if m.connected {
		connStatus = fmt.Sprintf("Connected to %s", m.endpoint)
	}

	name := m.modelName
	if name == "" {
		name = "(unknown model)"
	}

	return fmt.Sprintf(`┌─ SongPal Monitor ────────────────────────────────────┐
│ Status: %-45s │
│ Device: %-45s │
├──────────────────────────────────────────────────────┤
`, truncate(connStatus, 45), truncate(name, 45))
}

// renderState renders the current device state
func (m Model) renderState() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}

	playing := m.playing
	if playing == "" {
		playing = "(nothing playing)"
	}

	return fmt.Sprintf("│ Power:  %-45s │\n"+
		"│ Volume: %-45s │\n"+
		"│ Input:  %-45s │\n"+
		"│ Track:  %-45s │\n",
		m.power,
		truncate(fmt.Sprintf("%d%%%s", m.volume, muteIcon), 45),
		truncate(m.input, 45),
		truncate(playing, 45))
}

// renderEvents renders the recent notification log
func (m Model) renderEvents() string {
	s := "├──────────────────────────────────────────────────────┤\n"
	if len(m.events) == 0 {
		s += "│ No events yet                                        │\n"
		return s
	}
	for _, e := range m.events {
		s += fmt.Sprintf("│ %-52s │\n", truncate(e, 52))
	}
	return s
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	return fmt.Sprintf("│ DEBUG: received=%d dropped=%d%-24s │\n",
		m.received, m.dropped, "")
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ d:Debug  q:Quit                                      │
└──────────────────────────────────────────────────────┘
`
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Connected != nil {
		m.connected = *msg.Connected
	}
	if msg.ModelName != "" {
		m.modelName = msg.ModelName
	}
	if msg.Power != "" {
		m.power = msg.Power
	}
	if msg.Volume != nil {
		m.volume = *msg.Volume
	}
	if msg.Muted != nil {
		m.muted = *msg.Muted
	}
	if msg.Input != "" {
		m.input = msg.Input
	}
	if msg.Playing != "" {
		m.playing = msg.Playing
	}
	if msg.Received != 0 {
		m.received = msg.Received
		m.dropped = msg.Dropped
	}
}

// appendEvent pushes an event line, dropping the oldest past maxEvents.
func (m *Model) appendEvent(event string) {
	m.events = append(m.events, event)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Connected *bool
	ModelName string
	Power     string
	Volume    *int
	Muted     *bool
	Input     string
	Playing   string
	Received  int64
	Dropped   int64
}

// EventMsg appends a line to the notification log
type EventMsg string

// truncate shortens a string to maxLen with an ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
