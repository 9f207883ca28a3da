// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Renders the toggle state and cursor position, emits activations
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Playback
	playing   bool
	icon      string
	sessionID string
	sinkName  string

	// Cursor
	cursorSamples int64
	cursorSeconds float64

	// Stats
	queued       int64
	totalSamples int64
	levelGlyphs  [2]rune
	levelsDBov   [2]float64

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int

	control *Control
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
	s += m.renderPlayback()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders the title bar and toggle state
func (m Model) renderHeader() string {
	state := "Idle"
	if m.playing {
		state = "Playing"
	}

	return fmt.Sprintf(`┌─ Toneloop ───────────────────────────────────────────┐
│ %s  %-49s │
├──────────────────────────────────────────────────────┤
`, m.icon, state)
}

// renderPlayback renders the cursor position and levels
func (m Model) renderPlayback() string {
	s := fmt.Sprintf("│ Cursor: %d samples (%.2fs)%-20s │\n",
		m.cursorSamples, m.cursorSeconds, "")

	s += fmt.Sprintf("│ Level:  L %c %+6.1f dBov   R %c %+6.1f dBov%-9s │\n",
		m.levelGlyphs[0], m.levelsDBov[0], m.levelGlyphs[1], m.levelsDBov[1], "")

	return s
}

// renderStats renders session statistics
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Sink: %-10s Queued: %-6d Samples: %-10d │
│ Session: %-43s │
`, m.sinkName, m.queued, m.totalSamples, truncate(m.sessionID, 43))
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ space/enter:Play/Pause  d:Debug  q:Quit              │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Cursor samples: %-34d │
│   Total scheduled: %-33d │
`, m.cursorSamples, m.totalSamples)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.control != nil {
			select {
			case m.control.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case " ", "enter", "p":
		if m.control != nil {
			select {
			case m.control.Activations <- struct{}{}:
			default:
			}
		}
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Playing != nil {
		m.playing = *msg.Playing
	}
	if msg.Icon != "" {
		m.icon = msg.Icon
	}
	if msg.SinkName != "" {
		m.sinkName = msg.SinkName
	}
	if msg.SessionID != "" {
		m.sessionID = msg.SessionID
	}

	m.cursorSamples = msg.CursorSamples
	m.cursorSeconds = msg.CursorSeconds

	if msg.Queued != 0 {
		m.queued = msg.Queued
		m.totalSamples = msg.TotalSamples
	}
	if msg.LevelGlyphs[0] != 0 {
		m.levelGlyphs = msg.LevelGlyphs
		m.levelsDBov = msg.LevelsDBov
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Playing       *bool
	Icon          string
	SinkName      string
	SessionID     string
	CursorSamples int64
	CursorSeconds float64
	Queued        int64
	TotalSamples  int64
	LevelGlyphs   [2]rune
	LevelsDBov    [2]float64
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
