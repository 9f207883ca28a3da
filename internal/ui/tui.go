// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the activation channel
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/toneloop/toneloop-go/internal/player"
)

// Control holds the channels the TUI uses to drive the player
type Control struct {
	// Activations delivers one event per play/pause keypress
	Activations chan struct{}
	Quit        chan struct{}
}

// NewControl creates the control channels
func NewControl() *Control {
	return &Control{
		Activations: make(chan struct{}, 10),
		Quit:        make(chan struct{}, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(control *Control) Model {
	return Model{
		icon:    player.IconPlay,
		control: control,
	}
}

// Run starts the TUI
func Run(control *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(control), tea.WithAltScreen())
	return p, nil
}
