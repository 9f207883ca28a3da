// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling, and activation events
package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toneloop/toneloop-go/internal/player"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // Control is optional for testing

	if model.playing {
		t.Error("expected playing to be false initially")
	}

	if model.icon != player.IconPlay {
		t.Errorf("expected play icon initially, got %q", model.icon)
	}

	if model.showDebug {
		t.Error("expected showDebug to be false initially")
	}
}

func TestStatusMsgPlaying(t *testing.T) {
	model := NewModel(nil)

	playing := true
	model.applyStatus(StatusMsg{
		Playing:   &playing,
		Icon:      player.IconPause,
		SinkName:  "none",
		SessionID: "abc-123",
	})

	if !model.playing {
		t.Error("expected playing to be true after status update")
	}
	if model.icon != player.IconPause {
		t.Errorf("expected pause icon, got %q", model.icon)
	}
	if model.sinkName != "none" {
		t.Errorf("expected sink name 'none', got %q", model.sinkName)
	}
	if model.sessionID != "abc-123" {
		t.Errorf("expected session 'abc-123', got %q", model.sessionID)
	}
}

func TestStatusMsgCursor(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		CursorSamples: 132300,
		CursorSeconds: 3.0,
	})

	if model.cursorSamples != 132300 {
		t.Errorf("expected cursor 132300, got %d", model.cursorSamples)
	}
	if model.cursorSeconds != 3.0 {
		t.Errorf("expected 3.0s, got %f", model.cursorSeconds)
	}

	// Cursor fields always apply, including back to zero
	model.applyStatus(StatusMsg{})
	if model.cursorSamples != 0 {
		t.Errorf("expected cursor reset to 0, got %d", model.cursorSamples)
	}
}

func TestSpaceEmitsActivation(t *testing.T) {
	control := NewControl()
	model := NewModel(control)

	model.Update(tea.KeyMsg{Type: tea.KeySpace})

	select {
	case <-control.Activations:
	default:
		t.Error("expected an activation event for space keypress")
	}
}

func TestEnterEmitsActivation(t *testing.T) {
	control := NewControl()
	model := NewModel(control)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case <-control.Activations:
	default:
		t.Error("expected an activation event for enter keypress")
	}
}

func TestQuitKeySignalsQuit(t *testing.T) {
	control := NewControl()
	model := NewModel(control)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cmd == nil {
		t.Error("expected a quit command")
	}

	select {
	case <-control.Quit:
	default:
		t.Error("expected a quit signal on the control channel")
	}
}

func TestDebugToggle(t *testing.T) {
	model := NewModel(nil)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m := updated.(Model)

	if !m.showDebug {
		t.Error("expected showDebug true after 'd'")
	}
}

func TestViewRendersStates(t *testing.T) {
	model := NewModel(nil)

	if view := model.View(); view != "Loading..." {
		t.Errorf("expected loading placeholder before sizing, got %q", view)
	}

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := updated.(Model)

	view := m.View()
	if view == "" || view == "Loading..." {
		t.Error("expected rendered view after sizing")
	}
}
