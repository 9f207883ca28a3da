// ABOUTME: Main application orchestration
// ABOUTME: Runs the event loop wiring activations, the toggle, and the TUI
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toneloop/toneloop-go/internal/audio"
	"github.com/toneloop/toneloop-go/internal/player"
	"github.com/toneloop/toneloop-go/internal/ui"
)

// statusInterval is how often the TUI status refreshes
const statusInterval = 200 * time.Millisecond

// Config holds application configuration
type Config struct {
	SinkName string
	Factory  player.SinkFactory
	Program  []audio.Segment

	// UseTUI starts the terminal UI; without it activations come only
	// from AutoPlay
	UseTUI bool

	// AutoPlay issues one activation at startup
	AutoPlay bool
}

// App owns the single event-loop goroutine. Every activation, from the
// TUI or AutoPlay, is serialized through one channel, so the toggle and
// cursor are only ever mutated from one place.
type App struct {
	config  Config
	toggle  *player.Toggle
	control *ui.Control
	tuiProg *tea.Program
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates the application
func New(config Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		config:  config,
		toggle:  player.NewToggle(config.Factory, config.Program),
		control: ui.NewControl(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	if a.config.UseTUI {
		tuiProg, err := ui.Run(a.control)
		if err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		a.tuiProg = tuiProg
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI stopped: %v", err)
			}
			a.cancel()
		}()
	}

	if a.config.AutoPlay {
		a.control.Activations <- struct{}{}
	}

	a.loop()

	return nil
}

// loop is the single event loop owning all toggle state
func (a *App) loop() {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.control.Activations:
			if err := a.toggle.Activate(); err != nil {
				// Degrade to idle instead of crashing; the device may
				// come back on the next activation
				log.Printf("Activation failed: %v", err)
			}
			a.sendStatus()

		case <-ticker.C:
			a.sendStatus()

		case <-a.control.Quit:
			log.Printf("Quit requested from TUI")
			a.shutdown()
			return

		case <-a.ctx.Done():
			a.shutdown()
			return
		}
	}
}

// sendStatus pushes the current state to the TUI
func (a *App) sendStatus() {
	if a.tuiProg == nil {
		return
	}

	playing := a.toggle.Playing()
	stats := a.toggle.Stats()
	cursorSamples := a.toggle.Cursor().Pos()

	levels := stats.Levels
	if stats.Queued == 0 {
		levels = [2]float64{audio.MinDBov(), audio.MinDBov()}
	}

	msg := ui.StatusMsg{
		Playing:       &playing,
		Icon:          a.toggle.Icon(),
		SinkName:      a.config.SinkName,
		SessionID:     a.toggle.SessionID(),
		CursorSamples: cursorSamples,
		CursorSeconds: float64(cursorSamples) / float64(audio.NominalRate),
		Queued:        stats.Queued,
		TotalSamples:  stats.TotalSamples,
		LevelGlyphs: [2]rune{
			audio.LevelGlyph(audio.NormalizeDBov(levels[0])),
			audio.LevelGlyph(audio.NormalizeDBov(levels[1])),
		},
		LevelsDBov: levels,
	}

	a.tuiProg.Send(msg)
}

// shutdown tears down playback and the TUI
func (a *App) shutdown() {
	if a.toggle.Playing() {
		if err := a.toggle.Activate(); err != nil {
			log.Printf("Teardown failed: %v", err)
		}
	}

	if a.tuiProg != nil {
		a.tuiProg.Quit()
	}
}

// Stop requests shutdown from outside the loop (signal handler)
func (a *App) Stop() {
	a.cancel()
}

// Toggle exposes the state machine for tests
func (a *App) Toggle() *player.Toggle {
	return a.toggle
}

// Control exposes the activation channels for tests
func (a *App) Control() *ui.Control {
	return a.control
}
