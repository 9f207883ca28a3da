// ABOUTME: Idle/Playing toggle state machine
// ABOUTME: Owns the sink lifecycle, cursor reset, and program playback
package player

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/toneloop/toneloop-go/internal/audio"
	"github.com/toneloop/toneloop-go/internal/clock"
	"github.com/toneloop/toneloop-go/internal/sink"
)

// Play/pause glyphs shown by the UI
const (
	IconPlay  = "▶"
	IconPause = "⏸"
)

// SinkFactory builds a fresh sink for one play session
type SinkFactory func(notify sink.Notify) (sink.Sink, error)

// Toggle is the two-state machine driving playback. Idle→Playing tears
// down any stale sink, opens a fresh one, resets the cursor, and queues
// the whole program; Playing→Idle suspends and closes the sink, leaving
// the cursor untouched until the next play. Activations arrive on one
// event goroutine; the lock makes the read accessors safe from the
// status ticker.
type Toggle struct {
	factory SinkFactory
	program []audio.Segment
	cursor  *clock.Cursor

	mu        sync.Mutex
	out       sink.Sink
	sched     *Scheduler
	sessionID string
}

// NewToggle creates the machine in the Idle state
func NewToggle(factory SinkFactory, program []audio.Segment) *Toggle {
	return &Toggle{
		factory: factory,
		program: program,
		cursor:  clock.NewCursor(),
	}
}

// Playing reports whether the sink is currently in a running state.
// That sink test, not a stored flag, is the machine's state.
func (t *Toggle) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playingLocked()
}

func (t *Toggle) playingLocked() bool {
	return t.out != nil && t.out.State() == sink.StateRunning
}

// Icon returns the glyph for the current state: play when idle, pause
// while playing
func (t *Toggle) Icon() string {
	if t.Playing() {
		return IconPause
	}
	return IconPlay
}

// Activate handles one user activation, flipping the state
func (t *Toggle) Activate() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.playingLocked() {
		t.teardownLocked()
		log.Printf("Session %s stopped at cursor %d", t.sessionID, t.cursor.Pos())
		return nil
	}
	return t.playLocked()
}

// playLocked performs the Idle→Playing transition
func (t *Toggle) playLocked() error {
	// Stale sink from a failed session; teardown is idempotent
	t.teardownLocked()

	out, err := t.factory(t.onSinkEvent)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}

	t.out = out
	t.sessionID = uuid.New().String()
	t.cursor.Reset()
	t.sched = NewScheduler(t.cursor, out)

	log.Printf("Session %s: sink %s at %dHz, device clock %v",
		t.sessionID, out.Name(), out.SampleRate(), out.CurrentTime())

	for i, seg := range t.program {
		left, right := seg.Synthesize(audio.NominalRate)
		if err := t.sched.Queue(left, right); err != nil {
			t.teardownLocked()
			return fmt.Errorf("queue segment %d: %w", i, err)
		}
	}

	return nil
}

// teardownLocked suspends and closes the sink if one exists
func (t *Toggle) teardownLocked() {
	if t.out == nil {
		return
	}

	if err := t.out.Suspend(); err != nil {
		log.Printf("Sink suspend failed: %v", err)
	}
	if err := t.out.Close(); err != nil {
		log.Printf("Sink close failed: %v", err)
	}
	t.out = nil
}

// onSinkEvent receives fire-and-forget sink notifications
func (t *Toggle) onSinkEvent(e sink.Event) {
	if e.Kind == sink.EventSessionEnd {
		log.Printf("Sink released at cursor %d", t.cursor.Pos())
	}
}

// Cursor exposes the playback cursor for status reads
func (t *Toggle) Cursor() *clock.Cursor {
	return t.cursor
}

// SessionID returns the ID of the current or most recent session
func (t *Toggle) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessionID
}

// Stats returns the current session's scheduler statistics
func (t *Toggle) Stats() SchedulerStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sched == nil {
		return SchedulerStats{}
	}
	return t.sched.Stats()
}
