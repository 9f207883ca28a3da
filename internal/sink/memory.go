// ABOUTME: In-memory recording sink
// ABOUTME: Captures scheduled buffers for tests and silent operation
package sink

import (
	"sync"
	"time"

	"github.com/toneloop/toneloop-go/internal/audio"
)

// Scheduled is one recorded Schedule call
type Scheduled struct {
	Buffer *audio.SampleBuffer
	At     time.Duration
}

// Memory is a sink that records every scheduled buffer instead of
// playing it. It backs the tests and the "none" backend.
type Memory struct {
	mu     sync.Mutex
	rate   int
	start  time.Time
	state  State
	events []Scheduled
	notify Notify
}

// NewMemory creates a running memory sink at the given rate
func NewMemory(rate int, notify Notify) *Memory {
	return &Memory{
		rate:   rate,
		start:  time.Now(),
		state:  StateRunning,
		notify: notify,
	}
}

func (m *Memory) Name() string { return "none" }

func (m *Memory) SampleRate() int { return m.rate }

func (m *Memory) CurrentTime() time.Duration {
	return time.Since(m.start)
}

func (m *Memory) Schedule(buf *audio.SampleBuffer, at time.Duration) error {
	m.mu.Lock()
	if m.state != StateRunning {
		m.mu.Unlock()
		return ErrSinkClosed
	}
	m.events = append(m.events, Scheduled{Buffer: buf, At: at})
	notify := m.notify
	m.mu.Unlock()

	if notify != nil {
		notify(Event{Kind: EventBufferStart, Offset: at, Frames: buf.Frames()})
	}

	return nil
}

func (m *Memory) Suspend() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateRunning {
		m.state = StateSuspended
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return nil
	}
	m.state = StateClosed
	notify := m.notify
	m.mu.Unlock()

	if notify != nil {
		notify(Event{Kind: EventSessionEnd})
	}

	return nil
}

func (m *Memory) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Scheduled returns a copy of the recorded schedule calls
func (m *Memory) Scheduled() []Scheduled {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Scheduled, len(m.events))
	copy(out, m.events)
	return out
}
