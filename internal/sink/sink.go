// ABOUTME: Output sink capability surface
// ABOUTME: Defines the device abstraction buffers are scheduled into
package sink

import (
	"errors"
	"time"

	"github.com/toneloop/toneloop-go/internal/audio"
)

// Error kinds surfaced at the device boundary
var (
	ErrDeviceUnavailable = errors.New("sink: device unavailable")
	ErrBufferAlloc       = errors.New("sink: buffer allocation failed")
	ErrSinkClosed        = errors.New("sink: closed")
)

// State describes the sink lifecycle
type State int

const (
	StateRunning State = iota
	StateSuspended
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// EventKind identifies a notification from a sink
type EventKind int

const (
	// EventBufferStart fires when a scheduled buffer is handed to the device
	EventBufferStart EventKind = iota
	// EventSessionEnd fires when the sink is closed
	EventSessionEnd
)

// Event carries a sink notification
type Event struct {
	Kind   EventKind
	Offset time.Duration
	Frames int
}

// Notify observes sink events. Optional; sinks never wait on it and
// callers must not block in it.
type Notify func(Event)

// Sink is the audio output device abstraction. Schedule submits a
// buffer to start at an offset measured from the sink's own start and
// returns immediately; playback happens asynchronously. Suspend and
// Close are the only way to stop submitted buffers. Implementations
// are not safe for concurrent Schedule calls.
type Sink interface {
	// Name identifies the backend
	Name() string

	// SampleRate returns the rate the device is actually running at
	SampleRate() int

	// CurrentTime returns the device clock, measured from sink start
	CurrentTime() time.Duration

	// Schedule submits a buffer to begin playing at the given offset
	Schedule(buf *audio.SampleBuffer, at time.Duration) error

	// Suspend halts the device without releasing it
	Suspend() error

	// Close releases the device; the sink is unusable afterwards
	Close() error

	// State reports the lifecycle state
	State() State
}
