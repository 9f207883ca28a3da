// ABOUTME: Tests for the memory sink
// ABOUTME: Tests recording, lifecycle states, and event notification
package sink

import (
	"errors"
	"testing"
	"time"

	"github.com/toneloop/toneloop-go/internal/audio"
)

func TestMemorySchedulesRecord(t *testing.T) {
	m := NewMemory(audio.NominalRate, nil)

	buf := audio.NewSampleBuffer(make([]float32, 100), make([]float32, 100), audio.NominalRate)
	if err := m.Schedule(buf, 250*time.Millisecond); err != nil {
		t.Fatalf("unexpected schedule error: %v", err)
	}

	events := m.Scheduled()
	if len(events) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(events))
	}
	if events[0].At != 250*time.Millisecond {
		t.Errorf("expected offset 250ms, got %v", events[0].At)
	}
	if events[0].Buffer.Frames() != 100 {
		t.Errorf("expected 100 frames, got %d", events[0].Buffer.Frames())
	}
}

func TestMemoryLifecycle(t *testing.T) {
	m := NewMemory(audio.NominalRate, nil)

	if m.State() != StateRunning {
		t.Errorf("expected running state, got %v", m.State())
	}

	if err := m.Suspend(); err != nil {
		t.Fatalf("unexpected suspend error: %v", err)
	}
	if m.State() != StateSuspended {
		t.Errorf("expected suspended state, got %v", m.State())
	}

	if err := m.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if m.State() != StateClosed {
		t.Errorf("expected closed state, got %v", m.State())
	}

	// Close is idempotent
	if err := m.Close(); err != nil {
		t.Errorf("expected nil on double close, got %v", err)
	}
}

func TestMemoryRejectsAfterClose(t *testing.T) {
	m := NewMemory(audio.NominalRate, nil)
	m.Close()

	buf := audio.NewSampleBuffer(make([]float32, 10), make([]float32, 10), audio.NominalRate)
	err := m.Schedule(buf, 0)

	if !errors.Is(err, ErrSinkClosed) {
		t.Errorf("expected ErrSinkClosed, got %v", err)
	}
	if len(m.Scheduled()) != 0 {
		t.Errorf("expected no recorded events after close, got %d", len(m.Scheduled()))
	}
}

func TestMemoryNotifiesObserver(t *testing.T) {
	var got []Event
	m := NewMemory(audio.NominalRate, func(e Event) {
		got = append(got, e)
	})

	buf := audio.NewSampleBuffer(make([]float32, 64), make([]float32, 64), audio.NominalRate)
	m.Schedule(buf, time.Second)
	m.Close()

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Kind != EventBufferStart || got[0].Frames != 64 || got[0].Offset != time.Second {
		t.Errorf("unexpected buffer-start event: %+v", got[0])
	}
	if got[1].Kind != EventSessionEnd {
		t.Errorf("expected session-end event, got %+v", got[1])
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateRunning:   "running",
		StateSuspended: "suspended",
		StateClosed:    "closed",
		State(99):      "unknown",
	}

	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String(): expected %q, got %q", state, want, got)
		}
	}
}
