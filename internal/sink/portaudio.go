// ABOUTME: Audio output sink using portaudio
// ABOUTME: Callback stream mixing scheduled buffers from a sample timeline
package sink

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/toneloop/toneloop-go/internal/audio"
)

// timelineEntry is a buffer pinned at an absolute frame position in
// the session
type timelineEntry struct {
	startFrame int64
	buf        *audio.SampleBuffer
	started    bool
}

// PortAudio plays scheduled buffers through a portaudio callback
// stream. The callback renders from a timeline keyed on absolute frame
// positions, so back-to-back buffers are gapless by construction.
type PortAudio struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	rate    int
	state   State
	notify  Notify
	clock   int64 // frames rendered since session start
	pending []*timelineEntry
}

// NewPortAudio opens the default output device at the given rate
func NewPortAudio(rate int, notify Notify) (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	p := &PortAudio{
		rate:   rate,
		state:  StateRunning,
		notify: notify,
	}

	stream, err := portaudio.OpenDefaultStream(0, audio.Channels, float64(rate), 0, p.render)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	p.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	return p, nil
}

func (p *PortAudio) Name() string { return "portaudio" }

func (p *PortAudio) SampleRate() int { return p.rate }

func (p *PortAudio) CurrentTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(float64(p.clock) / float64(p.rate) * float64(time.Second))
}

func (p *PortAudio) Schedule(buf *audio.SampleBuffer, at time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateRunning {
		return ErrSinkClosed
	}
	if buf.Frames() == 0 {
		return ErrBufferAlloc
	}

	startFrame := int64(at.Seconds()*float64(p.rate) + 0.5)
	p.pending = append(p.pending, &timelineEntry{startFrame: startFrame, buf: buf})

	return nil
}

// render is the portaudio callback. It copies every timeline entry
// overlapping the current frame window into the output and drops
// entries that have fully played.
func (p *PortAudio) render(out [][]float32) {
	frames := len(out[0])

	for i := 0; i < frames; i++ {
		out[0][i] = 0
		out[1][i] = 0
	}

	p.mu.Lock()

	windowStart := p.clock
	windowEnd := p.clock + int64(frames)
	var started []*timelineEntry

	live := p.pending[:0]
	for _, e := range p.pending {
		end := e.startFrame + int64(e.buf.Frames())
		if end <= windowStart {
			continue
		}
		if e.startFrame < windowEnd && !e.started {
			e.started = true
			started = append(started, e)
		}

		from := windowStart - e.startFrame // may be negative: starts mid-window
		for i := 0; i < frames; i++ {
			src := from + int64(i)
			if src < 0 || src >= int64(e.buf.Frames()) {
				continue
			}
			out[0][i] += e.buf.Left[src]
			out[1][i] += e.buf.Right[src]
		}
		live = append(live, e)
	}
	p.pending = live
	p.clock = windowEnd

	notify := p.notify
	p.mu.Unlock()

	if notify != nil {
		for _, e := range started {
			at := time.Duration(float64(e.startFrame) / float64(p.rate) * float64(time.Second))
			notify(Event{Kind: EventBufferStart, Offset: at, Frames: e.buf.Frames()})
		}
	}
}

func (p *PortAudio) Suspend() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateRunning {
		return nil
	}
	p.state = StateSuspended

	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("suspend device: %w", err)
	}
	return nil
}

func (p *PortAudio) Close() error {
	p.mu.Lock()
	if p.state == StateClosed {
		p.mu.Unlock()
		return nil
	}

	if p.state == StateRunning {
		if err := p.stream.Stop(); err != nil {
			log.Printf("Stream stop failed: %v", err)
		}
	}
	if err := p.stream.Close(); err != nil {
		log.Printf("Stream close failed: %v", err)
	}
	if err := portaudio.Terminate(); err != nil {
		log.Printf("Portaudio terminate failed: %v", err)
	}

	p.state = StateClosed
	p.pending = nil
	notify := p.notify
	p.mu.Unlock()

	if notify != nil {
		notify(Event{Kind: EventSessionEnd})
	}

	return nil
}

func (p *PortAudio) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
