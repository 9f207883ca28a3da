// ABOUTME: Audio output sink using the oto library
// ABOUTME: Schedules PCM buffers onto the platform device at timed offsets
package sink

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/toneloop/toneloop-go/internal/audio"
)

// oto permits one context per process, so all Oto sinks share it. A
// fresh sink resumes the shared context and restarts the session clock;
// Close suspends it again.
var (
	otoMu      sync.Mutex
	otoShared  *oto.Context
	sharedRate int
)

func sharedContext(rate int) (*oto.Context, int, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoShared != nil {
		return otoShared, sharedRate, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: audio.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	<-readyChan

	otoShared = ctx
	sharedRate = rate
	return ctx, rate, nil
}

// Oto plays scheduled buffers through the platform audio device. Each
// buffer gets its own player, started by a timer when the session clock
// reaches the buffer's offset.
type Oto struct {
	mu      sync.Mutex
	ctx     *oto.Context
	rate    int
	start   time.Time
	state   State
	notify  Notify
	timers  []*time.Timer
	players []*oto.Player
}

// NewOto opens the device sink at the requested rate. The rate actually
// granted may differ if an earlier session already fixed it.
func NewOto(rate int, notify Notify) (*Oto, error) {
	ctx, granted, err := sharedContext(rate)
	if err != nil {
		return nil, err
	}

	if err := ctx.Resume(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	if granted != rate {
		log.Printf("Device rate fixed at %dHz by an earlier session (requested %dHz)", granted, rate)
	}

	return &Oto{
		ctx:    ctx,
		rate:   granted,
		start:  time.Now(),
		state:  StateRunning,
		notify: notify,
	}, nil
}

func (o *Oto) Name() string { return "oto" }

func (o *Oto) SampleRate() int { return o.rate }

func (o *Oto) CurrentTime() time.Duration {
	return time.Since(o.start)
}

func (o *Oto) Schedule(buf *audio.SampleBuffer, at time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateRunning {
		return ErrSinkClosed
	}

	pcm := buf.Interleave16()
	if len(pcm) == 0 {
		return ErrBufferAlloc
	}

	player := o.ctx.NewPlayer(bytes.NewReader(pcm))
	o.players = append(o.players, player)

	delay := at - time.Since(o.start)
	if delay < 0 {
		delay = 0
	}

	frames := buf.Frames()
	notify := o.notify
	timer := time.AfterFunc(delay, func() {
		player.Play()
		if notify != nil {
			notify(Event{Kind: EventBufferStart, Offset: at, Frames: frames})
		}
	})
	o.timers = append(o.timers, timer)

	return nil
}

func (o *Oto) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateRunning {
		return nil
	}

	o.stopPendingLocked()
	o.state = StateSuspended

	if err := o.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspend device: %w", err)
	}
	return nil
}

func (o *Oto) Close() error {
	o.mu.Lock()
	if o.state == StateClosed {
		o.mu.Unlock()
		return nil
	}

	o.stopPendingLocked()

	if o.state == StateRunning {
		if err := o.ctx.Suspend(); err != nil {
			log.Printf("Suspend on close failed: %v", err)
		}
	}

	for _, p := range o.players {
		if err := p.Close(); err != nil {
			log.Printf("Player close failed: %v", err)
		}
	}
	o.players = nil
	o.state = StateClosed
	notify := o.notify
	o.mu.Unlock()

	if notify != nil {
		notify(Event{Kind: EventSessionEnd})
	}

	return nil
}

func (o *Oto) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// stopPendingLocked cancels timers for buffers that have not started
func (o *Oto) stopPendingLocked() {
	for _, t := range o.timers {
		t.Stop()
	}
	o.timers = nil
}
