// ABOUTME: Gapless buffer scheduler
// ABOUTME: Positions each queued buffer back-to-back against the playback cursor
package player

import (
	"fmt"
	"log"

	"github.com/toneloop/toneloop-go/internal/audio"
	"github.com/toneloop/toneloop-go/internal/clock"
	"github.com/toneloop/toneloop-go/internal/sink"
)

// Scheduler turns channel sample slices into scheduled playback events.
// Each queued buffer starts exactly where the previous one ends: the
// start offset is the cursor position divided by the nominal rate, and
// the cursor advances by the buffer's length after submission.
//
// All offsets are computed at the fixed nominal rate even when the
// device runs at a different rate. If the rates ever diverge the
// scheduled starts drift from real playback continuity; this is known
// and deliberately left uncorrected.
type Scheduler struct {
	cursor *clock.Cursor
	out    sink.Sink

	rateWarned bool
	stats      SchedulerStats
}

// SchedulerStats tracks scheduler metrics
type SchedulerStats struct {
	Queued       int64
	TotalSamples int64
	// Levels holds the per-channel dBov of the last queued buffer
	Levels [audio.Channels]float64
}

// NewScheduler creates a scheduler feeding the given sink
func NewScheduler(cursor *clock.Cursor, out sink.Sink) *Scheduler {
	return &Scheduler{
		cursor: cursor,
		out:    out,
	}
}

// Queue builds a stereo buffer from the two channel slices and
// schedules it directly after everything queued before it. A channel
// shorter than the other is padded with trailing silence. Calls must
// be issued in play order; nothing is reordered or batched.
func (s *Scheduler) Queue(ch0, ch1 []float32) error {
	buf := audio.NewSampleBuffer(ch0, ch1, audio.NominalRate)
	if buf.Frames() == 0 {
		return fmt.Errorf("queue buffer: %w", sink.ErrBufferAlloc)
	}

	if !s.rateWarned && s.out.SampleRate() != audio.NominalRate {
		log.Printf("Device rate %dHz differs from nominal %dHz; scheduled offsets will drift",
			s.out.SampleRate(), audio.NominalRate)
		s.rateWarned = true
	}

	at := s.cursor.Offset(audio.NominalRate)

	if err := s.out.Schedule(buf, at); err != nil {
		return fmt.Errorf("schedule buffer: %w", err)
	}

	// Advance only after a successful submission
	s.cursor.Advance(buf.Frames())

	s.stats.Queued++
	s.stats.TotalSamples += int64(buf.Frames())
	s.stats.Levels[0] = audio.DBov(buf.Left)
	s.stats.Levels[1] = audio.DBov(buf.Right)

	if s.stats.Queued <= 5 {
		log.Printf("Queued buffer #%d: %d samples at +%v, levels %.1f/%.1f dBov",
			s.stats.Queued, buf.Frames(), at, s.stats.Levels[0], s.stats.Levels[1])
	}

	return nil
}

// Stats returns scheduler statistics
func (s *Scheduler) Stats() SchedulerStats {
	return s.stats
}
