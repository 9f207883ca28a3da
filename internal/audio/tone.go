// ABOUTME: Sine tone synthesis
// ABOUTME: Generates the fixed segment program the player schedules
package audio

import (
	"math"
	"time"
)

// toneGain leaves headroom so the device never clips
const toneGain = 0.5

// Segment is one logical tone, queued as a unit
type Segment struct {
	Freq float64
	Dur  time.Duration
}

// Synthesize renders the segment as two identical sine channels at the
// given rate
func (s Segment) Synthesize(rate int) (left, right []float32) {
	frames := int(float64(rate) * s.Dur.Seconds())

	left = make([]float32, frames)
	right = make([]float32, frames)

	for i := 0; i < frames; i++ {
		t := float64(i) / float64(rate)
		v := float32(toneGain * math.Sin(2*math.Pi*s.Freq*t))
		left[i] = v
		right[i] = v
	}

	return left, right
}

// DefaultProgram returns the built-in content: an A-major triad, each
// tone repeated three times, nine segments total.
func DefaultProgram() []Segment {
	tones := []float64{
		440.00, // A4
		554.37, // C#5
		659.25, // E5
	}

	const repeats = 3
	const segmentDur = 600 * time.Millisecond

	program := make([]Segment, 0, len(tones)*repeats)
	for _, freq := range tones {
		for r := 0; r < repeats; r++ {
			program = append(program, Segment{Freq: freq, Dur: segmentDur})
		}
	}

	return program
}
