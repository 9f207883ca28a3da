// ABOUTME: Signal level metering
// ABOUTME: RMS and dBov measurement for queued buffers
package audio

import "math"

// epsilon32 is the smallest level DBov reports, avoiding log10(0)
const epsilon32 = 1.1920929e-07

// RMS returns the root mean square of the samples, 0 for an empty slice
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var squareSum float64
	for _, s := range samples {
		squareSum += float64(s) * float64(s)
	}

	return math.Sqrt(squareSum / float64(len(samples)))
}

// DBov measures decibels relative to full scale. The RMS of a
// full-scale square wave is 0 dBov; every measurable level is negative,
// floored at 20*log10(epsilon) for silent input.
func DBov(samples []float32) float64 {
	rms := RMS(samples)
	if rms < epsilon32 {
		rms = epsilon32
	}
	return 20 * math.Log10(rms)
}

// MinDBov is the floor DBov returns for silence
func MinDBov() float64 {
	return 20 * math.Log10(epsilon32)
}

// levelGlyphs maps a normalized level to a vertical bar character
var levelGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// LevelGlyph renders a normalized [0,1] level as one block glyph
func LevelGlyph(normalized float64) rune {
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	last := len(levelGlyphs) - 1
	return levelGlyphs[int(math.Round(float64(last)*normalized))]
}

// NormalizeDBov maps a dBov reading onto [0,1] for display, with the
// silence floor at 0 and full scale at 1
func NormalizeDBov(db float64) float64 {
	n := 1.0 - db/MinDBov()
	if n < 0 {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	return n
}
