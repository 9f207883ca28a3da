// ABOUTME: Audio type definitions
// ABOUTME: Defines formats and stereo sample buffers
package audio

import (
	"encoding/binary"
	"time"
)

// NominalRate is the fixed rate used for all scheduling arithmetic,
// independent of the rate the output device actually runs at.
const NominalRate = 44100

// Channels is the channel count of every buffer in the system.
const Channels = 2

// Format describes an output stream format
type Format struct {
	SampleRate int
	Channels   int
}

// SampleBuffer is one schedulable unit of stereo PCM. Samples are
// float32 in [-1.0, 1.0]; the two channels always have equal length.
type SampleBuffer struct {
	Left  []float32
	Right []float32
	Rate  int
}

// NewSampleBuffer builds a buffer from two channel slices. The buffer
// length is the longer of the two; the shorter channel is padded with
// trailing silence.
func NewSampleBuffer(ch0, ch1 []float32, rate int) *SampleBuffer {
	frames := len(ch0)
	if len(ch1) > frames {
		frames = len(ch1)
	}

	buf := &SampleBuffer{
		Left:  make([]float32, frames),
		Right: make([]float32, frames),
		Rate:  rate,
	}
	copy(buf.Left, ch0)
	copy(buf.Right, ch1)

	return buf
}

// Frames returns the per-channel sample count
func (b *SampleBuffer) Frames() int {
	return len(b.Left)
}

// Duration returns the buffer's play time at its own rate
func (b *SampleBuffer) Duration() time.Duration {
	if b.Rate == 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.Rate) * float64(time.Second))
}

// Interleave16 converts the buffer to interleaved signed 16-bit LE PCM,
// the wire format the device backends consume
func (b *SampleBuffer) Interleave16() []byte {
	out := make([]byte, b.Frames()*Channels*2)
	for i := 0; i < b.Frames(); i++ {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sampleToInt16(b.Left[i])))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sampleToInt16(b.Right[i])))
	}
	return out
}

// sampleToInt16 clamps and scales a float sample to int16 range
func sampleToInt16(s float32) int16 {
	if s > 1.0 {
		s = 1.0
	}
	if s < -1.0 {
		s = -1.0
	}
	return int16(s * 32767)
}
