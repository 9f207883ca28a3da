// ABOUTME: Tests for audio buffer types
// ABOUTME: Tests zero-padding, duration, and PCM conversion
package audio

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestNewSampleBufferEqualChannels(t *testing.T) {
	ch0 := []float32{0.1, 0.2, 0.3}
	ch1 := []float32{-0.1, -0.2, -0.3}

	buf := NewSampleBuffer(ch0, ch1, NominalRate)

	if buf.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", buf.Frames())
	}

	for i := range ch0 {
		if buf.Left[i] != ch0[i] {
			t.Errorf("left[%d]: expected %f, got %f", i, ch0[i], buf.Left[i])
		}
		if buf.Right[i] != ch1[i] {
			t.Errorf("right[%d]: expected %f, got %f", i, ch1[i], buf.Right[i])
		}
	}
}

func TestNewSampleBufferZeroPadsShorterChannel(t *testing.T) {
	ch0 := make([]float32, 100)
	ch1 := make([]float32, 50)
	for i := range ch0 {
		ch0[i] = 0.5
	}
	for i := range ch1 {
		ch1[i] = 0.5
	}

	buf := NewSampleBuffer(ch0, ch1, NominalRate)

	if buf.Frames() != 100 {
		t.Errorf("expected buffer length 100, got %d", buf.Frames())
	}

	// Trailing samples of the shorter channel stay at silence
	for i := 50; i < 100; i++ {
		if buf.Right[i] != 0 {
			t.Errorf("right[%d]: expected 0, got %f", i, buf.Right[i])
		}
	}

	// Both channels padded symmetrically when the roles swap
	buf = NewSampleBuffer(ch1, ch0, NominalRate)
	if buf.Frames() != 100 {
		t.Errorf("expected buffer length 100, got %d", buf.Frames())
	}
	for i := 50; i < 100; i++ {
		if buf.Left[i] != 0 {
			t.Errorf("left[%d]: expected 0, got %f", i, buf.Left[i])
		}
	}
}

func TestSampleBufferDuration(t *testing.T) {
	buf := NewSampleBuffer(make([]float32, NominalRate), make([]float32, NominalRate), NominalRate)

	if buf.Duration() != time.Second {
		t.Errorf("expected 1s duration, got %v", buf.Duration())
	}
}

func TestInterleave16(t *testing.T) {
	buf := NewSampleBuffer([]float32{1.0, 0.0}, []float32{-1.0, 0.0}, NominalRate)

	pcm := buf.Interleave16()

	if len(pcm) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(pcm))
	}

	left := int16(binary.LittleEndian.Uint16(pcm[0:]))
	right := int16(binary.LittleEndian.Uint16(pcm[2:]))

	if left != 32767 {
		t.Errorf("expected full-scale left sample 32767, got %d", left)
	}
	if right != -32767 {
		t.Errorf("expected full-scale right sample -32767, got %d", right)
	}
}

func TestInterleave16Clamps(t *testing.T) {
	buf := NewSampleBuffer([]float32{2.0}, []float32{-2.0}, NominalRate)

	pcm := buf.Interleave16()

	left := int16(binary.LittleEndian.Uint16(pcm[0:]))
	right := int16(binary.LittleEndian.Uint16(pcm[2:]))

	if left != 32767 {
		t.Errorf("expected clamped left sample 32767, got %d", left)
	}
	if right != -32767 {
		t.Errorf("expected clamped right sample -32767, got %d", right)
	}
}
