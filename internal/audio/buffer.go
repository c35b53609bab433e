// Package audio holds the PCM buffer type shared by every pipeline stage and
// the normalizer that turns arbitrary input containers into 16 kHz mono
// 16-bit PCM.
package audio

import (
	"math"
	"time"
)

// Canonical format produced by the normalizer.
const (
	TargetSampleRate = 16000
	TargetChannels   = 1
	TargetBitDepth   = 16
)

// Buffer is an owned sequence of interleaved PCM samples. Stages never write
// into a Buffer they received; they return a new one.
type Buffer struct {
	Samples    []int16
	SampleRate int
	Channels   int
	BitDepth   int
}

// NewBuffer returns a mono 16-bit buffer at the given rate.
func NewBuffer(samples []int16, sampleRate int) *Buffer {
	return &Buffer{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   1,
		BitDepth:   16,
	}
}

// Len returns the number of frames in the buffer.
func (b *Buffer) Len() int {
	if b == nil || b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the playback length.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Len()) * time.Second / time.Duration(b.SampleRate)
}

// FramesIn returns the number of frames covering d at the buffer's rate.
func (b *Buffer) FramesIn(d time.Duration) int {
	return int(int64(b.SampleRate) * int64(d) / int64(time.Second))
}

// Offset converts a frame index into a time offset.
func (b *Buffer) Offset(frame int) time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(frame) * time.Second / time.Duration(b.SampleRate)
}

// IsCanonical reports whether the buffer already is 16 kHz mono 16-bit.
func (b *Buffer) IsCanonical() bool {
	return b.SampleRate == TargetSampleRate && b.Channels == TargetChannels && b.BitDepth == TargetBitDepth
}

// Slice copies frames [start, end) into a new buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	if start < 0 {
		start = 0
	}
	if end > b.Len() {
		end = b.Len()
	}
	if end < start {
		end = start
	}
	out := make([]int16, (end-start)*b.Channels)
	copy(out, b.Samples[start*b.Channels:end*b.Channels])
	return &Buffer{
		Samples:    out,
		SampleRate: b.SampleRate,
		Channels:   b.Channels,
		BitDepth:   b.BitDepth,
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	return b.Slice(0, b.Len())
}

// RMS returns the root mean square amplitude of frames [start, end) of a mono
// buffer, in sample units.
func (b *Buffer) RMS(start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(b.Samples) {
		end = len(b.Samples)
	}
	if end <= start {
		return 0
	}
	var sum float64
	for _, s := range b.Samples[start:end] {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(end-start))
}

// MaxAmplitude is the largest magnitude representable at the buffer's bit
// depth.
func (b *Buffer) MaxAmplitude() float64 {
	depth := b.BitDepth
	if depth <= 0 {
		depth = 16
	}
	return float64(int64(1) << (depth - 1))
}

// ToFloat converts samples into [-1.0, 1.0].
func (b *Buffer) ToFloat() []float64 {
	scale := b.MaxAmplitude()
	out := make([]float64, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = float64(s) / scale
	}
	return out
}

// FromFloat quantizes normalized samples back into int16, clipping anything
// outside [-1.0, 1.0).
func FromFloat(in []float64) []int16 {
	out := make([]int16, len(in))
	for i, v := range in {
		s := math.Round(v * 32768.0)
		switch {
		case s > math.MaxInt16:
			s = math.MaxInt16
		case s < math.MinInt16:
			s = math.MinInt16
		}
		out[i] = int16(s)
	}
	return out
}
