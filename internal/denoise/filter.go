// Package denoise isolates speech-band content with a Butterworth bandpass.
package denoise

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

// Speech band edges and filter order.
const (
	LowCutoffHz   = 300.0
	HighCutoffHz  = 3400.0
	Order         = 4
	MinSampleRate = 8000
)

// ErrUnsupportedRate is returned for sample rates the filter cannot serve.
// Callers recover by skipping noise reduction.
var ErrUnsupportedRate = errors.New("denoise: unsupported sample rate")

// Filter applies noise reduction to a buffer.
type Filter interface {
	Apply(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error)
}

type implFilter struct {
	logger logger.Logger
}

// New creates the speech bandpass Filter.
func New(log logger.Logger) Filter {
	return &implFilter{logger: log}
}

// Apply converts samples to [-1, 1], runs the 300-3400 Hz bandpass and
// rescales to 16-bit PCM. The input buffer is left untouched.
func (f *implFilter) Apply(ctx context.Context, buf *audio.Buffer) (*audio.Buffer, error) {
	if buf.SampleRate < MinSampleRate {
		return nil, fmt.Errorf("%w: %d Hz (minimum %d Hz)", ErrUnsupportedRate, buf.SampleRate, MinSampleRate)
	}
	if buf.Channels != 1 {
		return nil, fmt.Errorf("denoise: want mono input, got %d channels", buf.Channels)
	}

	sections, err := designBandpass(Order, LowCutoffHz, HighCutoffHz, buf.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedRate, err)
	}

	f.logger.Debug(ctx, "Applying %d-section bandpass %.0f-%.0f Hz at %d Hz",
		len(sections), LowCutoffHz, HighCutoffHz, buf.SampleRate)

	out := filter(sections, buf.ToFloat())
	return &audio.Buffer{
		Samples:    audio.FromFloat(out),
		SampleRate: buf.SampleRate,
		Channels:   buf.Channels,
		BitDepth:   16,
	}, nil
}
