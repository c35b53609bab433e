// Package segmenter splits normalized audio into utterance chunks on silence.
package segmenter

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

// Options controls silence detection.
type Options struct {
	// MinSilence is the shortest quiet stretch that counts as a split point.
	MinSilence time.Duration
	// SilenceThreshDB is the RMS level, in dBFS of the buffer's bit depth,
	// at or below which a window counts as silent.
	SilenceThreshDB float64
	// KeepSilence is the padding retained on each side of a chunk.
	KeepSilence time.Duration
	// SeekStep is the stride between analysis windows.
	SeekStep time.Duration
}

// DefaultOptions returns 500 ms / -40 dBFS / 300 ms padding / 1 ms step.
func DefaultOptions() Options {
	return Options{
		MinSilence:      500 * time.Millisecond,
		SilenceThreshDB: -40,
		KeepSilence:     300 * time.Millisecond,
		SeekStep:        time.Millisecond,
	}
}

// Chunk is a bounded sub-range [Start, End) of frames of a buffer.
type Chunk struct {
	Index    int
	Start    int
	End      int
	Offset   time.Duration
	Duration time.Duration
}

// Frames returns the number of frames covered.
func (c Chunk) Frames() int {
	return c.End - c.Start
}

// String returns a human-readable representation for logging.
func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d: %s+%s", c.Index, c.Offset, c.Duration)
}

// Segmenter splits a buffer into ordered chunks.
type Segmenter interface {
	Split(ctx context.Context, buf *audio.Buffer) []Chunk
}

type implSegmenter struct {
	opts   Options
	logger logger.Logger
}

// New creates a Segmenter. Zero-valued options fall back to the defaults.
func New(opts Options, log logger.Logger) Segmenter {
	def := DefaultOptions()
	if opts.MinSilence <= 0 {
		opts.MinSilence = def.MinSilence
	}
	if opts.SilenceThreshDB == 0 {
		opts.SilenceThreshDB = def.SilenceThreshDB
	}
	if opts.KeepSilence < 0 {
		opts.KeepSilence = 0
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = def.SeekStep
	}
	return &implSegmenter{opts: opts, logger: log}
}

// Split returns the utterance chunks of buf in temporal order. When no
// non-silent range is found the whole buffer is returned as one chunk.
func (s *implSegmenter) Split(ctx context.Context, buf *audio.Buffer) []Chunk {
	ranges := splitRanges(buf, s.opts)
	if len(ranges) == 0 {
		s.logger.Warn(ctx, "Could not split audio on silence, processing as one chunk")
		ranges = [][2]int{{0, buf.Len()}}
	}

	chunks := make([]Chunk, 0, len(ranges))
	for _, r := range ranges {
		chunks = append(chunks, Chunk{
			Index:    len(chunks),
			Start:    r[0],
			End:      r[1],
			Offset:   buf.Offset(r[0]),
			Duration: buf.Offset(r[1] - r[0]),
		})
	}

	s.logger.Info(ctx, "Split into %d chunks", len(chunks))
	return chunks
}
