package recognition

import (
	"context"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/segmenter"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcript"
)

// Request is a single chunk handed to a Backend. Path points at a 16 kHz mono
// 16-bit WAV copy of Audio.
type Request struct {
	Index int
	Path  string
	Audio *audio.Buffer
	// EnergyThreshold is the adaptive speech threshold calibrated from the
	// chunk's leading window, in sample units.
	EnergyThreshold float64
}

// Backend turns one chunk of speech into text. It returns ErrUnrecognized
// when the audio holds nothing it can interpret.
type Backend interface {
	Recognize(ctx context.Context, req Request) (string, error)
	Name() string
	Close() error
}

// Client recognizes chunks of a normalized buffer. It never returns an
// error; faults are reported through the piece status.
type Client interface {
	Recognize(ctx context.Context, dir string, buf *audio.Buffer, chunk segmenter.Chunk) transcript.Piece
	Close() error
}
