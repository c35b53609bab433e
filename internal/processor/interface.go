package processor

import (
	"context"
	"io"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/summarizer"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcript"
)

// Request is one recording to process.
type Request struct {
	Title string
	Audio io.Reader
	// Format is a container hint such as "mp3"; blank means sniff.
	Format             string
	SkipNoiseReduction bool
	Owner              string
	// CorrelationID ties log lines and the stored record to the caller's
	// request. A fresh uuid is used when blank.
	CorrelationID string
}

// Result is what a caller hands to persistence.
type Result struct {
	Title         string
	Owner         string
	CorrelationID string
	Transcript    transcript.Transcript
	Summary       summarizer.Summary
	// AudioDuration is the length of the normalized recording.
	AudioDuration time.Duration
	Chunks        int
	Elapsed       time.Duration
}

// Processor runs the audio-to-text and text-to-summary pipelines. Calls are
// independent and safe to run concurrently.
type Processor interface {
	// Process transcribes req and summarizes the transcript.
	Process(ctx context.Context, req Request) (*Result, error)
	// Transcribe runs only the audio-to-text pipeline.
	Transcribe(ctx context.Context, req Request) (*Result, error)
	Summarize(ctx context.Context, text string) summarizer.Summary
	Close() error
}
