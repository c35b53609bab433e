package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/summarizer"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcript"
)

func (p *implProcessor) Process(ctx context.Context, req Request) (*Result, error) {
	res, err := p.Transcribe(ctx, req)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithCorrelationID(ctx, res.CorrelationID)
	res.Summary = p.Summarize(ctx, res.Transcript.Text)
	return res, nil
}

// Transcribe decodes, filters, splits and recognizes req.Audio. Only decode
// failures and scratch directory errors are returned; chunk failures are
// reflected in the transcript outcome.
func (p *implProcessor) Transcribe(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	if req.CorrelationID == "" {
		req.CorrelationID = uuid.NewString()
	}
	ctx = logger.WithCorrelationID(ctx, req.CorrelationID)

	res := &Result{
		Title:         req.Title,
		Owner:         req.Owner,
		CorrelationID: req.CorrelationID,
	}
	p.logger.Info(ctx, "Starting transcription: %q", req.Title)

	// Step 1: Decode into 16 kHz mono PCM
	if req.Audio == nil {
		res.Transcript = transcript.Transcript{Outcome: transcript.OutcomeEmptyInput}
		return res, nil
	}
	buf, err := p.normalizer.Normalize(ctx, req.Audio, req.Format)
	if errors.Is(err, audio.ErrEmptyInput) {
		p.logger.Warn(ctx, "Empty audio input")
		res.Transcript = transcript.Transcript{Outcome: transcript.OutcomeEmptyInput}
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("normalize audio: %w", err)
	}
	res.AudioDuration = buf.Duration()
	if buf.Len() == 0 {
		res.Transcript = transcript.Transcript{Outcome: transcript.OutcomeEmptyInput}
		return res, nil
	}

	// Step 2: Optional speech-band filter
	if p.opts.NoiseReduction && !req.SkipNoiseReduction {
		filtered, err := p.filter.Apply(ctx, buf)
		if err != nil {
			p.logger.Warn(ctx, "Skipping noise reduction: %v", err)
		} else {
			buf = filtered
		}
	}

	// Step 3: Split on silence
	chunks := p.segmenter.Split(ctx, buf)
	res.Chunks = len(chunks)

	// Step 4: Recognize chunks inside a scratch dir removed on every path
	dir, err := p.makeTempDir()
	if err != nil {
		return nil, err
	}
	defer p.cleanupTempDir(ctx, dir)

	pieces := p.recognize(ctx, dir, buf, chunks)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("transcription cancelled: %w", err)
	}

	// Step 5: Assemble in chunk order
	res.Transcript = transcript.Assemble(pieces)
	ok, unrecognized, failed := res.Transcript.Counts()
	res.Elapsed = time.Since(startTime)

	p.logger.Info(ctx, "Transcription finished: outcome=%s chunks=%d ok=%d unrecognized=%d failed=%d audio=%s took=%s",
		res.Transcript.Outcome, len(chunks), ok, unrecognized, failed,
		res.AudioDuration.Round(time.Millisecond), res.Elapsed.Round(time.Millisecond))
	return res, nil
}

func (p *implProcessor) Summarize(ctx context.Context, text string) summarizer.Summary {
	sum := p.summarizer.Summarize(ctx, text)
	if sum.Fallback != nil {
		p.logger.Warn(ctx, "Summary fell back to %s: %v", sum.Strategy, sum.Fallback)
	}
	return sum
}

func (p *implProcessor) Close() error {
	return errors.Join(p.recognizer.Close(), p.summarizer.Close())
}
