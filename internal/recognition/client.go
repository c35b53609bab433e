package recognition

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/segmenter"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcript"
)

func (c *implClient) Recognize(ctx context.Context, dir string, buf *audio.Buffer, chunk segmenter.Chunk) transcript.Piece {
	sub := buf.Slice(chunk.Start, chunk.End)

	if digitallySilent(sub) {
		c.logger.Info(ctx, "Chunk %d: digital silence, skipping", chunk.Index)
		return transcript.Unrecognized(chunk.Index)
	}
	cal := calibrate(sub, c.opts.Calibration, c.opts.MinEnergy)
	c.logger.Debug(ctx, "Chunk %d: ambient %.0f, energy threshold %.0f", chunk.Index, cal.ambient, cal.threshold)

	path := filepath.Join(dir, fmt.Sprintf("chunk-%04d.wav", chunk.Index))
	if err := audio.WriteWAVFile(path, sub); err != nil {
		c.logger.Error(ctx, "Chunk %d: export failed: %v", chunk.Index, err)
		return transcript.Failed(chunk.Index, fmt.Errorf("export chunk: %w", err))
	}

	callCtx := ctx
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	text, err := c.backend.Recognize(callCtx, Request{
		Index:           chunk.Index,
		Path:            path,
		Audio:           sub,
		EnergyThreshold: cal.threshold,
	})
	switch {
	case errors.Is(err, ErrUnrecognized):
		c.logger.Info(ctx, "Chunk %d: %s could not understand audio", chunk.Index, c.backend.Name())
		return transcript.Unrecognized(chunk.Index)
	case err != nil:
		c.logger.Error(ctx, "Chunk %d: %s request failed: %v", chunk.Index, c.backend.Name(), err)
		return transcript.Failed(chunk.Index, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		c.logger.Info(ctx, "Chunk %d: %s returned no text", chunk.Index, c.backend.Name())
		return transcript.Unrecognized(chunk.Index)
	}

	c.logger.Debug(ctx, "Chunk %d: %d chars", chunk.Index, len(text))
	return transcript.OK(chunk.Index, text)
}

func (c *implClient) Close() error {
	return c.backend.Close()
}
