package processor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/segmenter"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcript"
)

// recognize fans chunks out to at most MaxConcurrentChunks workers. Each
// result lands at its chunk's index, so completion order does not matter.
// The group never returns an error, so one chunk cannot cancel another.
func (p *implProcessor) recognize(ctx context.Context, dir string, buf *audio.Buffer, chunks []segmenter.Chunk) []transcript.Piece {
	pieces := make([]transcript.Piece, len(chunks))

	var g errgroup.Group
	g.SetLimit(p.opts.MaxConcurrentChunks)
	for i, chunk := range chunks {
		g.Go(func() error {
			p.logger.Debug(ctx, "Recognizing %s", chunk)
			pieces[i] = p.recognizer.Recognize(ctx, dir, buf, chunk)
			return nil
		})
	}
	_ = g.Wait()

	return pieces
}
