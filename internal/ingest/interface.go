package ingest

import (
	"context"

	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
)

// Report describes what happened to one input file.
type Report struct {
	Source   string
	Result   *processor.Result
	Files    []string
	RecordID string
	// ArchivedTo is empty when the source was left in place.
	ArchivedTo string
}

// Handler runs one audio file through the pipeline and delivers the result
// to disk and the store.
type Handler interface {
	HandleFile(ctx context.Context, path string) (*Report, error)
}
