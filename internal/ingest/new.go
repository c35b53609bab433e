package ingest

import (
	"github.com/nguyentantai21042004/scribe-flow/internal/export"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
	"github.com/nguyentantai21042004/scribe-flow/internal/store"
)

// Options controls where results go.
type Options struct {
	OutputDir string
	// ArchiveDir receives processed sources; failures go to ArchiveDir/failed.
	// Blank leaves sources in place.
	ArchiveDir         string
	Owner              string
	SkipNoiseReduction bool
}

type implHandler struct {
	processor processor.Processor
	exporter  export.Exporter
	store     store.Store
	opts      Options
	logger    logger.Logger
}

// New creates a Handler.
func New(proc processor.Processor, exp export.Exporter, st store.Store, opts Options, log logger.Logger) Handler {
	return &implHandler{
		processor: proc,
		exporter:  exp,
		store:     st,
		opts:      opts,
		logger:    log,
	}
}
