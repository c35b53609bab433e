package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/denoise"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/recognition"
	"github.com/nguyentantai21042004/scribe-flow/internal/segmenter"
	"github.com/nguyentantai21042004/scribe-flow/internal/summarizer"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

// Deps are the pipeline stages. All are required.
type Deps struct {
	Normalizer audio.Normalizer
	Filter     denoise.Filter
	Segmenter  segmenter.Segmenter
	Recognizer recognition.Client
	Summarizer summarizer.Summarizer
}

// Options holds per-processor settings.
type Options struct {
	// TempDir is the parent of each invocation's scratch directory.
	TempDir             string
	MaxConcurrentChunks int
	NoiseReduction      bool
}

type implProcessor struct {
	normalizer audio.Normalizer
	filter     denoise.Filter
	segmenter  segmenter.Segmenter
	recognizer recognition.Client
	summarizer summarizer.Summarizer
	opts       Options
	logger     logger.Logger
}

// New creates a Processor from explicit stages.
func New(deps Deps, opts Options, log logger.Logger) Processor {
	if opts.MaxConcurrentChunks <= 0 {
		opts.MaxConcurrentChunks = 1
	}
	return &implProcessor{
		normalizer: deps.Normalizer,
		filter:     deps.Filter,
		segmenter:  deps.Segmenter,
		recognizer: deps.Recognizer,
		summarizer: deps.Summarizer,
		opts:       opts,
		logger:     log,
	}
}

// NewFromConfig builds every stage and backend described by cfg.
func NewFromConfig(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (Processor, error) {
	backend, err := recognition.NewBackend(cfg, exec, log)
	if err != nil {
		return nil, fmt.Errorf("recognition backend: %w", err)
	}

	sumBackend, err := summarizer.NewBackend(cfg, log)
	if err != nil {
		// Summaries fall back to extraction without an abstractive backend.
		log.Warn(ctx, "Abstractive summarizer disabled: %v", err)
		sumBackend = nil
	}
	sum, err := summarizer.New(sumBackend, summarizer.OptionsFromConfig(cfg.Summarizer), log)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("summarizer: %w", err)
	}

	log.Info(ctx, "Recognition backend: %s, summarizer: %s (%s scoring)",
		backend.Name(), cfg.Summarizer.Backend, cfg.Summarizer.Scoring)

	return New(Deps{
		Normalizer: audio.New(cfg.Audio.FFmpegPath, cfg.Paths.Temp, exec, log),
		Filter:     denoise.New(log),
		Segmenter: segmenter.New(segmenter.Options{
			MinSilence:      time.Duration(cfg.Segmenter.MinSilenceMs) * time.Millisecond,
			SilenceThreshDB: cfg.Segmenter.SilenceThreshDB,
			KeepSilence:     time.Duration(cfg.Segmenter.KeepSilenceMs) * time.Millisecond,
		}, log),
		Recognizer: recognition.New(backend, recognition.Options{
			Calibration: time.Duration(cfg.Recognition.CalibrationMs) * time.Millisecond,
			Timeout:     cfg.Recognition.ChunkTimeout,
		}, log),
		Summarizer: sum,
	}, Options{
		TempDir:             cfg.Paths.Temp,
		MaxConcurrentChunks: cfg.Recognition.MaxConcurrentChunks,
		NoiseReduction:      cfg.NoiseReductionEnabled(),
	}, log), nil
}
