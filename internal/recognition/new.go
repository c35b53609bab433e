package recognition

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
	"github.com/nguyentantai21042004/scribe-flow/pkg/gemini"
)

// Options tunes the per-chunk energy gate and backend timeout.
type Options struct {
	Calibration time.Duration
	MinEnergy   float64
	Timeout     time.Duration
}

type implClient struct {
	backend Backend
	opts    Options
	logger  logger.Logger
}

// New wraps backend with calibration, WAV export and timeout handling.
func New(backend Backend, opts Options, log logger.Logger) Client {
	if opts.Calibration <= 0 {
		opts.Calibration = DefaultCalibration
	}
	if opts.MinEnergy <= 0 {
		opts.MinEnergy = DefaultMinEnergy
	}
	return &implClient{
		backend: backend,
		opts:    opts,
		logger:  log,
	}
}

// NewBackend builds the backend selected by recognition.backend.
func NewBackend(cfg *config.Config, exec executor.Executor, log logger.Logger) (Backend, error) {
	switch cfg.Recognition.Backend {
	case config.BackendWhisperAPI:
		return NewWhisperAPI(WhisperAPIConfig{
			APIKey:   cfg.Secrets.OpenAIKey,
			BaseURL:  cfg.OpenAI.BaseURL,
			Model:    cfg.Recognition.Model,
			Language: cfg.Recognition.Language,
			Prompt:   cfg.Recognition.Prompt,
		})
	case config.BackendWhisperCPP:
		return NewWhisperCPP(cfg.Whisper, exec, log), nil
	case config.BackendGemini:
		client, err := gemini.New(cfg.Secrets.GeminiKeys, cfg.Gemini.Model, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoCredential, err)
		}
		return NewGemini(client, cfg.Recognition.Language), nil
	}
	return nil, fmt.Errorf("unsupported recognition backend %q", cfg.Recognition.Backend)
}
