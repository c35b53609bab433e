package summarizer

import (
	"errors"
	"fmt"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/gemini"
)

var ErrBackendUnavailable = errors.New("summarization backend unavailable")

// Options controls both strategies. Zero values take the defaults.
type Options struct {
	Scoring       string
	Fraction      float64
	MaxChars      int
	MaxInputWords int
	MinLength     int
	MaxLength     int
}

// DefaultOptions mirrors the config defaults.
func DefaultOptions() Options {
	return Options{
		Scoring:       config.ScoringFrequency,
		Fraction:      0.3,
		MaxChars:      2000,
		MaxInputWords: 800,
		MinLength:     30,
		MaxLength:     130,
	}
}

// OptionsFromConfig converts the summarizer section of cfg.
func OptionsFromConfig(cfg config.SummarizerConfig) Options {
	return Options{
		Scoring:       cfg.Scoring,
		Fraction:      cfg.Fraction,
		MaxChars:      cfg.MaxChars,
		MaxInputWords: cfg.MaxInputWords,
		MinLength:     cfg.MinLength,
		MaxLength:     cfg.MaxLength,
	}
}

type implSummarizer struct {
	backend   Backend
	tokenizer *sentences.DefaultSentenceTokenizer
	opts      Options
	logger    logger.Logger
}

// New creates a Summarizer. backend may be nil, in which case every
// summary is extractive.
func New(backend Backend, opts Options, log logger.Logger) (Summarizer, error) {
	def := DefaultOptions()
	if opts.Scoring == "" {
		opts.Scoring = def.Scoring
	}
	if opts.Fraction <= 0 || opts.Fraction > 1 {
		opts.Fraction = def.Fraction
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = def.MaxChars
	}
	if opts.MaxInputWords <= 0 {
		opts.MaxInputWords = def.MaxInputWords
	}
	if opts.MinLength <= 0 {
		opts.MinLength = def.MinLength
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = def.MaxLength
	}

	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence tokenizer: %w", err)
	}

	return &implSummarizer{
		backend:   backend,
		tokenizer: tokenizer,
		opts:      opts,
		logger:    log,
	}, nil
}

// NewBackend builds the abstractive backend selected by summarizer.backend.
// It returns a nil Backend for "none".
func NewBackend(cfg *config.Config, log logger.Logger) (Backend, error) {
	switch cfg.Summarizer.Backend {
	case config.SummarizerNone:
		return nil, nil
	case config.SummarizerGemini:
		client, err := gemini.New(cfg.Secrets.GeminiKeys, cfg.Gemini.Model, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
		}
		return NewGemini(client), nil
	case config.SummarizerOpenAI:
		return NewOpenAI(cfg.Secrets.OpenAIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.ChatModel)
	}
	return nil, fmt.Errorf("unsupported summarizer backend %q", cfg.Summarizer.Backend)
}
