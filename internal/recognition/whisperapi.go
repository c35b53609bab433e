package recognition

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperAPIConfig configures the hosted Whisper transcription endpoint.
type WhisperAPIConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
	Prompt   string
}

type whisperAPI struct {
	cli *openai.Client
	cfg WhisperAPIConfig
}

// NewWhisperAPI creates a Backend that uploads each chunk to an
// OpenAI-compatible transcription endpoint.
func NewWhisperAPI(cfg WhisperAPIConfig) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrNoCredential)
	}
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &whisperAPI{cli: openai.NewClientWithConfig(clientConfig), cfg: cfg}, nil
}

func (w *whisperAPI) Name() string { return "whisper-api" }

func (w *whisperAPI) Close() error { return nil }

func (w *whisperAPI) Recognize(ctx context.Context, req Request) (string, error) {
	resp, err := w.cli.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.cfg.Model,
		FilePath: req.Path,
		Language: w.cfg.Language,
		Prompt:   w.cfg.Prompt,
	})
	if err != nil {
		return "", fmt.Errorf("whisper api: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrUnrecognized
	}
	return text, nil
}
