package recognition

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/scribe-flow/pkg/gemini"
)

// noSpeechMarker is what the model is told to answer for silent or
// unintelligible audio.
const noSpeechMarker = "NO_SPEECH"

const transcribePrompt = `Transcribe the speech in this audio clip verbatim%s.
Reply with the transcript only, no commentary or timestamps.
If the clip contains no intelligible speech, reply with exactly ` + noSpeechMarker + `.`

type geminiBackend struct {
	client   gemini.Client
	language string
}

// NewGemini creates a Backend that sends each chunk to a Gemini multimodal
// model as inline WAV data.
func NewGemini(client gemini.Client, language string) Backend {
	return &geminiBackend{client: client, language: language}
}

func (g *geminiBackend) Name() string { return "gemini" }

func (g *geminiBackend) Close() error { return nil }

func (g *geminiBackend) Recognize(ctx context.Context, req Request) (string, error) {
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return "", fmt.Errorf("read chunk: %w", err)
	}

	lang := ""
	if g.language != "" {
		lang = fmt.Sprintf(" (language: %s)", g.language)
	}

	text, err := g.client.Generate(ctx, []*genai.Part{
		genai.NewPartFromBytes(data, "audio/wav"),
		genai.NewPartFromText(fmt.Sprintf(transcribePrompt, lang)),
	}, nil)
	if errors.Is(err, gemini.ErrEmptyResponse) {
		return "", ErrUnrecognized
	}
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(strings.Trim(text, ". "), noSpeechMarker) {
		return "", ErrUnrecognized
	}
	return text, nil
}
