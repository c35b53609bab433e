package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/scribe-flow/pkg/gemini"
)

const summaryPrompt = `Summarize the following spoken transcript in %d to %d words.
Keep the speaker's key points in the order they were made.
Reply with the summary only, as plain prose without headings or bullet points.

Transcript:
---
%s
---`

type geminiBackend struct {
	client gemini.Client
}

// NewGemini creates a Backend on top of a key-rotating Gemini client.
func NewGemini(client gemini.Client) Backend {
	return &geminiBackend{client: client}
}

func (g *geminiBackend) Name() string { return "gemini" }

func (g *geminiBackend) Close() error { return nil }

func (g *geminiBackend) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, minWords, maxWords, text)
	return g.client.Generate(ctx, []*genai.Part{genai.NewPartFromText(prompt)}, &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxWords * 2),
	})
}
