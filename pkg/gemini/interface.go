package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Client generates text from Gemini, rotating API keys on quota errors.
type Client interface {
	Generate(ctx context.Context, parts []*genai.Part, cfg *genai.GenerateContentConfig) (string, error)
	Model() string
}
