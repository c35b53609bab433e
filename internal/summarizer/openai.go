package summarizer

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type openAIBackend struct {
	cli   *openai.Client
	model string
}

// NewOpenAI creates a Backend that summarizes through chat completions on
// an OpenAI-compatible endpoint.
func NewOpenAI(apiKey, baseURL, model string) (Backend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrBackendUnavailable)
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &openAIBackend{cli: openai.NewClientWithConfig(clientConfig), model: model}, nil
}

func (o *openAIBackend) Name() string { return "openai" }

func (o *openAIBackend) Close() error { return nil }

func (o *openAIBackend) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	resp, err := o.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize spoken transcripts. Reply with the summary only, as plain prose.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Summarize this transcript in %d to %d words:\n\n%s", minWords, maxWords, text),
			},
		},
		MaxTokens:   maxWords * 2,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
