package gemini

import (
	"errors"
	"sync"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var ErrNoKeys = errors.New("gemini: no API keys configured")

type implClient struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// New creates a Client that rotates through the supplied API keys.
func New(apiKeys []string, model string, log logger.Logger) (Client, error) {
	if len(apiKeys) == 0 {
		return nil, ErrNoKeys
	}
	if model == "" {
		model = DefaultModel
	}
	return &implClient{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}, nil
}
