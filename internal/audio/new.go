package audio

import (
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

type implNormalizer struct {
	ffmpegPath string
	tempDir    string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Normalizer. ffmpegPath is used for containers that cannot be
// decoded in-process; tempDir hosts its scratch files.
func New(ffmpegPath, tempDir string, exec executor.Executor, log logger.Logger) Normalizer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &implNormalizer{
		ffmpegPath: ffmpegPath,
		tempDir:    tempDir,
		executor:   exec,
		logger:     log,
	}
}
