package recognition

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

// nonSpeech matches whisper.cpp annotations such as [BLANK_AUDIO] or (music).
var nonSpeech = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)

type whisperCPP struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperCPP creates a Backend that runs a local whisper.cpp binary on
// each chunk.
func NewWhisperCPP(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Backend {
	return &whisperCPP{cfg: cfg, executor: exec, logger: log}
}

func (w *whisperCPP) Name() string { return "whisper-cpp" }

func (w *whisperCPP) Close() error { return nil }

// Recognize runs whisper.cpp with timestamps disabled and reads the
// transcript from stdout.
//
// -nt: no timestamps, plain text on stdout
// -bo: best of 5 candidates
// -ml/-mc: no segment length or context limit
func (w *whisperCPP) Recognize(ctx context.Context, req Request) (string, error) {
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", req.Path,
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-nt",
		"-np",
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}
	if !w.cfg.UseGPU {
		args = append(args, "-ng")
	}

	// Run next to the chunk so any side files land in the scratch dir.
	out, err := w.executor.ExecuteInDir(ctx, filepath.Dir(req.Path), w.cfg.BinaryPath, args...)
	if err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	text := cleanWhisperOutput(out)
	if text == "" {
		return "", ErrUnrecognized
	}
	return text, nil
}

// cleanWhisperOutput joins stdout lines and drops non-speech annotations.
func cleanWhisperOutput(out string) string {
	var parts []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(nonSpeech.ReplaceAllString(line, ""))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
