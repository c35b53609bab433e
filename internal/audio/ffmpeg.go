package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// transcode converts a container beep cannot read into 16 kHz mono s16le WAV
// using ffmpeg, in an isolated temp dir that is always removed.
func (n *implNormalizer) transcode(ctx context.Context, data []byte, hint string) ([]byte, error) {
	if !n.executor.Available(n.ffmpegPath) {
		return nil, fmt.Errorf("ffmpeg not available for %q input", hint)
	}

	if n.tempDir != "" {
		if err := os.MkdirAll(n.tempDir, 0755); err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
	}
	workDir, err := os.MkdirTemp(n.tempDir, "transcode-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	ext := ".bin"
	if isPlainExt(hint) {
		ext = "." + hint
	}
	const outputName = "output.wav"
	inputName := "input" + ext

	if err := os.WriteFile(filepath.Join(workDir, inputName), data, 0644); err != nil {
		return nil, fmt.Errorf("write transcode input: %w", err)
	}

	n.logger.Info(ctx, "Transcoding %s input with ffmpeg (%d bytes)", ext, len(data))

	// -vn: drop any video stream
	// -ar 16000 -ac 1 -c:a pcm_s16le: canonical recognition format
	args := []string{
		"-i", inputName,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		outputName,
	}

	if _, err := n.executor.ExecuteInDir(ctx, workDir, n.ffmpegPath, args...); err != nil {
		return nil, fmt.Errorf("ffmpeg transcode: %w", err)
	}

	out, err := os.ReadFile(filepath.Join(workDir, outputName))
	if err != nil {
		return nil, fmt.Errorf("read transcoded audio: %w", err)
	}
	return out, nil
}

// isPlainExt reports whether hint is safe to use as a file extension.
func isPlainExt(hint string) bool {
	if hint == "" || len(hint) > 8 {
		return false
	}
	for _, r := range hint {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
