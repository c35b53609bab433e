package processor

import (
	"context"
	"fmt"
	"os"
)

// makeTempDir creates this invocation's scratch directory under TempDir.
func (p *implProcessor) makeTempDir() (string, error) {
	if p.opts.TempDir != "" {
		if err := os.MkdirAll(p.opts.TempDir, 0755); err != nil {
			return "", fmt.Errorf("create temp root: %w", err)
		}
	}
	dir, err := os.MkdirTemp(p.opts.TempDir, "scribe-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	return dir, nil
}

// cleanupTempDir removes a scratch directory, logs warning if fails
func (p *implProcessor) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
