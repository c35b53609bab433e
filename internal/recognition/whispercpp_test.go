package recognition

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

type fakeExecutor struct {
	out  string
	err  error
	dir  string
	name string
	args []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.dir, f.name, f.args = dir, name, args
	return f.out, f.err
}

func (f *fakeExecutor) Available(name string) bool { return true }

func TestWhisperCPPRecognize(t *testing.T) {
	cfg := config.WhisperConfig{
		ModelPath:  "models/ggml-base.en.bin",
		BinaryPath: "whisper-cli",
		Language:   "en",
		Threads:    4,
	}
	path := filepath.Join("scratch", "chunk-0001.wav")

	tests := []struct {
		name    string
		out     string
		execErr error
		want    string
		wantErr error
	}{
		{"speech", " Hello there.\n [BLANK_AUDIO]\n General Kenobi.\n", nil, "Hello there. General Kenobi.", nil},
		{"annotations only", "[MUSIC]\n(applause)\n", nil, "", ErrUnrecognized},
		{"binary fails", "", errors.New("exit status 1"), "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{out: tt.out, err: tt.execErr}
			b := NewWhisperCPP(cfg, exec, logger.Nop())

			got, err := b.Recognize(context.Background(), Request{Index: 1, Path: path})
			switch {
			case tt.execErr != nil:
				if !errors.Is(err, tt.execErr) {
					t.Fatalf("Recognize() error = %v, want %v", err, tt.execErr)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Recognize() error = %v, want %v", err, tt.wantErr)
				}
			case err != nil:
				t.Fatalf("Recognize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Recognize() = %q, want %q", got, tt.want)
			}

			if exec.dir != "scratch" {
				t.Errorf("ran in %q, want %q", exec.dir, "scratch")
			}
			if exec.name != cfg.BinaryPath {
				t.Errorf("ran %q, want %q", exec.name, cfg.BinaryPath)
			}
			if !slices.Contains(exec.args, path) || !slices.Contains(exec.args, "-ng") {
				t.Errorf("args = %v, want input path and -ng", exec.args)
			}
		})
	}
}
