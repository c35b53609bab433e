package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	ch    chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) handle(ctx context.Context, path string) error {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.ch <- path
	return nil
}

func (r *recorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case p := <-r.ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for handler")
	}
	return ""
}

func startWatcher(t *testing.T, dir string, handler EventHandler, opts Options) (context.CancelFunc, chan error) {
	t.Helper()
	opts.SettleDelay = 10 * time.Millisecond

	w, err := New(dir, handler, logger.Nop(), opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	return cancel, done
}

func TestWatcherHandlesNewAudio(t *testing.T) {
	dir := t.TempDir()
	rec := newRecorder()
	cancel, done := startWatcher(t, dir, rec.handle, Options{})

	// Give the goroutine a moment to enter its select loop.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	audioPath := filepath.Join(dir, "Meeting.MP3")
	if err := os.WriteFile(audioPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := rec.wait(t); got != audioPath {
		t.Errorf("handled %q, want %q", got, audioPath)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want %v", err, context.Canceled)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, p := range rec.paths {
		if filepath.Ext(p) == ".txt" {
			t.Errorf("non-audio file was handled: %s", p)
		}
	}
}

func TestWatcherScansExisting(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.wav", "a.flac", "skip.doc"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rec := newRecorder()
	cancel, done := startWatcher(t, dir, rec.handle, Options{ScanExisting: true, MaxConcurrent: 1})

	seen := map[string]bool{}
	for range 2 {
		seen[filepath.Base(rec.wait(t))] = true
	}
	if !seen["a.flac"] || !seen["b.wav"] {
		t.Errorf("handled %v, want a.flac and b.wav", seen)
	}

	cancel()
	<-done
}

func TestWatcherWaitsForInFlight(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "long.wav"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	var finished bool
	var mu sync.Mutex
	handler := func(ctx context.Context, path string) error {
		close(started)
		time.Sleep(100 * time.Millisecond)
		mu.Lock()
		finished = true
		mu.Unlock()
		return nil
	}

	cancel, done := startWatcher(t, dir, handler, Options{ScanExisting: true})
	<-started
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if !finished {
		t.Error("Start() returned before the in-flight handler finished")
	}
}

func TestIsAudioFile(t *testing.T) {
	w := &implWatcher{extensions: map[string]bool{".wav": true, ".m4a": true}}

	tests := []struct {
		path string
		want bool
	}{
		{"a.wav", true},
		{"A.WAV", true},
		{"voice.m4a", true},
		{"movie.mkv", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := w.isAudioFile(tt.path); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
