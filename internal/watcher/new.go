package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

// Options configures a Watcher. Zero values take defaults.
type Options struct {
	// Extensions limits which files are handled; defaults to AudioExtensions.
	Extensions    []string
	MaxConcurrent int
	// SettleDelay is waited after a create event so the writer can finish.
	SettleDelay time.Duration
	// ScanExisting handles files already present when Start is called.
	ScanExisting bool
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Default to 2 concurrent if not specified
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 500 * time.Millisecond
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = AudioExtensions
	}
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	return &implWatcher{
		inputDir:   inputDir,
		handler:    handler,
		logger:     log,
		watcher:    watcher,
		opts:       opts,
		extensions: exts,
		semaphore:  make(chan struct{}, opts.MaxConcurrent),
		inFlight:   make(map[string]bool),
	}, nil
}
