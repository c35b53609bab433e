package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/ingest"
	"github.com/nguyentantai21042004/scribe-flow/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process recordings dropped into the input folder",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&owner, "owner", "", "owner recorded with each transcription")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg, log := a.cfg, a.log

	log.Info(ctx, "========================================")
	log.Info(ctx, "Scribe Flow")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Recordings: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	handler := ingest.New(a.processor, a.exporter, a.store, ingest.Options{
		OutputDir:          cfg.Paths.Output,
		ArchiveDir:         cfg.Paths.Archived,
		Owner:              owner,
		SkipNoiseReduction: !cfg.NoiseReductionEnabled(),
	}, log)

	w, err := watcher.New(cfg.Paths.Input, func(ctx context.Context, path string) error {
		_, err := handler.HandleFile(ctx, path)
		return err
	}, log, watcher.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		ScanExisting:  true,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Start(ctx)
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Recognition: %s, summaries: %s, store: %s",
		cfg.Recognition.Backend, cfg.Summarizer.Backend, cfg.Store.Backend)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
		log.Info(ctx, "Shutting down gracefully...")
		cancel()
		// Start returns once in-flight recordings finish.
		<-errChan
		return nil
	case err := <-errChan:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		log.Error(ctx, "Watcher error: %v", err)
		return err
	}
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
