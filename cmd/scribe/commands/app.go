package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/export"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
	"github.com/nguyentantai21042004/scribe-flow/internal/store"
	"github.com/nguyentantai21042004/scribe-flow/pkg/executor"
)

// app holds the wired pipeline shared by the commands.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	processor processor.Processor
	exporter  export.Exporter
	store     store.Store
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	proc, err := processor.NewFromConfig(ctx, cfg, executor.New(), log)
	if err != nil {
		return nil, fmt.Errorf("create processor: %w", err)
	}

	exp, err := export.New(cfg.Export.Formats, log)
	if err != nil {
		_ = proc.Close()
		return nil, err
	}

	st, err := store.New(ctx, cfg, log)
	if err != nil {
		_ = proc.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &app{cfg: cfg, log: log, processor: proc, exporter: exp, store: st}, nil
}

func (a *app) Close() error {
	err := errors.Join(a.processor.Close(), a.store.Close())
	_ = a.log.Sync()
	return err
}
