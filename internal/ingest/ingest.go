package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/export"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
	"github.com/nguyentantai21042004/scribe-flow/internal/store"
)

const failedDir = "failed"

func (h *implHandler) HandleFile(ctx context.Context, path string) (*Report, error) {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	report := &Report{Source: path}

	h.logger.Info(ctx, "========================================")
	h.logger.Info(ctx, "Processing recording: %s", path)
	h.logger.Info(ctx, "========================================")

	res, err := h.process(ctx, path, name)
	if err != nil {
		h.logger.Error(ctx, "%s: %s (%v)", name, processor.UserMessage(err), err)
		report.ArchivedTo = h.archive(ctx, path, true)
		return report, err
	}
	report.Result = res
	ctx = logger.WithCorrelationID(ctx, res.CorrelationID)

	if err := res.Err(); err != nil {
		h.logger.Warn(ctx, "%s: %s", name, processor.UserMessage(err))
		report.ArchivedTo = h.archive(ctx, path, true)
		return report, err
	}

	files, err := h.exporter.Export(ctx, h.opts.OutputDir, name, export.Document{
		Title:         res.Title,
		Transcript:    res.Transcript.Text,
		Summary:       res.Summary.Text,
		Strategy:      res.Summary.Strategy.String(),
		CorrelationID: res.CorrelationID,
		Duration:      res.AudioDuration,
		CreatedAt:     startTime,
	})
	report.Files = files
	if err != nil {
		return report, fmt.Errorf("export: %w", err)
	}

	rec := &store.Record{
		Title:         res.Title,
		Transcript:    res.Transcript.Text,
		Summary:       res.Summary.Text,
		Owner:         res.Owner,
		CorrelationID: res.CorrelationID,
	}
	switch err := h.store.Save(ctx, rec); {
	case errors.Is(err, store.ErrDuplicate):
		h.logger.Warn(ctx, "Record for request %s already stored", res.CorrelationID)
	case err != nil:
		return report, fmt.Errorf("save record: %w", err)
	default:
		report.RecordID = rec.ID
	}

	report.ArchivedTo = h.archive(ctx, path, false)

	h.logger.Info(ctx, "========================================")
	h.logger.Info(ctx, "Processing completed successfully!")
	h.logger.Info(ctx, "Outputs: %s", strings.Join(files, ", "))
	h.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	h.logger.Info(ctx, "========================================")
	return report, nil
}

func (h *implHandler) process(ctx context.Context, path, name string) (*processor.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	return h.processor.Process(ctx, processor.Request{
		Title:              name,
		Audio:              f,
		Format:             filepath.Ext(path),
		SkipNoiseReduction: h.opts.SkipNoiseReduction,
		Owner:              h.opts.Owner,
	})
}

// archive moves the source out of the input folder and returns its new
// location, or "" when archiving is disabled or fails.
func (h *implHandler) archive(ctx context.Context, path string, failed bool) string {
	if h.opts.ArchiveDir == "" {
		return ""
	}
	dir := h.opts.ArchiveDir
	if failed {
		dir = filepath.Join(dir, failedDir)
	}

	dest, err := moveTo(path, dir)
	if err != nil {
		h.logger.Warn(ctx, "Failed to move %s to %s: %v", path, dir, err)
		return ""
	}
	h.logger.Info(ctx, "Moved %s -> %s", path, dest)
	return dest
}

// moveTo renames path into dir, adding a timestamp when the name is taken.
func moveTo(path, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	base := filepath.Base(path)
	dest := filepath.Join(dir, base)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(base)
		stamp := time.Now().Format("20060102-150405.000")
		dest = filepath.Join(dir, strings.TrimSuffix(base, ext)+"-"+stamp+ext)
	}

	if err := os.Rename(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}
