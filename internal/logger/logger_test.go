package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug level", "debug", "text"},
		{"info level", "info", "text"},
		{"warn level", "warn", "json"},
		{"error level", "error", "json"},
		{"invalid level", "invalid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewWithFormat(tt.level, tt.format)
			if log == nil {
				t.Error("NewWithFormat() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-1")
	log := New("info")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	// Test with formatting
	log.Info(ctx, "formatted message: %s %d", "test", 123)
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
		{"invalid config defaults to info", "bogus", "debug", false},
		{"unknown target level logs", "error", "trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := CorrelationID(ctx); got != "" {
		t.Errorf("CorrelationID() = %q, want empty", got)
	}

	ctx = WithCorrelationID(ctx, "abc")
	if got := CorrelationID(ctx); got != "abc" {
		t.Errorf("CorrelationID() = %q, want %q", got, "abc")
	}
}

func TestCorrelationIDField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &implLogger{
		sugar: zap.New(core).Sugar(),
		level: zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}

	ctx := WithCorrelationID(context.Background(), "req-42")
	log.Info(ctx, "processed %d chunks", 3)
	log.Debug(ctx, "filtered out")
	log.Warn(context.Background(), "no id")

	entries := logs.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if got := entries[0].Message; got != "processed 3 chunks" {
		t.Errorf("Message = %q, want %q", got, "processed 3 chunks")
	}
	if got := entries[0].ContextMap()["correlation_id"]; got != "req-42" {
		t.Errorf("correlation_id = %v, want %q", got, "req-42")
	}
	if _, ok := entries[1].ContextMap()["correlation_id"]; ok {
		t.Error("correlation_id set without one in ctx")
	}
}
