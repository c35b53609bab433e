package export

import (
	"context"
	"time"
)

// Document is everything written for one processed recording.
type Document struct {
	Title         string
	Transcript    string
	Summary       string
	Strategy      string
	CorrelationID string
	Duration      time.Duration
	CreatedAt     time.Time
}

// Exporter writes a Document to disk in the configured formats.
type Exporter interface {
	// Export writes <dir>/<name>.<ext> for each format and returns the paths.
	Export(ctx context.Context, dir, name string, doc Document) ([]string, error)
}
