package audio

import (
	"context"
	"io"
)

// Normalizer decodes arbitrary input audio into a canonical Buffer.
type Normalizer interface {
	// Normalize decodes r. format is a hint such as "mp3" or ".webm"; when
	// blank the container is sniffed from the leading bytes.
	Normalize(ctx context.Context, r io.Reader, format string) (*Buffer, error)
}
