package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error

// AudioExtensions are the file types picked up by default.
var AudioExtensions = []string{".wav", ".mp3", ".flac", ".ogg", ".oga", ".opus", ".webm", ".m4a", ".mp4", ".aac"}
