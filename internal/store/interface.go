package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a record with the same correlation id exists.
	ErrDuplicate = errors.New("duplicate request")
	ErrDisabled  = errors.New("store is disabled")
)

// Record is one persisted transcription.
type Record struct {
	ID            string    `msgpack:"id" json:"id"`
	Title         string    `msgpack:"title" json:"title"`
	Transcript    string    `msgpack:"transcript" json:"transcript"`
	Summary       string    `msgpack:"summary" json:"summary"`
	Owner         string    `msgpack:"owner" json:"owner"`
	CorrelationID string    `msgpack:"correlation_id" json:"correlation_id"`
	CreatedAt     time.Time `msgpack:"created_at" json:"created_at"`
	UpdatedAt     time.Time `msgpack:"updated_at" json:"updated_at"`
}

// Store persists records. Save assigns ID and timestamps when unset.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	// List returns records newest first; an empty owner lists everything.
	List(ctx context.Context, owner string) ([]Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
	Close() error
}
