package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	transcript  TEXT NOT NULL DEFAULT '',
	summary     TEXT NOT NULL DEFAULT '',
	owner       TEXT NOT NULL DEFAULT '',
	request_id  TEXT UNIQUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS transcriptions_owner_idx ON transcriptions (owner, created_at DESC);
`

const selectColumns = `id, title, transcript, summary, owner, COALESCE(request_id, ''), created_at, updated_at`

// postgresStore serializes access to a single connection; pgx.Conn is not
// safe for concurrent use.
type postgresStore struct {
	mu     sync.Mutex
	conn   *pgx.Conn
	logger logger.Logger
}

// NewPostgres connects to dbURL and creates the transcriptions table if
// needed.
func NewPostgres(ctx context.Context, dbURL string, log logger.Logger) (Store, error) {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := conn.Exec(ctx, schema); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("create schema: %w", err)
	}

	log.Info(ctx, "Connected to postgres store")
	return &postgresStore{conn: conn, logger: log}, nil
}

func (s *postgresStore) Save(ctx context.Context, rec *Record) error {
	prepare(rec, time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Exec(ctx, `
		INSERT INTO transcriptions (id, title, transcript, summary, owner, request_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
		rec.ID, rec.Title, rec.Transcript, rec.Summary, rec.Owner, rec.CorrelationID, rec.CreatedAt, rec.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "transcriptions_request_id_key" {
		return fmt.Errorf("%w: %s", ErrDuplicate, rec.CorrelationID)
	}
	if err != nil {
		return fmt.Errorf("insert transcription: %w", err)
	}
	return nil
}

func (s *postgresStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.conn.QueryRow(ctx, `SELECT `+selectColumns+` FROM transcriptions WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select transcription: %w", err)
	}
	return rec, nil
}

func (s *postgresStore) List(ctx context.Context, owner string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.conn.Query(ctx, `
		SELECT `+selectColumns+` FROM transcriptions
		WHERE $1 = '' OR owner = $1
		ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list transcriptions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transcription: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *postgresStore) Update(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.UpdatedAt = time.Now().UTC()
	tag, err := s.conn.Exec(ctx, `
		UPDATE transcriptions SET title = $2, transcript = $3, summary = $4, owner = $5, updated_at = $6
		WHERE id = $1`,
		rec.ID, rec.Title, rec.Transcript, rec.Summary, rec.Owner, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transcription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, rec.ID)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, err := s.conn.Exec(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transcription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *postgresStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close(context.Background())
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Transcript, &rec.Summary, &rec.Owner,
		&rec.CorrelationID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
