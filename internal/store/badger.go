package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

const (
	recordPrefix  = "transcription/"
	requestPrefix = "request/"
)

// BadgerOptions configures the embedded store.
type BadgerOptions struct {
	// Dir holds the data files. Required unless InMemory is set.
	Dir      string
	InMemory bool
	Logger   logger.Logger
}

type badgerStore struct {
	db *badger.DB
}

// NewBadger opens an embedded BadgerDB store holding msgpack-encoded records.
func NewBadger(opts BadgerOptions) (Store, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("store: badger dir is required for on-disk mode")
	}

	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	dbOpts = dbOpts.WithLogger(badgerLogger{log: log})

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &badgerStore{db: db}, nil
}

func recordKey(id string) []byte {
	return []byte(recordPrefix + id)
}

func requestKey(correlationID string) []byte {
	return []byte(requestPrefix + correlationID)
}

func (s *badgerStore) Save(ctx context.Context, rec *Record) error {
	prepare(rec, time.Now().UTC())

	val, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if rec.CorrelationID != "" {
			_, err := txn.Get(requestKey(rec.CorrelationID))
			if err == nil {
				return fmt.Errorf("%w: %s", ErrDuplicate, rec.CorrelationID)
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set(requestKey(rec.CorrelationID), []byte(rec.ID)); err != nil {
				return err
			}
		}
		return txn.Set(recordKey(rec.ID), val)
	})
}

func (s *badgerStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return msgpack.Unmarshal(val, &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *badgerStore) List(ctx context.Context, owner string) ([]Record, error) {
	prefix := []byte(recordPrefix)
	var out []Record

	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var rec Record
			if err := msgpack.Unmarshal(val, &rec); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}
			if owner == "" || rec.Owner == owner {
				out = append(out, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *badgerStore) Update(ctx context.Context, rec *Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(rec.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, rec.ID)
		}
		if err != nil {
			return err
		}

		var existing Record
		if err := item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &existing)
		}); err != nil {
			return fmt.Errorf("decode record: %w", err)
		}

		// Identity fields are fixed at creation.
		rec.CreatedAt = existing.CreatedAt
		rec.CorrelationID = existing.CorrelationID
		rec.UpdatedAt = time.Now().UTC()

		val, err := msgpack.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		return txn.Set(recordKey(rec.ID), val)
	})
}

func (s *badgerStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		var rec Record
		if err := item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("decode record: %w", err)
		}
		if rec.CorrelationID != "" {
			if err := txn.Delete(requestKey(rec.CorrelationID)); err != nil {
				return err
			}
		}
		return txn.Delete(recordKey(id))
	})
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger warnings and errors into the app logger.
type badgerLogger struct {
	log logger.Logger
}

func (l badgerLogger) Errorf(f string, v ...interface{}) {
	l.log.Error(context.Background(), "[badger] "+f, v...)
}

func (l badgerLogger) Warningf(f string, v ...interface{}) {
	l.log.Warn(context.Background(), "[badger] "+f, v...)
}

func (badgerLogger) Infof(string, ...interface{})  {}
func (badgerLogger) Debugf(string, ...interface{}) {}
