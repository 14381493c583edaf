// Package pebble provides the default durable keyValueDb backend.
package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
	"github.com/cockroachdb/pebble"
)

// DB wraps a pebble database behind the keyValueDb.DB interface.
type DB struct {
	db *pebble.DB
}

// Open opens (or creates) a pebble database at path.
func Open(path string) (*DB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble database: %w", err)
	}
	return &DB{db: db}, nil
}

// NewDB wraps an already-open pebble database.
func NewDB(db *pebble.DB) *DB {
	return &DB{db: db}
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if p.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}

	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, keyValueDb.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// Copy the value out; pebble reuses the buffer after closer.Close()
	valCopy := make([]byte, len(val))
	copy(valCopy, val)
	return valCopy, nil
}

func (p *DB) Write(ctx context.Context, key, value []byte) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *DB) Delete(ctx context.Context, key []byte) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *DB) Batch(ctx context.Context, ops []keyValueDb.BatchOperation) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		switch op.Type {
		case keyValueDb.BatchPut:
			if err := batch.Set(op.Key, op.Value, nil); err != nil {
				return err
			}
		case keyValueDb.BatchDelete:
			if err := batch.Delete(op.Key, nil); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown operation type %d", keyValueDb.ErrBatchOperationFailed, op.Type)
		}
	}

	return batch.Commit(pebble.Sync)
}

func (p *DB) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

type iterator struct {
	iter *pebble.Iterator

	start, end []byte
	err        error
	current    struct {
		key, value []byte
	}
}

func (p *DB) Iterator(ctx context.Context, start, end []byte) (keyValueDb.Iterator, error) {
	if p.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}

	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}

	return &iterator{
		iter:  iter,
		start: start,
		end:   end,
	}, nil
}

func (it *iterator) Next() bool {
	if it.current.key == nil {
		if it.start == nil {
			it.iter.First()
		} else {
			it.iter.SeekGE(it.start)
		}
	} else {
		it.iter.Next()
	}

	if !it.iter.Valid() {
		return false
	}

	key := it.iter.Key()
	if it.end != nil && bytes.Compare(key, it.end) >= 0 {
		return false
	}

	val := it.iter.Value()
	valCopy := make([]byte, len(val))
	copy(valCopy, val)

	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	it.current.key = keyCopy
	it.current.value = valCopy
	return true
}

func (it *iterator) Key() []byte {
	return it.current.key
}

func (it *iterator) Value() []byte {
	return it.current.value
}

func (it *iterator) Error() error {
	if it.iter.Error() != nil {
		return it.iter.Error()
	}
	return it.err
}

func (it *iterator) Close() error {
	it.iter.Close()
	return nil
}
