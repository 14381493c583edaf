// Package memory provides an in-memory keyValueDb backend, used by tests and
// by the engine's scratch views. Not durable.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
)

// DB is a sorted in-memory key-value store.
type DB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewDB creates an empty in-memory store.
func NewDB() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (m *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, keyValueDb.ErrDBClosed
	}
	val, ok := m.data[string(key)]
	if !ok {
		return nil, keyValueDb.ErrKeyNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *DB) Write(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[string(key)] = stored
	return nil
}

func (m *DB) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *DB) Batch(ctx context.Context, ops []keyValueDb.BatchOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return keyValueDb.ErrDBClosed
	}
	for _, op := range ops {
		switch op.Type {
		case keyValueDb.BatchPut:
			stored := make([]byte, len(op.Value))
			copy(stored, op.Value)
			m.data[string(op.Key)] = stored
		case keyValueDb.BatchDelete:
			delete(m.data, string(op.Key))
		default:
			return keyValueDb.ErrBatchOperationFailed
		}
	}
	return nil
}

func (m *DB) Iterator(ctx context.Context, start, end []byte) (keyValueDb.Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, keyValueDb.ErrDBClosed
	}

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if start != nil && bytes.Compare([]byte(k), start) < 0 {
			continue
		}
		if end != nil && bytes.Compare([]byte(k), end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]entry, len(keys))
	for i, k := range keys {
		val := m.data[k]
		out := make([]byte, len(val))
		copy(out, val)
		entries[i] = entry{key: []byte(k), value: out}
	}
	return &iterator{entries: entries, pos: -1}, nil
}

func (m *DB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored keys. Test helper.
func (m *DB) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

type entry struct {
	key, value []byte
}

type iterator struct {
	entries []entry
	pos     int
}

func (it *iterator) Next() bool {
	if it.pos+1 >= len(it.entries) {
		return false
	}
	it.pos++
	return true
}

func (it *iterator) Key() []byte   { return it.entries[it.pos].key }
func (it *iterator) Value() []byte { return it.entries[it.pos].value }
func (it *iterator) Error() error  { return nil }
func (it *iterator) Close() error  { return nil }
