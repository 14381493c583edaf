package keyValueDb

import (
	"context"
)

// DB defines the basic operations any keyValueDb implementation must support
type DB interface {
	// Read returns the value stored under key, or ErrKeyNotFound
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error

	// Batch applies all operations atomically
	Batch(ctx context.Context, ops []BatchOperation) error

	// Iterator traverses keys in [start, end) in ascending order.
	// A nil start begins at the first key; a nil end stops at the last.
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)

	Close() error
}

// Iterator allows traversing over keyValueDb entries
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOperation represents a single operation in a batch
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)
