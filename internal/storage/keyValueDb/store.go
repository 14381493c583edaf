package keyValueDb

import (
	"context"
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pierrec/lz4"
)

// Value framing bytes. Every stored value carries a one-byte prefix so the
// reader knows whether the payload is raw or an lz4 block preceded by its
// uvarint-encoded uncompressed size.
const (
	frameRaw byte = 0
	frameLZ4 byte = 1
)

// StoreOptions configures the caching store.
type StoreOptions struct {
	// CacheSize is the number of decoded values kept in the LRU read cache.
	CacheSize int

	// CompressThreshold is the minimum value size (in bytes) before lz4
	// compression is attempted. Zero disables compression.
	CompressThreshold int
}

// DefaultStoreOptions returns the options used when a field is unset.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		CacheSize:         1024,
		CompressThreshold: 256,
	}
}

// Store wraps a DB backend with an LRU read cache and transparent lz4
// compression of large values. All launchpad state goes through a Store;
// the backend only ever sees framed values.
type Store struct {
	db                DB
	cache             *lru.Cache[string, []byte]
	compressThreshold int
}

// NewStore creates a caching store on top of the given backend.
func NewStore(db DB, opts StoreOptions) (*Store, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultStoreOptions().CacheSize
	}
	cache, err := lru.New[string, []byte](opts.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:                db,
		cache:             cache,
		compressThreshold: opts.CompressThreshold,
	}, nil
}

// Read returns the decoded value stored under key, or ErrKeyNotFound.
func (s *Store) Read(ctx context.Context, key []byte) ([]byte, error) {
	if cached, ok := s.cache.Get(string(key)); ok {
		out := make([]byte, len(cached))
		copy(out, cached)
		return out, nil
	}

	framed, err := s.db.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	value, err := decodeFrame(framed)
	if err != nil {
		return nil, err
	}
	s.cache.Add(string(key), value)

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Write stores the value under key, framing it first.
func (s *Store) Write(ctx context.Context, key, value []byte) error {
	framed := s.encodeFrame(value)
	if err := s.db.Write(ctx, key, framed); err != nil {
		return err
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.cache.Add(string(key), stored)
	return nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(ctx context.Context, key []byte) error {
	s.cache.Remove(string(key))
	return s.db.Delete(ctx, key)
}

// Batch applies all operations atomically through the backend and keeps the
// cache coherent with the outcome.
func (s *Store) Batch(ctx context.Context, ops []BatchOperation) error {
	framed := make([]BatchOperation, len(ops))
	for i, op := range ops {
		framed[i] = op
		if op.Type == BatchPut {
			framed[i].Value = s.encodeFrame(op.Value)
		}
	}
	if err := s.db.Batch(ctx, framed); err != nil {
		// Cache state is unknown relative to the backend now; drop it.
		s.cache.Purge()
		return err
	}
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			stored := make([]byte, len(op.Value))
			copy(stored, op.Value)
			s.cache.Add(string(op.Key), stored)
		case BatchDelete:
			s.cache.Remove(string(op.Key))
		}
	}
	return nil
}

// Iterator traverses decoded values in [start, end).
func (s *Store) Iterator(ctx context.Context, start, end []byte) (Iterator, error) {
	inner, err := s.db.Iterator(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &decodingIterator{inner: inner}, nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.db.Close()
}

func (s *Store) encodeFrame(value []byte) []byte {
	if s.compressThreshold > 0 && len(value) >= s.compressThreshold {
		compressed := make([]byte, lz4.CompressBlockBound(len(value)))
		n, err := lz4.CompressBlock(value, compressed, nil)
		// lz4 returns n == 0 for incompressible input; fall through to raw.
		if err == nil && n > 0 && n < len(value) {
			framed := make([]byte, 0, 1+binary.MaxVarintLen64+n)
			framed = append(framed, frameLZ4)
			framed = binary.AppendUvarint(framed, uint64(len(value)))
			return append(framed, compressed[:n]...)
		}
	}
	framed := make([]byte, 0, 1+len(value))
	framed = append(framed, frameRaw)
	return append(framed, value...)
}

func decodeFrame(framed []byte) ([]byte, error) {
	if len(framed) == 0 {
		return nil, ErrCorruptValue
	}
	switch framed[0] {
	case frameRaw:
		return framed[1:], nil
	case frameLZ4:
		size, n := binary.Uvarint(framed[1:])
		if n <= 0 {
			return nil, ErrCorruptValue
		}
		decompressed := make([]byte, size)
		written, err := lz4.UncompressBlock(framed[1+n:], decompressed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptValue, err)
		}
		return decompressed[:written], nil
	default:
		return nil, ErrCorruptValue
	}
}

type decodingIterator struct {
	inner Iterator
	value []byte
	err   error
}

func (it *decodingIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.inner.Next() {
		return false
	}
	value, err := decodeFrame(it.inner.Value())
	if err != nil {
		it.err = err
		return false
	}
	it.value = value
	return true
}

func (it *decodingIterator) Key() []byte { return it.inner.Key() }

func (it *decodingIterator) Value() []byte { return it.value }

func (it *decodingIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.inner.Error()
}

func (it *decodingIterator) Close() error { return it.inner.Close() }
