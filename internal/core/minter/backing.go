package minter

import (
	"context"
	"errors"

	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
)

// storeBacking adapts a keyValueDb.Store to the Backing interface for the
// duration of one request.
type storeBacking struct {
	ctx   context.Context
	store *keyValueDb.Store
}

func (b *storeBacking) Get(key []byte) ([]byte, error) {
	data, err := b.store.Read(b.ctx, key)
	if errors.Is(err, keyValueDb.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *storeBacking) Has(key []byte) (bool, error) {
	data, err := b.Get(key)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

func (b *storeBacking) Set(key, value []byte) error {
	return b.store.Write(b.ctx, key, value)
}

func (b *storeBacking) Delete(key []byte) error {
	return b.store.Delete(b.ctx, key)
}

func (b *storeBacking) IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error {
	it, err := b.store.Iterator(b.ctx, prefix, prefixEnd(prefix))
	if err != nil {
		return err
	}
	defer it.Close()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

func (b *storeBacking) ApplyBatch(ops []keyValueDb.BatchOperation) error {
	return b.store.Batch(b.ctx, ops)
}

// prefixEnd returns the smallest key greater than every key with the given
// prefix, or nil when the prefix is all 0xff bytes.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
