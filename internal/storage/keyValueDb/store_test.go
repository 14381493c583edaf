package keyValueDb_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts keyValueDb.StoreOptions) *keyValueDb.Store {
	t.Helper()
	store, err := keyValueDb.NewStore(memory.NewDB(), opts)
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, keyValueDb.DefaultStoreOptions())

	require.NoError(t, store.Write(ctx, []byte("k"), []byte("v")))
	got, err := store.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// Second read hits the cache
	got, err = store.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, store.Delete(ctx, []byte("k")))
	_, err = store.Read(ctx, []byte("k"))
	assert.ErrorIs(t, err, keyValueDb.ErrKeyNotFound)
}

func TestStoreCompressesLargeValues(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewDB()
	store, err := keyValueDb.NewStore(backend, keyValueDb.StoreOptions{
		CacheSize:         8,
		CompressThreshold: 64,
	})
	require.NoError(t, err)

	// Highly compressible payload well above the threshold
	large := bytes.Repeat([]byte("launchpad"), 100)
	require.NoError(t, store.Write(ctx, []byte("big"), large))

	raw, err := backend.Read(ctx, []byte("big"))
	require.NoError(t, err)
	assert.Less(t, len(raw), len(large), "stored value should be compressed")

	// Round-trips through a fresh store (cold cache)
	fresh, err := keyValueDb.NewStore(backend, keyValueDb.DefaultStoreOptions())
	require.NoError(t, err)
	got, err := fresh.Read(ctx, []byte("big"))
	require.NoError(t, err)
	assert.Equal(t, large, got)
}

func TestStoreBatchAndIterator(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, keyValueDb.DefaultStoreOptions())

	err := store.Batch(ctx, []keyValueDb.BatchOperation{
		{Type: keyValueDb.BatchPut, Key: []byte("a/1"), Value: []byte("one")},
		{Type: keyValueDb.BatchPut, Key: []byte("a/2"), Value: []byte("two")},
		{Type: keyValueDb.BatchPut, Key: []byte("b/1"), Value: []byte("other")},
	})
	require.NoError(t, err)

	iter, err := store.Iterator(ctx, []byte("a/"), []byte("a0"))
	require.NoError(t, err)
	defer iter.Close()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"a/1", "a/2"}, keys)
}
