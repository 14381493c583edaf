package minter

import (
	"bytes"
	"sort"

	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
)

// StateView provides read/write access to controller state. Get returns
// (nil, nil) for an absent key.
type StateView interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Set(key, value []byte) error
	Delete(key []byte) error

	// IteratePrefix visits entries under prefix in ascending key order.
	// If fn returns false, iteration stops early.
	IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error
}

// Backing is the durable side of a StateTable: a StateView that can also
// apply a whole batch atomically.
type Backing interface {
	StateView
	ApplyBatch(ops []keyValueDb.BatchOperation) error
}

// action tags a buffered modification.
type action int

const (
	actionCache action = iota
	actionSet
	actionErase
)

type trackedEntry struct {
	action  action
	current []byte
}

// StateTable buffers every modification a request makes on top of a Backing
// and commits them in one atomic batch only if the request succeeds. A failed
// request is discarded wholesale; the durable store never sees partial writes.
type StateTable struct {
	base  Backing
	items map[string]*trackedEntry
}

// NewStateTable creates an empty buffer over base.
func NewStateTable(base Backing) *StateTable {
	return &StateTable{
		base:  base,
		items: make(map[string]*trackedEntry),
	}
}

func (t *StateTable) Get(key []byte) ([]byte, error) {
	if entry, ok := t.items[string(key)]; ok {
		if entry.action == actionErase {
			return nil, nil
		}
		return entry.current, nil
	}

	data, err := t.base.Get(key)
	if err != nil {
		return nil, err
	}
	if data != nil {
		t.items[string(key)] = &trackedEntry{action: actionCache, current: data}
	}
	return data, nil
}

func (t *StateTable) Has(key []byte) (bool, error) {
	if entry, ok := t.items[string(key)]; ok {
		return entry.action != actionErase, nil
	}
	return t.base.Has(key)
}

func (t *StateTable) Set(key, value []byte) error {
	t.items[string(key)] = &trackedEntry{action: actionSet, current: value}
	return nil
}

func (t *StateTable) Delete(key []byte) error {
	t.items[string(key)] = &trackedEntry{action: actionErase}
	return nil
}

// IteratePrefix merges buffered entries over the base view so a request
// observes its own writes and deletes.
func (t *StateTable) IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error {
	merged := make(map[string][]byte)

	err := t.base.IteratePrefix(prefix, func(key, value []byte) bool {
		merged[string(key)] = value
		return true
	})
	if err != nil {
		return err
	}

	for key, entry := range t.items {
		if !bytes.HasPrefix([]byte(key), prefix) {
			continue
		}
		switch entry.action {
		case actionSet:
			merged[key] = entry.current
		case actionErase:
			delete(merged, key)
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !fn([]byte(key), merged[key]) {
			return nil
		}
	}
	return nil
}

// Commit applies all buffered modifications to the backing store in one batch.
func (t *StateTable) Commit() error {
	var ops []keyValueDb.BatchOperation
	for key, entry := range t.items {
		switch entry.action {
		case actionSet:
			ops = append(ops, keyValueDb.BatchOperation{
				Type:  keyValueDb.BatchPut,
				Key:   []byte(key),
				Value: entry.current,
			})
		case actionErase:
			ops = append(ops, keyValueDb.BatchOperation{
				Type: keyValueDb.BatchDelete,
				Key:  []byte(key),
			})
		}
	}
	if len(ops) == 0 {
		return nil
	}
	return t.base.ApplyBatch(ops)
}
