package keyValueDb

import "errors"

var (
	// ErrDBClosed is returned when trying to operate on a closed keyValueDb
	ErrDBClosed = errors.New("keyValueDb is closed")

	// ErrKeyNotFound is returned when a key doesn't exist in the keyValueDb
	ErrKeyNotFound = errors.New("key not found")

	// ErrBatchOperationFailed is returned when a batch operation fails
	ErrBatchOperationFailed = errors.New("batch operation failed")

	// ErrCorruptValue is returned when a stored value's compression frame cannot be decoded
	ErrCorruptValue = errors.New("corrupt stored value")
)
