package relationaldb

import "errors"

var (
	// ErrStoreClosed is returned when trying to operate on a closed store
	ErrStoreClosed = errors.New("relational store is closed")

	// ErrUnknownDriver is returned by Open for an unrecognized driver name
	ErrUnknownDriver = errors.New("unknown relational driver")
)
