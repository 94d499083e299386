package db

import "errors"

var (
	// ErrKeyNotFound key not exist
	ErrKeyNotFound = errors.New("key not found")

	// ErrClosed the store has been closed
	ErrClosed = errors.New("store is closed")
)

// IsErrNotFound returns true if the key is not found, otherwise return false
func IsErrNotFound(err error) bool {
	return err == ErrKeyNotFound
}
