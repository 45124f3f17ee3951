package journal

import "errors"

var (
	// ErrNotFound is returned when a trade does not exist for the owner.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a trade ID is inserted twice.
	// Trades are append-only.
	ErrDuplicateKey = errors.New("duplicate key: trades are append-only")

	// ErrInvalidInput is returned when a record is missing required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable marks failures reaching the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
