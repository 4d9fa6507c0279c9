// store/errors.go
package store

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned on a uniqueness violation (duplicate
	// property number, document number or stock number).
	ErrConflict = errors.New("duplicate record")
)
