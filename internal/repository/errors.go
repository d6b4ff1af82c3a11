package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Wrapped with the entity name at each call site; check with errors.Is.
var ErrNotFound = errors.New("not found")
