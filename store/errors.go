package store

import "errors"

// ErrNotFound is returned when no item exists for the requested id.
var ErrNotFound = errors.New("store: item not found")
