package repository

import "errors"

// ErrNotFound is returned by adapters when a lookup matches no document.
var ErrNotFound = errors.New("not found")
