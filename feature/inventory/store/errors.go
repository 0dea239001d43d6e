package store

import (
	"errors"
	"fmt"
)

// ErrUnresolvedReference marks a row dropped because a required reference does not exist.
var ErrUnresolvedReference = errors.New("unresolved reference")

// PersistenceError reports a failed storage read or write for a single row.
type PersistenceError struct {
	Op   string
	Kind string
	Key  string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Kind, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
