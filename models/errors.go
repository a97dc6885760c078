package models

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned when a join key is absent from a table header.
var ErrKeyNotFound = errors.New("key not found in header")

// IOError reports an input file that could not be opened or parsed.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// SerializationError reports an output that could not be written.
type SerializationError struct {
	Format string
	Path   string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("write %s output %q: %v", e.Format, e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
