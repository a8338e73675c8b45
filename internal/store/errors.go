package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable marks a read or write the backend could not perform.
	ErrStorageUnavailable = errors.New("store: storage unavailable")

	// ErrCorruptRecord marks a stored value that is not valid structured data.
	ErrCorruptRecord = errors.New("store: corrupt record")
)

// OpError records a failed port operation.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Is reports every OpError as ErrStorageUnavailable.
func (e *OpError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func opErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Key: key, Err: err}
}
