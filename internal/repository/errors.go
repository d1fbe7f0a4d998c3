package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrStorageRead   = errors.New("storage read failed")
	ErrStorageWrite  = errors.New("storage write failed")
	ErrStorageRemove = errors.New("storage remove failed")
)

type StorageOp string

const (
	OpRead   StorageOp = "read"
	OpWrite  StorageOp = "write"
	OpRemove StorageOp = "remove"
)

// StorageError wraps a backend failure with the operation and key involved.
type StorageError struct {
	Op  StorageOp
	Key string
	Err error
}

func NewStorageError(op StorageOp, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrStorageRead:
		return e.Op == OpRead
	case ErrStorageWrite:
		return e.Op == OpWrite
	case ErrStorageRemove:
		return e.Op == OpRemove
	}
	return false
}

// IsStorageFailure reports whether err came from a failing backend rather than
// a missing key.
func IsStorageFailure(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
