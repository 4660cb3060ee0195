package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyVoted  = errors.New("already voted")
	ErrNotFound      = errors.New("not found")
	ErrStorage       = errors.New("storage failure")
)

// ValidationError reports which draft field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StorageError wraps a failed read/write or an undecodable blob.
type StorageError struct {
	Op  string // read|write|decode|encode
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
