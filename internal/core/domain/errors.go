package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("book copy not found")
	ErrAlreadyCheckedOut = errors.New("book copy is already checked out")
	ErrAlreadyAvailable  = errors.New("book copy is already available")
	ErrDuplicateID       = errors.New("book copy id already exists")
	ErrStorage           = errors.New("storage error")
)

func NewNotFoundError(id string) error {
	return fmt.Errorf("%w: id=%s", ErrNotFound, id)
}

// NewStorageError tags err as a backend failure while keeping the cause inspectable.
func NewStorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
