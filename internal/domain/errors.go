package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInsufficientData    = errors.New("insufficient data")
	ErrModelNotTrained     = errors.New("model not trained")
	ErrInsufficientHistory = errors.New("insufficient reading history")
	ErrDuplicateReading    = errors.New("reading already exists")
	ErrInvalidInput        = errors.New("invalid input")
)

// StorageError wraps failures reading or writing the model artifact.
// Load failures degrade to an untrained model instead of surfacing this;
// save failures propagate it so the caller can decide whether to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("model storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
