package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("invalid data")
	ErrDuplicateKey = errors.New("student with this roll number already exists")
	ErrNotFound     = errors.New("student not found")
)

// ValidationError carries a message for the client and matches ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
