package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly requested config file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrTypeMismatch indicates the value type doesn't match the setting.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidValue indicates a value of the right type that fails validation.
	ErrInvalidValue = errors.New("invalid value")
)

// FieldError describes a problem with one setting.
type FieldError struct {
	// Path is the setting path, e.g. "viewer.filler".
	Path string
	// Value is the offending value.
	Value any
	// Err is ErrTypeMismatch, ErrInvalidValue or a parse error.
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (value: %v)", e.Path, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func typeError(path string, want string, value any) *FieldError {
	return &FieldError{
		Path:  path,
		Value: value,
		Err:   fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, want, value),
	}
}

func invalid(path string, value any, reason string) *FieldError {
	return &FieldError{
		Path:  path,
		Value: value,
		Err:   fmt.Errorf("%w: %s", ErrInvalidValue, reason),
	}
}
