package document

import (
	"errors"
	"fmt"
)

// Errors returned by document operations.
var (
	ErrLineOutOfRange  = errors.New("line out of range")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// LoadError describes a failure to read a document from disk.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
