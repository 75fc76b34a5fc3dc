package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the input path does not name an existing file.
	ErrNotFound = errors.New("input file not found")
	// ErrParse indicates the file exists but could not be read as a table.
	ErrParse = errors.New("cannot parse input as tabular data")
	// ErrUnsupportedFormat indicates no reader is registered for the file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrShape indicates columns of unequal length or duplicate column names.
	ErrShape = errors.New("invalid dataset shape")
)

// NotFoundError is returned by Load before any read is attempted.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("spreadsheet file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error        { return e.Err }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParseError wraps a failure to decode an existing file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse %s: %s", e.Path, ErrParse)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error        { return e.Err }
func (e *ParseError) Is(target error) bool { return target == ErrParse }
