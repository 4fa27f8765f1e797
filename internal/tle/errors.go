package tle

import (
	"errors"
	"fmt"
)

// ErrFormatInvalid is the single failure kind of the parser. Every error
// returned by Parse and ParseLines matches it under errors.Is.
var ErrFormatInvalid = errors.New("Invalid TLE Format")

// FormatError names where a record was rejected. Line is 0 for structural
// failures (missing line breaks), otherwise 1 or 2.
type FormatError struct {
	Line  int
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", ErrFormatInvalid, e.Field)
	}
	return fmt.Sprintf("%s: line %d %s", ErrFormatInvalid, e.Line, e.Field)
}

// Is reports every FormatError as ErrFormatInvalid.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormatInvalid
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatError(line int, field string, err error) error {
	return &FormatError{Line: line, Field: field, Err: err}
}
