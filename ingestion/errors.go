package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid ingestion config")

	// ErrSourceNotFound is the kind of errors raised when the source file does not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrParse is the kind of errors raised when the source cannot be read or parsed.
	ErrParse = errors.New("parse error")

	// ErrSplit is the kind of errors raised when the dataset cannot be partitioned.
	ErrSplit = errors.New("split error")

	// ErrWrite is the kind of errors raised when an output cannot be written.
	ErrWrite = errors.New("write error")
)

// Error describes a failed ingestion step.
// errors.Is matches both Kind and the underlying cause.
type Error struct {
	Op   string // step that failed, e.g. "write train"
	Path string // file or directory involved, if any
	Kind error  // one of ErrSourceNotFound, ErrParse, ErrSplit, ErrWrite
	Err  error
}

func newError(op, path string, kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("ingestion: %s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("ingestion: %s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
