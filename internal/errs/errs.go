// Package errs defines the error kinds the engine can produce (spec §7).
// Adapted from the teacher's internal/errors package: typed structs that
// carry operation context and unwrap to the underlying cause for
// errors.Is/errors.As, rather than sentinel values or bare fmt.Errorf chains.
package errs

import (
	"fmt"
	"time"
)

// PathNotFound is returned by the engine when the analysis root does not
// exist. Together with Cancelled, it is one of the two errors that abort the
// engine outright.
type PathNotFound struct {
	Path       string
	Underlying error
}

func NewPathNotFound(path string, err error) *PathNotFound {
	return &PathNotFound{Path: path, Underlying: err}
}

func (e *PathNotFound) Error() string {
	return fmt.Sprintf("path not found: %s: %v", e.Path, e.Underlying)
}

func (e *PathNotFound) Unwrap() error { return e.Underlying }

// IoError is recorded on a FileOutcome when a file could not be read. It
// never aborts the run.
type IoError struct {
	FilePath   string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

func NewIoError(op, path string, err error) *IoError {
	return &IoError{Operation: op, FilePath: path, Underlying: err, Timestamp: time.Now()}
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io %s failed for %s: %v", e.Operation, e.FilePath, e.Underlying)
}

func (e *IoError) Unwrap() error { return e.Underlying }

// ParseError represents an unrecoverable parse failure for a whole file —
// as opposed to a recoverable syntax error, which the parser swallows and
// returns the classes it could still recognize for (spec §7's
// RecoverableSyntax, which never surfaces as a Go error value at all).
type ParseError struct {
	FilePath   string
	Line       int
	Column     int
	Underlying error
	Timestamp  time.Time
}

func NewParseError(path string, line, column int, err error) *ParseError {
	return &ParseError{FilePath: path, Line: line, Column: column, Underlying: err, Timestamp: time.Now()}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s:%d:%d: %v", e.FilePath, e.Line, e.Column, e.Underlying)
}

func (e *ParseError) Unwrap() error { return e.Underlying }

// ClusteringFailure is attached to a ClassOutcome's summary rather than
// propagated: the run continues with SuggestedExtractions left empty.
type ClusteringFailure struct {
	ClassName  string
	Underlying error
}

func NewClusteringFailure(className string, err error) *ClusteringFailure {
	return &ClusteringFailure{ClassName: className, Underlying: err}
}

func (e *ClusteringFailure) Error() string {
	return fmt.Sprintf("clustering failed for class %s: %v", e.ClassName, e.Underlying)
}

func (e *ClusteringFailure) Unwrap() error { return e.Underlying }

// Cancelled is returned by the engine when its context is cancelled before
// or during the tree walk. No partial results accompany it.
type Cancelled struct {
	Underlying error
}

func NewCancelled(err error) *Cancelled {
	return &Cancelled{Underlying: err}
}

func (e *Cancelled) Error() string {
	return fmt.Sprintf("analysis cancelled: %v", e.Underlying)
}

func (e *Cancelled) Unwrap() error { return e.Underlying }
