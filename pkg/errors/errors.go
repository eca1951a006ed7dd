// Package errors provides the error types used across the starsieve
// pipeline. Per-line catalog attrition is never represented here; only
// failures that abort a run are.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors for the starsieve pipeline.
var (
	// ErrInsufficientStars indicates that too few reference stars survived
	// thinning for a downstream solve to be worth attempting.
	ErrInsufficientStars = errors.New("not enough reference stars")

	// ErrNotFITS indicates that a file is not a FITS file at all.
	ErrNotFITS = errors.New("not a FITS file")
)

// LoadError reports that the input catalog could not be opened or read.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path string, err error) *LoadError {
	return &LoadError{Path: path, Err: err}
}

// WriteError reports a failure while creating or writing the output table.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("writing table %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a new WriteError.
func NewWriteError(path string, err error) *WriteError {
	return &WriteError{Path: path, Err: err}
}

// InsufficientStarsError carries the counts behind an ErrInsufficientStars
// so the CLI can tell the user how close the run came.
type InsufficientStarsError struct {
	Got  int
	Want int
}

// Error implements the error interface.
func (e *InsufficientStarsError) Error() string {
	return fmt.Sprintf("not enough reference stars: got %d, need at least %d", e.Got, e.Want)
}

// Is implements errors.Is support.
func (e *InsufficientStarsError) Is(target error) bool {
	return target == ErrInsufficientStars
}

// NewInsufficientStarsError creates a new InsufficientStarsError.
func NewInsufficientStarsError(got, want int) *InsufficientStarsError {
	return &InsufficientStarsError{Got: got, Want: want}
}

// IsLoadError checks if an error is a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsWriteError checks if an error is a WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// IsInsufficientStars checks if an error reports too few reference stars.
func IsInsufficientStars(err error) bool {
	return errors.Is(err, ErrInsufficientStars)
}
