// Package fserr defines the error taxonomy shared by the scanner and the rename engine.
package fserr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed input rejected before any filesystem work.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a target directory that does not exist or is not a directory.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a composed rename target that already exists.
	ErrConflict = errors.New("target already exists")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted reason.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the offending path.
func NotFound(path string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, path, cause)
	}
	return fmt.Errorf("%w: %s is not a directory", ErrNotFound, path)
}

// Conflict wraps ErrConflict with the contested target path.
func Conflict(target string) error {
	return fmt.Errorf("%w: %s", ErrConflict, target)
}
