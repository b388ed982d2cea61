// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path given on the command line. It must be
	// non-empty and not whitespace-only.
	FilesystemPath string

	// InvalidFilesystemPathError is returned for an empty FilesystemPath.
	InvalidFilesystemPathError struct {
		Value FilesystemPath
		// Role names the argument, e.g. "source" or "target".
		Role string
	}
)

// String returns the path.
func (p FilesystemPath) String() string { return string(p) }

// Validate returns an error naming role if p is empty or whitespace-only.
func (p FilesystemPath) Validate(role string) error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Value: p, Role: role}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidFilesystemPathError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("invalid %s path %q: must be non-empty", e.Role, e.Value)
	}
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
