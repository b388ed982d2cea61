// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Process exit codes returned by the ai1wm binary.
const (
	// ExitSuccess means the command completed.
	ExitSuccess ExitCode = 0
	// ExitFailure is any error without a more specific code.
	ExitFailure ExitCode = 1
	// ExitUsage means the command line could not be interpreted.
	ExitUsage ExitCode = 2
	// ExitCorruptArchive means the archive stream is malformed or truncated.
	ExitCorruptArchive ExitCode = 3
	// ExitInvalidPackage means a directory is not a valid migration package.
	ExitInvalidPackage ExitCode = 4
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status in the range 0-255.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess reports whether c is ExitSuccess.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal form of c.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
