// SPDX-License-Identifier: MPL-2.0

package wpress

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrFormat is the sentinel wrapped by FormatError.
	ErrFormat = errors.New("invalid archive format")

	// ErrTruncated is the sentinel wrapped by TruncationError.
	ErrTruncated = errors.New("archive truncated")

	// ErrWriteTooLong is returned when more content is written to an entry
	// than its header declared.
	ErrWriteTooLong = errors.New("write too long")

	// ErrWriteAfterClose is returned when writing to a closed Writer.
	ErrWriteAfterClose = errors.New("write after close")
)

type (
	// FormatError reports a header that cannot be encoded or decoded: a wrong
	// record length, a field that does not fit its slot, or a field whose
	// content is not well-formed.
	FormatError struct {
		// Field is the header field involved, empty for record-level problems.
		Field string
		// Msg describes the problem.
		Msg string
	}

	// TruncationError reports a stream that ended before the declared number
	// of bytes could be read.
	TruncationError struct {
		Want int64
		Got  int64
	}

	// ExtractError reports a failure writing a single destination file.
	ExtractError struct {
		Path string
		Err  error
	}

	// PackError wraps any failure of a pack operation with the source directory.
	PackError struct {
		Source string
		Err    error
	}

	// UnpackError wraps any failure of an unpack operation with the source stream name.
	UnpackError struct {
		Source string
		Err    error
	}
)

func newFormatError(field, format string, args ...any) *FormatError {
	return &FormatError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

// Unwrap returns ErrFormat for errors.Is compatibility.
func (e *FormatError) Unwrap() error { return ErrFormat }

// Error implements the error interface.
func (e *TruncationError) Error() string {
	return fmt.Sprintf("bad file size: expected %d bytes, got %d", e.Want, e.Got)
}

// Unwrap returns both ErrTruncated and io.ErrUnexpectedEOF.
func (e *TruncationError) Unwrap() []error {
	return []error{ErrTruncated, io.ErrUnexpectedEOF}
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return fmt.Sprintf("error extracting a file: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExtractError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *PackError) Error() string {
	return fmt.Sprintf("error packing a directory: %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *PackError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *UnpackError) Error() string {
	return fmt.Sprintf("error unpacking a file: %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *UnpackError) Unwrap() error { return e.Err }
