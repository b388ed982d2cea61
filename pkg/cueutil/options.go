// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the largest document ParseAndDecode accepts (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// defaultFilename is used in error messages when WithFilename is not given.
const defaultFilename = "<input>"

type (
	// parseOptions holds configuration for a single parse.
	parseOptions struct {
		maxFileSize int64
		concrete    bool
		json        bool
		filename    string
	}

	// Option configures ParseAndDecode.
	Option func(*parseOptions)
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
		filename:    defaultFilename,
	}
}

// WithMaxFileSize sets the maximum document size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether every value must be concrete after
// unification. Default is true.
//
// Config files pass false so that unset optional fields are accepted.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}

// WithJSON parses the document as strict JSON instead of CUE.
func WithJSON() Option {
	return func(o *parseOptions) {
		o.json = true
	}
}

// WithFilename sets the file name shown in error messages.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		if name != "" {
			o.filename = name
		}
	}
}
