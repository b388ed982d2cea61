// SPDX-License-Identifier: MPL-2.0

package wpress

import (
	"io"

	"github.com/charmbracelet/log"
)

// DefaultChunkSize is the buffer size used to stream file content.
const DefaultChunkSize = 16 * 1024

// defaultSourceName names a stream in errors when no WithSourceName is given.
const defaultSourceName = "<stream>"

// options holds configuration for pack and unpack operations.
type options struct {
	logger        *log.Logger
	chunkSize     int
	progress      ProgressFunc
	sourceName    string
	preserveTimes bool
}

// Option configures Pack, Unpack and their file-level variants.
type Option func(*options)

// WithLogger sets the logger for per-entry output.
// By default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithChunkSize sets the size of the buffer used to copy file content.
// Values <= 0 use DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithProgress registers a callback invoked after every entry.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithSourceName sets the name used for the stream in UnpackError.
// UnpackFile sets it to the archive path.
func WithSourceName(name string) Option {
	return func(o *options) {
		o.sourceName = name
	}
}

// WithPreserveTimes sets the modification time of every extracted file to
// the time recorded in its header. Off by default.
func WithPreserveTimes(preserve bool) Option {
	return func(o *options) {
		o.preserveTimes = preserve
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.chunkSize <= 0 {
		o.chunkSize = DefaultChunkSize
	}
	if o.sourceName == "" {
		o.sourceName = defaultSourceName
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

func (o *options) report(stage ProgressStage, path string, bytesDone uint64, filesDone int) {
	if o.progress == nil {
		return
	}
	o.progress(ProgressEvent{
		Stage:     stage,
		Path:      path,
		BytesDone: bytesDone,
		FilesDone: filesDone,
	})
}
