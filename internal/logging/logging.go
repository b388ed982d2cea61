// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet/log logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// Prefix is prepended to every log line.
const Prefix = "ai1wm"

// Options configures New.
type Options struct {
	// Level is one of "debug", "info", "warn" or "error". Empty means "info".
	Level string
	// Verbose forces the debug level.
	Verbose bool
}

// New returns a logger writing to w. Terminals get the human-readable text
// format; anything else gets logfmt.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = log.DebugLevel
	}

	formatter := log.LogfmtFormatter
	if isTerminal(w) {
		formatter = log.TextFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:    Prefix,
		Level:     level,
		Formatter: formatter,
	}), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
