// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "config.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("plain error is wrapped with file name", func(t *testing.T) {
		t.Parallel()

		orig := errors.New("boom")
		err := FormatError(orig, "config.cue")
		if !errors.Is(err, orig) {
			t.Errorf("expected wrapped error, got %v", err)
		}
		if !strings.HasPrefix(err.Error(), "config.cue: ") {
			t.Errorf("error should start with file name, got %q", err.Error())
		}
	})

	t.Run("wrapped sentinel survives formatting", func(t *testing.T) {
		t.Parallel()

		err := FormatError(fmt.Errorf("reading: %w", ErrFileTooLarge), "config.cue")
		if !errors.Is(err, ErrFileTooLarge) {
			t.Errorf("expected ErrFileTooLarge in chain, got %v", err)
		}
	})

	t.Run("cue error is flattened with field path", func(t *testing.T) {
		t.Parallel()

		v := cuecontext.New().CompileString(`x: int & "a"`)
		err := FormatError(v.Validate(), "config.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		msg := err.Error()
		if !strings.HasPrefix(msg, "config.cue: ") || !strings.Contains(msg, "x: ") {
			t.Errorf("error should carry file and field path, got %q", msg)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{"empty", nil, ""},
		{"single", []string{"ui"}, "ui"},
		{"nested", []string{"archive", "chunk_size"}, "archive.chunk_size"},
		{"index", []string{"Plugins", "0"}, "Plugins[0]"},
		{"index then field", []string{"items", "2", "name"}, "items[2].name"},
		{"leading number is a field", []string{"0", "name"}, "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "a"); err != nil {
		t.Errorf("size at limit should pass, got %v", err)
	}
	err := CheckFileSize(make([]byte, 11), 10, "a")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "11 bytes") {
		t.Errorf("error should report the size, got %q", err.Error())
	}
}
