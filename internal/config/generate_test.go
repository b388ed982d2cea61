// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Archive.ChunkSize = 4096

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatCUE, []string{"chunk_size:     4096", `color_scheme: "auto"`, "validate: true"}},
		{FormatTOML, []string{"[archive]", "chunk_size = 4096", "info"}},
		{FormatYAML, []string{"archive:", "chunk_size: 4096", "level: info"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			out, err := Generate(cfg, tt.format)
			if err != nil {
				t.Fatalf("Generate(%s) error = %v", tt.format, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(out), w) {
					t.Errorf("Generate(%s) missing %q:\n%s", tt.format, w, out)
				}
			}
		})
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := Generate(DefaultConfig(), "xml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}
