// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "minimum chunk", mutate: func(c *Config) { c.Archive.ChunkSize = MinChunkSize }},
		{name: "chunk too small", mutate: func(c *Config) { c.Archive.ChunkSize = MinChunkSize - 1 }, want: ErrInvalidChunkSize},
		{name: "chunk too large", mutate: func(c *Config) { c.Archive.ChunkSize = MaxChunkSize + 1 }, want: ErrInvalidChunkSize},
		{name: "bad color scheme", mutate: func(c *Config) { c.UI.ColorScheme = "neon" }, want: ErrInvalidColorScheme},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "trace" }, want: ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want %v and ErrInvalidConfig", err, tt.want)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllFields(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.UI.ColorScheme = "x"
	cfg.Log.Level = "y"
	cfg.Archive.ChunkSize = 0

	var ice *InvalidConfigError
	if !errors.As(cfg.Validate(), &ice) || len(ice.FieldErrors) != 3 {
		t.Fatalf("expected 3 field errors, got %v", cfg.Validate())
	}
}

func TestConfig_ArchiveOptions(t *testing.T) {
	t.Parallel()

	if got := len(DefaultConfig().ArchiveOptions()); got != 2 {
		t.Errorf("ArchiveOptions() returned %d options, want 2", got)
	}
}
