// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"ai1wm-cli/pkg/wpress"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	// MinChunkSize and MaxChunkSize bound archive.chunk_size.
	MinChunkSize = 512
	MaxChunkSize = 16 * 1024 * 1024
)

var (
	// ErrInvalidColorScheme is returned for an unknown ColorScheme.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned for an unknown LogLevel.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidChunkSize is returned when archive.chunk_size is out of range.
	ErrInvalidChunkSize = errors.New("invalid chunk size")
	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the terminal palette.
	ColorScheme string

	// LogLevel is the minimum level written to the log.
	LogLevel string

	// Config is the complete ai1wm configuration.
	Config struct {
		UI        UIConfig        `json:"ui" mapstructure:"ui" toml:"ui" yaml:"ui"`
		Archive   ArchiveConfig   `json:"archive" mapstructure:"archive" toml:"archive" yaml:"archive"`
		Migration MigrationConfig `json:"migration" mapstructure:"migration" toml:"migration" yaml:"migration"`
		Log       LogConfig       `json:"log" mapstructure:"log" toml:"log" yaml:"log"`
	}

	// UIConfig holds terminal output settings.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose" toml:"verbose" yaml:"verbose"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme" yaml:"color_scheme"`
	}

	// ArchiveConfig holds pack and unpack settings.
	ArchiveConfig struct {
		ChunkSize     int  `json:"chunk_size" mapstructure:"chunk_size" toml:"chunk_size" yaml:"chunk_size"`
		PreserveTimes bool `json:"preserve_times" mapstructure:"preserve_times" toml:"preserve_times" yaml:"preserve_times"`
	}

	// MigrationConfig holds migration package settings.
	MigrationConfig struct {
		Validate bool `json:"validate" mapstructure:"validate" toml:"validate" yaml:"validate"`
	}

	// LogConfig holds logging settings.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level" yaml:"level"`
	}

	// InvalidConfigError lists every invalid field of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// String returns the scheme name.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error wrapping ErrInvalidColorScheme for unknown values.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: auto, dark, light)", ErrInvalidColorScheme, string(cs))
	}
}

// String returns the level name.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error wrapping ErrInvalidLogLevel for unknown values.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, string(l))
	}
}

// Validate checks values that environment overrides can set outside the
// schema.
func (c *Config) Validate() error {
	var errs []error
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}
	if c.Archive.ChunkSize < MinChunkSize || c.Archive.ChunkSize > MaxChunkSize {
		errs = append(errs, fmt.Errorf("archive.chunk_size: %w %d (valid: %d-%d)",
			ErrInvalidChunkSize, c.Archive.ChunkSize, MinChunkSize, MaxChunkSize))
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig followed by every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// ArchiveOptions returns the wpress options implied by c.
func (c *Config) ArchiveOptions() []wpress.Option {
	return []wpress.Option{
		wpress.WithChunkSize(c.Archive.ChunkSize),
		wpress.WithPreserveTimes(c.Archive.PreserveTimes),
	}
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
		Archive: ArchiveConfig{
			ChunkSize:     wpress.DefaultChunkSize,
			PreserveTimes: false,
		},
		Migration: MigrationConfig{
			Validate: true,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
	}
}
