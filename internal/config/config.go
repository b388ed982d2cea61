// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"ai1wm-cli/internal/issue"
	"ai1wm-cli/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName names the configuration directory.
	AppName = "ai1wm"
	// ConfigFileName is the config file name inside ConfigDir.
	ConfigFileName = "config.cue"
	// LocalConfigFileName is looked up in the working directory when
	// ConfigDir has no config file.
	LocalConfigFileName = ".ai1wm.cue"
	// EnvPrefix prefixes environment overrides, e.g. AI1WM_LOG_LEVEL.
	EnvPrefix = "AI1WM"
)

//go:embed config_schema.cue
var configSchema []byte

// ErrConfigExists is returned by CreateDefaultConfig when a file is already
// present and force is not set.
var ErrConfigExists = errors.New("config file already exists")

// configDirOverride lets tests bypass os.UserHomeDir, which does not honor
// HOME on every platform.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir. Intended for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}

// ConfigDir returns the ai1wm configuration directory: %APPDATA%\ai1wm on
// Windows, ~/Library/Application Support/ai1wm on macOS and
// $XDG_CONFIG_HOME/ai1wm (default ~/.config/ai1wm) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// Locate returns the config file Load would read, or "" if there is none.
// An explicit ConfigFilePath is returned as is, whether or not it exists.
func Locate(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}

	dir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if p := filepath.Join(dir, ConfigFileName); fileExists(p) {
		return p, nil
	}
	if fileExists(LocalConfigFileName) {
		return LocalConfigFileName, nil
	}
	return "", nil
}

// loadWithOptions reads defaults, the config file (if any) and environment
// overrides, in increasing precedence. It returns the config and the file
// that was read.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := Locate(opts)
	if err != nil {
		return nil, "", err
	}

	if opts.ConfigFilePath != "" && !fileExists(path) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run 'ai1wm config init' to create a default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)).
			BuildError()
	}

	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Compare it with 'ai1wm config dump --format cue'").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables for out-of-range values").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, path, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("archive.chunk_size", defaults.Archive.ChunkSize)
	v.SetDefault("archive.preserve_times", defaults.Archive.PreserveTimes)
	v.SetDefault("migration.validate", defaults.Migration.Validate)
	v.SetDefault("log.level", string(defaults.Log.Level))
}

func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates the file at path against #Config and merges it
// into v. Fields are optional, so concreteness is not required.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration as CUE into the
// config directory (configDirPath, or ConfigDir when empty) and returns the
// file path. An existing file is kept unless force is set.
func CreateDefaultConfig(configDirPath string, force bool) (string, error) {
	dir, err := configDirWithOverride(configDirPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if fileExists(path) && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
