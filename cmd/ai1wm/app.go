// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"ai1wm-cli/internal/config"
	"ai1wm-cli/internal/logging"
	"ai1wm-cli/pkg/wpress"

	"github.com/charmbracelet/log"
)

type (
	// App wires the CLI to its dependencies. Every command handler receives
	// the App and writes through its stdout and stderr.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer

		// verbose and cfgFile are bound to the global flags.
		verbose bool
		cfgFile string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// session holds what a single command invocation needs once the
	// configuration has been loaded.
	session struct {
		cfg     *config.Config
		logger  *log.Logger
		verbose bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadOptions returns the config load options implied by the global flags.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.cfgFile}
}

// newSession loads the configuration and builds the logger. The --verbose
// flag wins over ui.verbose only when it is set.
func (a *App) newSession(ctx context.Context) (*session, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}

	verbose := a.verbose || cfg.UI.Verbose
	logger, err := logging.New(a.stderr, logging.Options{
		Level:   cfg.Log.Level.String(),
		Verbose: verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &session{cfg: cfg, logger: logger, verbose: verbose}, nil
}

// archiveOptions returns the wpress options from the configuration, the
// session logger and a debug-level progress reporter, followed by extra.
func (s *session) archiveOptions(extra ...wpress.Option) []wpress.Option {
	opts := s.cfg.ArchiveOptions()
	opts = append(opts,
		wpress.WithLogger(s.logger),
		wpress.WithProgress(func(e wpress.ProgressEvent) {
			s.logger.Debug(e.Stage.String(), "entry", e.Path, "files", e.FilesDone, "bytes", e.BytesDone)
		}),
	)
	return append(opts, extra...)
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (s *session) glamourStyle() string {
	if s.cfg.UI.ColorScheme == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}
