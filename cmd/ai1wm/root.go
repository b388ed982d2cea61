// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ai1wm-cli/internal/issue"
	"ai1wm-cli/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	errSourceNotFound = errors.New("source not found")
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ai1wm [<source> <target>]",
		Short: "Pack and unpack All-in-One WP Migration archives",
		Long: TitleStyle.Render("ai1wm") + SubtitleStyle.Render(" - Pack and unpack All-in-One WP Migration archives") + `

With two arguments ai1wm picks the direction from the source:
a .wpress file is unpacked into the target directory, a directory
is packed into the target file. Packages are validated on both sides:
the directory must hold package.json and database.sql.

` + SubtitleStyle.Render("Examples:") + `
  ai1wm site.wpress ./site       Unpack an archive
  ai1wm ./site site.wpress       Pack a directory
  ai1wm list site.wpress         List archive entries
  ai1wm info ./site              Show package metadata
  ai1wm config show              Show current configuration`,
		Args: rootArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runMigrate(cmd, app, args[0], args[1])
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.config/ai1wm/config.cue)")

	rootCmd.AddCommand(newPackCommand(app))
	rootCmd.AddCommand(newUnpackCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newInfoCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// rootArgs accepts no arguments (help) or exactly a source and a target.
func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) != 2 {
		return &ExitError{
			Code: types.ExitUsage,
			Err:  fmt.Errorf("accepts <source> <target>, received %d arg(s)", len(args)),
		}
	}
	return pathArgs("source", "target")(cmd, args)
}

// pathArgs requires one non-empty path argument per role.
func pathArgs(roles ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(len(roles))(cmd, args); err != nil {
			return &ExitError{Code: types.ExitUsage, Err: err}
		}
		for i, role := range roles {
			if err := types.FilesystemPath(args[i]).Validate(role); err != nil {
				return &ExitError{Code: types.ExitUsage, Err: err}
			}
		}
		return nil
	}
}

// runMigrate unpacks a file source into target or packs a directory source
// into target.
func runMigrate(cmd *cobra.Command, app *App, source, target string) error {
	s, err := app.newSession(cmd.Context())
	if err != nil {
		return app.fail(cmd, nil, err)
	}

	info, err := os.Stat(source)
	switch {
	case err == nil && info.Mode().IsRegular():
		return runUnpack(cmd, app, s, source, target, s.cfg.Migration.Validate)
	case err == nil && info.IsDir():
		return runPack(cmd, app, s, source, target, s.cfg.Migration.Validate)
	default:
		return app.fail(cmd, s, issue.NewErrorContext().
			WithOperation("migrate").
			WithResource(source).
			WithSuggestion("Pass a .wpress file to unpack or a package directory to pack").
			WithIssue(issue.ArchiveNotFoundId).
			Wrap(errSourceNotFound).
			BuildError())
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	rootCmd := newRootCommand(NewApp(Dependencies{}))

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}
