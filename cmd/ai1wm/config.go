// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"ai1wm-cli/internal/config"
	"ai1wm-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `ai1wm config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ai1wm configuration",
		Long: `Manage ai1wm configuration.

Configuration is stored in:
  - Linux: ~/.config/ai1wm/config.cue
  - macOS: ~/Library/Application Support/ai1wm/config.cue
  - Windows: %APPDATA%\ai1wm\config.cue

A ` + CmdStyle.Render(config.LocalConfigFileName) + ` file in the working directory is used when
none of these exist. Environment variables prefixed with ` + CmdStyle.Render(config.EnvPrefix+"_") + `
override file values, e.g. ` + CmdStyle.Render("AI1WM_ARCHIVE_CHUNK_SIZE=65536") + `.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfig(cmd.Context(), app); err != nil {
				return app.fail(cmd, nil, err)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := showConfigPath(app); err != nil {
				return app.fail(cmd, nil, err)
			}
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(app, force); err != nil {
				return app.fail(cmd, nil, err)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dumpConfig(cmd.Context(), app, config.Format(format)); err != nil {
				return app.fail(cmd, nil, err)
			}
			return nil
		},
	}
	dumpCmd.Flags().StringVarP(&format, "format", "f", string(config.FormatCUE), "output format: cue, toml or yaml")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	cfgPath, err := config.Locate(app.loadOptions())
	if err == nil && cfgPath != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("archive"))
	fmt.Fprintf(out, "  chunk_size: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Archive.ChunkSize)))
	fmt.Fprintf(out, "  preserve_times: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Archive.PreserveTimes)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("migration"))
	fmt.Fprintf(out, "  validate: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Migration.Validate)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(out, "  level: %s\n", valueStyle.Render(cfg.Log.Level.String()))

	return nil
}

func showConfigPath(app *App) error {
	cfgPath, err := config.Locate(app.loadOptions())
	if err != nil {
		return err
	}
	if cfgPath != "" {
		fmt.Fprintln(app.stdout, cfgPath)
		return nil
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s %s\n", filepath.Join(cfgDir, config.ConfigFileName), SubtitleStyle.Render("(not created)"))
	return nil
}

func initConfig(app *App, force bool) error {
	cfgPath, err := config.CreateDefaultConfig("", force)
	if errors.Is(err, config.ErrConfigExists) {
		return issue.NewErrorContext().
			WithOperation("create config").
			WithResource(cfgPath).
			WithSuggestion("Run 'ai1wm config init --force' to overwrite it").
			Wrap(err).
			BuildError()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "%s Created %s\n", successIcon, CmdStyle.Render(cfgPath))
	return nil
}

func dumpConfig(ctx context.Context, app *App, format config.Format) error {
	cfg, err := app.Config.Load(ctx, app.loadOptions())
	if err != nil {
		return err
	}

	out, err := config.Generate(cfg, format)
	if err != nil {
		return err
	}
	_, err = app.stdout.Write(out)
	return err
}
