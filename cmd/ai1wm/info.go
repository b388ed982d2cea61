// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai1wm-cli/pkg/migration"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

const (
	infoFormatText = "text"
	infoFormatJSON = "json"
	infoFormatYAML = "yaml"
)

var errInvalidInfoFormat = errors.New("invalid output format")

func newInfoCommand(app *App) *cobra.Command {
	var format string

	infoCmd := &cobra.Command{
		Use:   "info <dir>",
		Short: "Show migration package metadata",
		Long: `Show the plugins, stylesheet and template recorded in a package's
` + CmdStyle.Render("package.json") + `, which of the package files are present, and any
validation issues.

The command exits non-zero when the package is invalid.

Examples:
  ai1wm info ./site
  ai1wm info ./site --format yaml`,
		Args: pathArgs("package"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			if err := runInfo(app, args[0], format); err != nil {
				return app.fail(cmd, s, err)
			}
			return nil
		},
	}

	infoCmd.Flags().StringVarP(&format, "format", "f", infoFormatText, "output format: text, json or yaml")

	return infoCmd
}

func runInfo(app *App, dir, format string) error {
	switch format {
	case infoFormatText, infoFormatJSON, infoFormatYAML:
	default:
		return fmt.Errorf("%w %q (valid: text, json, yaml)", errInvalidInfoFormat, format)
	}

	summary, err := migration.New(dir).Summarize()
	if err != nil {
		return err
	}

	switch format {
	case infoFormatText:
		writeSummary(app, summary)
	case infoFormatJSON:
		payload, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		fmt.Fprintln(app.stdout, string(payload))
	case infoFormatYAML:
		payload, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		fmt.Fprint(app.stdout, string(payload))
	}

	if !summary.Validation.Valid {
		return fmt.Errorf("%w: %s", migration.ErrInvalidPackage, summary.Validation.Issues[0].Message)
	}
	return nil
}

func writeSummary(app *App, s *migration.Summary) {
	out := app.stdout
	fmt.Fprintln(out, TitleStyle.Render("Migration Package"))
	fmt.Fprintf(out, "%s Path: %s\n", infoIcon, CmdStyle.Render(s.BaseDir))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s %s\n", presenceIcon(s.HasInfo), migration.InfoFileName)
	fmt.Fprintf(out, "%s %s\n", presenceIcon(s.HasDatabase), migration.DatabaseFileName)
	fmt.Fprintf(out, "%s %s\n", presenceIcon(s.HasLog), migration.LogFileName)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Plugins:"), orNone(strings.Join(s.Plugins, ", ")))
	fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Stylesheet:"), orNone(s.Stylesheet))
	fmt.Fprintf(out, "%s %s\n", SubtitleStyle.Render("Template:"), orNone(s.Template))
	fmt.Fprintln(out)

	for _, w := range s.Validation.Warnings {
		fmt.Fprintf(out, "%s %s %s\n", warningIcon, VerboseStyle.Render(fmt.Sprintf("[%s]", w.Type)), w.Message)
	}
	if s.Validation.Valid {
		fmt.Fprintf(out, "%s Package is valid\n", successIcon)
		return
	}
	fmt.Fprintf(out, "%s Package validation failed with %d issue(s)\n", failureIcon, len(s.Validation.Issues))
	for i, v := range s.Validation.Issues {
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, VerboseStyle.Render(fmt.Sprintf("[%s]", v.Type)), v.Message)
	}
}

func presenceIcon(present bool) string {
	if present {
		return successIcon
	}
	return warningIcon
}

func orNone(v string) string {
	if v == "" {
		return SubtitleStyle.Render("(none)")
	}
	return CmdStyle.Render(v)
}
