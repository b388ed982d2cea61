// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"ai1wm-cli/pkg/migration"
	"ai1wm-cli/pkg/wpress"

	"github.com/spf13/cobra"
)

func newPackCommand(app *App) *cobra.Command {
	var noValidate bool

	packCmd := &cobra.Command{
		Use:   "pack <dir> <file>",
		Short: "Pack a migration package into an archive",
		Long: `Pack every regular file under a directory into a .wpress archive.

The directory is checked first: it must contain ` + CmdStyle.Render("package.json") + ` and
` + CmdStyle.Render("database.sql") + `. Use --no-validate to pack any directory.

Examples:
  ai1wm pack ./site site.wpress
  ai1wm pack ./uploads uploads.wpress --no-validate`,
		Args: pathArgs("source", "target"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			return runPack(cmd, app, s, args[0], args[1], s.cfg.Migration.Validate && !noValidate)
		},
	}

	packCmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip the migration package check")

	return packCmd
}

func runPack(cmd *cobra.Command, app *App, s *session, sourceDir, targetFile string, validate bool) error {
	var (
		archive string
		err     error
	)
	if validate {
		archive, err = migration.New(sourceDir).PackTo(targetFile, s.archiveOptions()...)
	} else {
		archive, err = wpress.PackFile(sourceDir, targetFile, s.archiveOptions()...)
	}
	if err != nil {
		return app.fail(cmd, s, err)
	}

	fmt.Fprintf(app.stdout, "%s Packed %s into %s\n", successIcon, CmdStyle.Render(sourceDir), CmdStyle.Render(archive))
	return nil
}
