// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"ai1wm-cli/pkg/migration"
	"ai1wm-cli/pkg/wpress"

	"github.com/spf13/cobra"
)

func newUnpackCommand(app *App) *cobra.Command {
	var (
		noValidate    bool
		preserveTimes bool
	)

	unpackCmd := &cobra.Command{
		Use:   "unpack <file> <dir>",
		Short: "Unpack an archive into a directory",
		Long: `Extract every entry of a .wpress archive below a directory.

The directory is created if needed and existing files are overwritten.
Entries that would land outside the directory are rejected. If the stream
is damaged, files extracted before the damaged entry are kept.

After extraction the directory is checked as a migration package; use
--no-validate for archives that are not site backups.

Examples:
  ai1wm unpack site.wpress ./site
  ai1wm unpack site.wpress ./site --preserve-times`,
		Args: pathArgs("archive", "target"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			if cmd.Flags().Changed("preserve-times") {
				s.cfg.Archive.PreserveTimes = preserveTimes
			}
			return runUnpack(cmd, app, s, args[0], args[1], s.cfg.Migration.Validate && !noValidate)
		},
	}

	unpackCmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip the migration package check")
	unpackCmd.Flags().BoolVar(&preserveTimes, "preserve-times", false, "restore file modification times from the archive")

	return unpackCmd
}

func runUnpack(cmd *cobra.Command, app *App, s *session, sourceFile, targetDir string, validate bool) error {
	var (
		dir string
		err error
	)
	if validate {
		var pkg *migration.Package
		pkg, err = migration.New(targetDir).UnpackFrom(sourceFile, s.archiveOptions()...)
		if err == nil {
			dir = pkg.BaseDir
		}
	} else {
		dir, err = wpress.UnpackFile(sourceFile, targetDir, s.archiveOptions()...)
	}
	if err != nil {
		return app.fail(cmd, s, err)
	}

	fmt.Fprintf(app.stdout, "%s Unpacked %s into %s\n", successIcon, CmdStyle.Render(sourceFile), CmdStyle.Render(dir))
	return nil
}
