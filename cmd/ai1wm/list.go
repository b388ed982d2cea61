// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"time"

	"ai1wm-cli/pkg/wpress"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the entries of an archive",
		Long: `Print one line per archive entry: content size, modification time
(UTC) and path. Nothing is extracted.

Examples:
  ai1wm list site.wpress`,
		Args: pathArgs("archive"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return app.fail(cmd, nil, err)
			}
			if err := runList(app, args[0]); err != nil {
				return app.fail(cmd, s, err)
			}
			return nil
		},
	}
}

func runList(app *App, archive string) error {
	f, err := os.Open(archive) //nolint:gosec // user-provided archive path is intentional
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		files int
		total int64
	)
	err = wpress.List(f, func(h wpress.Header) error {
		files++
		total += h.Size()
		_, werr := fmt.Fprintf(app.stdout, "%12d  %s  %s\n",
			h.Size(),
			h.ModTime().UTC().Format(time.DateTime),
			CmdStyle.Render(h.Path()+"/"+h.Name()))
		return werr
	})
	if err != nil {
		return fmt.Errorf("failed to list archive %s: %w", archive, err)
	}

	fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("%d entries, %d bytes", files, total)))
	return nil
}
