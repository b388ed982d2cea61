// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"ai1wm-cli/internal/config"
	"ai1wm-cli/internal/issue"
	"ai1wm-cli/pkg/migration"
	"ai1wm-cli/pkg/types"
	"ai1wm-cli/pkg/wpress"

	"github.com/spf13/cobra"
)

// defaultGlamourStyle is used when no configuration could be loaded.
const defaultGlamourStyle = "dark"

// classifyError maps a failure to an issue catalog ID and a process exit
// code. A zero ID means there is no catalog entry for the failure.
func classifyError(err error) (issue.Id, types.ExitCode) {
	var ae *issue.ActionableError
	var ee *wpress.ExtractError

	switch {
	case errors.Is(err, wpress.ErrFormat), errors.Is(err, wpress.ErrTruncated):
		return issue.ArchiveCorruptId, types.ExitCorruptArchive
	case errors.Is(err, migration.ErrInvalidPackage):
		return issue.PackageInvalidId, types.ExitInvalidPackage
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId, types.ExitFailure
	case errors.As(err, &ae) && ae.Issue != 0:
		return ae.Issue, types.ExitFailure
	case errors.Is(err, fs.ErrPermission) && errors.As(err, &ee):
		return issue.TargetNotWritableId, types.ExitFailure
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId, types.ExitFailure
	case errors.Is(err, fs.ErrNotExist):
		return issue.ArchiveNotFoundId, types.ExitFailure
	default:
		return 0, types.ExitFailure
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderError writes the styled error to w, followed by the catalog entry
// for the failure in verbose mode, and returns the exit code.
func renderError(w io.Writer, err error, verbose bool, glamourStyle string) types.ExitCode {
	issueID, code := classifyError(err)
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))

	if !verbose || issueID == 0 {
		return code
	}
	if entry := issue.Get(issueID); entry != nil {
		if rendered, renderErr := entry.Render(glamourStyle); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
	return code
}

// fail renders err on the App's stderr and returns the ExitError that
// carries its exit code out of RunE.
func (a *App) fail(cmd *cobra.Command, s *session, err error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	verbose, style := a.verbose, defaultGlamourStyle
	if s != nil {
		verbose, style = s.verbose, s.glamourStyle()
	}
	return &ExitError{Code: renderError(a.stderr, err, verbose, style)}
}
