// SPDX-License-Identifier: MPL-2.0

package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"ai1wm-cli/internal/issue"
)

// ErrInvalidPackage is wrapped by the error returned from Check.
var ErrInvalidPackage = errors.New("invalid migration package")

const (
	// IssueTypeStructure covers missing or misplaced files.
	IssueTypeStructure IssueType = "structure"
	// IssueTypeManifest covers a package.json that cannot be decoded. These
	// are recorded as warnings and never invalidate the package.
	IssueTypeManifest IssueType = "manifest"
)

type (
	// IssueType categorizes a ValidationIssue.
	IssueType string

	// ValidationIssue is a single problem found by Validate.
	ValidationIssue struct {
		Type    IssueType `json:"type" yaml:"type"`
		Message string    `json:"message" yaml:"message"`
		// Path is the file involved, if any.
		Path string `json:"path,omitempty" yaml:"path,omitempty"`
	}

	// ValidationResult collects every issue found in a package. Only Issues
	// affect Valid.
	ValidationResult struct {
		Valid    bool              `json:"valid" yaml:"valid"`
		BaseDir  string            `json:"base_dir" yaml:"base_dir"`
		Issues   []ValidationIssue `json:"issues" yaml:"issues"`
		Warnings []ValidationIssue `json:"warnings" yaml:"warnings"`
	}
)

// Error implements the error interface.
func (v ValidationIssue) Error() string {
	return fmt.Sprintf("[%s] %s", v.Type, v.Message)
}

// AddIssue records an issue and marks the result invalid.
func (r *ValidationResult) AddIssue(issueType IssueType, message, path string) {
	r.Issues = append(r.Issues, ValidationIssue{
		Type:    issueType,
		Message: message,
		Path:    path,
	})
	r.Valid = false
}

// AddWarning records a problem that does not invalidate the package.
func (r *ValidationResult) AddWarning(issueType IssueType, message, path string) {
	r.Warnings = append(r.Warnings, ValidationIssue{
		Type:    issueType,
		Message: message,
		Path:    path,
	})
}

// Validate inspects the package layout. Missing files are reported as
// issues. A package.json that exists but does not decode is recorded as a
// warning. An error is returned only if the directory cannot be inspected at
// all.
func (p *Package) Validate() (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:    true,
		BaseDir:  p.BaseDir,
		Issues:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}

	info, err := os.Stat(p.BaseDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		result.AddIssue(IssueTypeStructure, fmt.Sprintf("package directory is missing: %s", p.BaseDir), p.BaseDir)
		return result, nil
	case err != nil:
		return nil, fmt.Errorf("failed to stat package directory: %w", err)
	case !info.IsDir():
		result.AddIssue(IssueTypeStructure, fmt.Sprintf("not a directory: %s", p.BaseDir), p.BaseDir)
		return result, nil
	}

	infoOK := checkFile(result, p.InfoFile(), "package information file")
	checkFile(result, p.DatabaseFile(), "database dump file")

	if infoOK {
		if _, err := p.Details(); err != nil {
			result.AddWarning(IssueTypeManifest, err.Error(), p.InfoFile())
		}
	}
	return result, nil
}

// checkFile adds an issue unless path is a regular file.
func checkFile(result *ValidationResult, path, what string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		result.AddIssue(IssueTypeStructure, fmt.Sprintf("%s is missing: %s", what, path), path)
		return false
	}
	return true
}

// Check validates the package and returns the first issue as an error
// wrapping ErrInvalidPackage.
func (p *Package) Check() error {
	result, err := p.Validate()
	if err != nil {
		return err
	}
	if result.Valid {
		return nil
	}

	first := result.Issues[0]
	return issue.NewErrorContext().
		WithOperation("validate package").
		WithResource(p.BaseDir).
		WithSuggestion("Point at the directory that contains package.json and database.sql").
		WithIssue(issue.PackageInvalidId).
		Wrap(fmt.Errorf("%w: %s", ErrInvalidPackage, first.Message)).
		BuildError()
}
