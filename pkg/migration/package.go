// SPDX-License-Identifier: MPL-2.0

package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ai1wm-cli/internal/issue"
	"ai1wm-cli/pkg/wpress"
)

const (
	// InfoFileName is the package information file.
	InfoFileName = "package.json"
	// DatabaseFileName is the database dump.
	DatabaseFileName = "database.sql"
	// LogFileName is the migration log.
	LogFileName = "migration.log"
)

// ErrNotAFile is returned by UnpackFrom when the source is not a regular file.
var ErrNotAFile = errors.New("not a file")

// Package is an unpacked migration package rooted at BaseDir.
//
// Details and Plugins are read once and cached; a Package is not safe for
// concurrent use.
type Package struct {
	BaseDir string

	details *Details
	plugins []string
}

// New returns a Package rooted at baseDir. The directory need not exist yet.
func New(baseDir string) *Package {
	return &Package{BaseDir: baseDir}
}

// InfoFile returns the path of package.json.
func (p *Package) InfoFile() string {
	return filepath.Join(p.BaseDir, InfoFileName)
}

// DatabaseFile returns the path of database.sql.
func (p *Package) DatabaseFile() string {
	return filepath.Join(p.BaseDir, DatabaseFileName)
}

// LogFile returns the path of migration.log.
func (p *Package) LogFile() string {
	return filepath.Join(p.BaseDir, LogFileName)
}

// UnpackFrom unpacks the archive at sourceFile into BaseDir and then checks
// the result with Check.
func (p *Package) UnpackFrom(sourceFile string, opts ...wpress.Option) (*Package, error) {
	info, err := os.Stat(sourceFile)
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("%w: %s", ErrNotAFile, sourceFile)
	}
	if err != nil {
		id := issue.SourceNotSupportedId
		if errors.Is(err, fs.ErrNotExist) {
			id = issue.ArchiveNotFoundId
		}
		return nil, issue.NewErrorContext().
			WithOperation("unpack package").
			WithResource(sourceFile).
			WithIssue(id).
			Wrap(err).
			BuildError()
	}

	if _, err := wpress.UnpackFile(sourceFile, p.BaseDir, opts...); err != nil {
		return nil, err
	}
	p.details, p.plugins = nil, nil

	if err := p.Check(); err != nil {
		return nil, err
	}
	return p, nil
}

// PackTo checks the package and packs BaseDir into targetFile. It returns the
// absolute path of the archive.
func (p *Package) PackTo(targetFile string, opts ...wpress.Option) (string, error) {
	if err := p.Check(); err != nil {
		return "", err
	}
	return wpress.PackFile(p.BaseDir, targetFile, opts...)
}
