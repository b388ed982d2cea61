// SPDX-License-Identifier: MPL-2.0

package migration

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"ai1wm-cli/internal/issue"
	"ai1wm-cli/pkg/wpress"
)

const sampleInfo = `{
	"SiteURL": "https://example.com",
	"Plugins": ["akismet/akismet.php", "hello.php", "jetpack/jetpack.php"],
	"Stylesheet": "twentytwenty-child",
	"Template": "twentytwenty"
}`

// newPackageDir creates a package directory with the given root files.
func newPackageDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func validFiles() map[string]string {
	return map[string]string{
		InfoFileName:                       sampleInfo,
		DatabaseFileName:                   "CREATE TABLE wp_options();",
		"wp-content/themes/x/style.css":    "body{}",
		"wp-content/plugins/akismet/a.php": "<?php",
	}
}

func TestPackage_Paths(t *testing.T) {
	t.Parallel()

	p := New("/srv/site")
	if got := p.InfoFile(); got != filepath.Join("/srv/site", "package.json") {
		t.Errorf("InfoFile() = %q", got)
	}
	if got := p.DatabaseFile(); got != filepath.Join("/srv/site", "database.sql") {
		t.Errorf("DatabaseFile() = %q", got)
	}
	if got := p.LogFile(); got != filepath.Join("/srv/site", "migration.log") {
		t.Errorf("LogFile() = %q", got)
	}
}

func TestPackage_Details(t *testing.T) {
	t.Parallel()

	p := New(newPackageDir(t, validFiles()))
	d, err := p.Details()
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if d.Stylesheet != "twentytwenty-child" || d.Template != "twentytwenty" {
		t.Errorf("unexpected theme %q / %q", d.Stylesheet, d.Template)
	}
	if d.Raw["SiteURL"] != "https://example.com" {
		t.Errorf("Raw should keep undeclared keys, got %v", d.Raw)
	}

	again, err := p.Details()
	if err != nil || again != d {
		t.Error("Details() should be cached")
	}

	plugins, err := p.Plugins()
	if err != nil {
		t.Fatalf("Plugins() error = %v", err)
	}
	want := []string{"akismet", "hello.php", "jetpack"}
	if !slices.Equal(plugins, want) {
		t.Errorf("Plugins() = %v, want %v", plugins, want)
	}

	style, err := p.Stylesheet()
	if err != nil || style != "twentytwenty-child" {
		t.Errorf("Stylesheet() = %q, %v", style, err)
	}
	tmpl, err := p.Template()
	if err != nil || tmpl != "twentytwenty" {
		t.Errorf("Template() = %q, %v", tmpl, err)
	}
}

func TestPackage_DetailsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info *string
		want error
	}{
		{name: "missing file", want: fs.ErrNotExist},
		{name: "invalid json", info: ptr(`{"Plugins": [`)},
		{name: "plugins not a list", info: ptr(`{"Plugins": "akismet"}`)},
		{name: "template not a string", info: ptr(`{"Template": ["a"]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files := map[string]string{}
			if tt.info != nil {
				files[InfoFileName] = *tt.info
			}
			p := New(newPackageDir(t, files))

			_, err := p.Details()
			if !errors.Is(err, ErrInfoUnreadable) {
				t.Fatalf("Details() error = %v, want ErrInfoUnreadable", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Details() error = %v, want %v", err, tt.want)
			}
			if _, err := p.Plugins(); !errors.Is(err, ErrInfoUnreadable) {
				t.Errorf("Plugins() error = %v, want ErrInfoUnreadable", err)
			}
		})
	}
}

func TestPackage_OptionalKeys(t *testing.T) {
	t.Parallel()

	p := New(newPackageDir(t, map[string]string{InfoFileName: `{"Other": "x"}`}))

	if _, err := p.Plugins(); !errors.Is(err, ErrNoPlugins) {
		t.Errorf("Plugins() error = %v, want ErrNoPlugins", err)
	}
	style, err := p.Stylesheet()
	if err != nil || style != "" {
		t.Errorf("Stylesheet() = %q, %v; want empty", style, err)
	}
	tmpl, err := p.Template()
	if err != nil || tmpl != "" {
		t.Errorf("Template() = %q, %v; want empty", tmpl, err)
	}

	empty := New(newPackageDir(t, map[string]string{InfoFileName: `{"Plugins": []}`}))
	plugins, err := empty.Plugins()
	if err != nil || len(plugins) != 0 {
		t.Errorf("Plugins() = %v, %v; want empty list", plugins, err)
	}
}

func TestPackage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		valid   bool
		message string
	}{
		{
			name:  "complete package",
			setup: func(t *testing.T) string { return newPackageDir(t, validFiles()) },
			valid: true,
		},
		{
			name: "missing info file",
			setup: func(t *testing.T) string {
				return newPackageDir(t, map[string]string{DatabaseFileName: ""})
			},
			message: "package information file is missing",
		},
		{
			name: "missing database dump",
			setup: func(t *testing.T) string {
				return newPackageDir(t, map[string]string{InfoFileName: "{}"})
			},
			message: "database dump file is missing",
		},
		{
			name: "database dump is a directory",
			setup: func(t *testing.T) string {
				return newPackageDir(t, map[string]string{InfoFileName: "{}", "database.sql/x": ""})
			},
			message: "database dump file is missing",
		},
		{
			name: "directory missing",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			message: "package directory is missing",
		},
		{
			name: "base is a file",
			setup: func(t *testing.T) string {
				dir := newPackageDir(t, map[string]string{"f": ""})
				return filepath.Join(dir, "f")
			},
			message: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := New(tt.setup(t)).Validate()
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (issues: %v)", result.Valid, tt.valid, result.Issues)
			}
			if tt.valid {
				if len(result.Issues) != 0 {
					t.Errorf("expected no issues, got %v", result.Issues)
				}
				return
			}
			if !strings.Contains(result.Issues[0].Message, tt.message) {
				t.Errorf("first issue = %q, want it to contain %q", result.Issues[0].Message, tt.message)
			}
		})
	}
}

func TestPackage_ValidateReportsAllIssues(t *testing.T) {
	t.Parallel()

	result, err := New(t.TempDir()).Validate()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", result.Issues)
	}
	if result.Issues[0].Type != IssueTypeStructure {
		t.Errorf("Type = %q, want %q", result.Issues[0].Type, IssueTypeStructure)
	}
	if !strings.HasPrefix(result.Issues[0].Error(), "[structure] ") {
		t.Errorf("Error() = %q", result.Issues[0].Error())
	}
}

func TestPackage_ManifestProblemsDoNotBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
	}{
		{name: "plugins is a string", manifest: `{"Plugins":"akismet/akismet.php"}`},
		{name: "not json", manifest: "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(newPackageDir(t, map[string]string{
				InfoFileName:     tt.manifest,
				DatabaseFileName: "CREATE TABLE wp_options();",
			}))

			result, err := p.Validate()
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !result.Valid || len(result.Issues) != 0 {
				t.Fatalf("Valid = %v issues = %v, want valid", result.Valid, result.Issues)
			}
			if len(result.Warnings) != 1 || result.Warnings[0].Type != IssueTypeManifest {
				t.Fatalf("Warnings = %v, want one manifest warning", result.Warnings)
			}
			if !strings.Contains(result.Warnings[0].Message, "error reading package information file") {
				t.Errorf("warning = %q", result.Warnings[0].Message)
			}

			if err := p.Check(); err != nil {
				t.Errorf("Check() = %v, want nil", err)
			}

			archive := filepath.Join(t.TempDir(), "site.wpress")
			if _, err := p.PackTo(archive); err != nil {
				t.Fatalf("PackTo() error = %v", err)
			}
			out := New(filepath.Join(t.TempDir(), "out"))
			if _, err := out.UnpackFrom(archive); err != nil {
				t.Fatalf("UnpackFrom() error = %v", err)
			}
			got, err := os.ReadFile(out.InfoFile())
			if err != nil || string(got) != tt.manifest {
				t.Errorf("restored manifest = %q, %v", got, err)
			}
		})
	}
}

func TestPackage_Check(t *testing.T) {
	t.Parallel()

	if err := New(newPackageDir(t, validFiles())).Check(); err != nil {
		t.Fatalf("Check() on valid package = %v", err)
	}

	dir := newPackageDir(t, map[string]string{InfoFileName: "{}"})
	err := New(dir).Check()
	if !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("Check() = %v, want ErrInvalidPackage", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Check() should return an ActionableError, got %T", err)
	}
	if ae.Issue != issue.PackageInvalidId || ae.Resource != dir {
		t.Errorf("unexpected context: issue %d resource %q", ae.Issue, ae.Resource)
	}
	if !strings.Contains(err.Error(), "database dump file is missing: "+filepath.Join(dir, DatabaseFileName)) {
		t.Errorf("Check() message = %q", err.Error())
	}
}

func TestPackage_PackToUnpackFrom(t *testing.T) {
	t.Parallel()

	src := New(newPackageDir(t, validFiles()))
	archive := filepath.Join(t.TempDir(), "site.wpress")

	got, err := src.PackTo(archive, wpress.WithChunkSize(1024))
	if err != nil {
		t.Fatalf("PackTo() error = %v", err)
	}
	if got != archive {
		t.Errorf("PackTo() = %q, want %q", got, archive)
	}

	dst := New(filepath.Join(t.TempDir(), "restored"))
	p, err := dst.UnpackFrom(archive)
	if err != nil {
		t.Fatalf("UnpackFrom() error = %v", err)
	}
	if p != dst {
		t.Error("UnpackFrom() should return the receiver")
	}

	plugins, err := p.Plugins()
	if err != nil || !slices.Equal(plugins, []string{"akismet", "hello.php", "jetpack"}) {
		t.Errorf("Plugins() after unpack = %v, %v", plugins, err)
	}
	data, err := os.ReadFile(filepath.Join(dst.BaseDir, "wp-content", "themes", "x", "style.css"))
	if err != nil || string(data) != "body{}" {
		t.Errorf("style.css = %q, %v", data, err)
	}
}

func TestPackage_PackToInvalid(t *testing.T) {
	t.Parallel()

	archive := filepath.Join(t.TempDir(), "site.wpress")
	_, err := New(newPackageDir(t, map[string]string{DatabaseFileName: ""})).PackTo(archive)
	if !errors.Is(err, ErrInvalidPackage) {
		t.Fatalf("PackTo() = %v, want ErrInvalidPackage", err)
	}
	if _, statErr := os.Stat(archive); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("no archive should be written for an invalid package")
	}
}

func TestPackage_UnpackFromErrors(t *testing.T) {
	t.Parallel()

	t.Run("source is a directory", func(t *testing.T) {
		t.Parallel()

		_, err := New(t.TempDir()).UnpackFrom(t.TempDir())
		if !errors.Is(err, ErrNotAFile) {
			t.Fatalf("UnpackFrom() = %v, want ErrNotAFile", err)
		}
		var ae *issue.ActionableError
		if !errors.As(err, &ae) || ae.Issue != issue.SourceNotSupportedId {
			t.Errorf("expected SourceNotSupportedId context, got %v", err)
		}
	})

	t.Run("source missing", func(t *testing.T) {
		t.Parallel()

		_, err := New(t.TempDir()).UnpackFrom(filepath.Join(t.TempDir(), "missing.wpress"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("UnpackFrom() = %v, want fs.ErrNotExist", err)
		}
		var ae *issue.ActionableError
		if !errors.As(err, &ae) || ae.Issue != issue.ArchiveNotFoundId {
			t.Errorf("expected ArchiveNotFoundId context, got %v", err)
		}
	})

	t.Run("archive without database dump", func(t *testing.T) {
		t.Parallel()

		srcDir := newPackageDir(t, map[string]string{InfoFileName: "{}"})
		archive := filepath.Join(t.TempDir(), "partial.wpress")
		if _, err := wpress.PackFile(srcDir, archive); err != nil {
			t.Fatal(err)
		}

		dst := New(filepath.Join(t.TempDir(), "out"))
		_, err := dst.UnpackFrom(archive)
		if !errors.Is(err, ErrInvalidPackage) {
			t.Fatalf("UnpackFrom() = %v, want ErrInvalidPackage", err)
		}
		if _, err := os.Stat(dst.InfoFile()); err != nil {
			t.Errorf("extracted files should remain: %v", err)
		}
	})

	t.Run("truncated archive", func(t *testing.T) {
		t.Parallel()

		archive := filepath.Join(t.TempDir(), "broken.wpress")
		if err := os.WriteFile(archive, make([]byte, 100), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := New(t.TempDir()).UnpackFrom(archive)
		if !errors.Is(err, wpress.ErrTruncated) {
			t.Fatalf("UnpackFrom() = %v, want ErrTruncated", err)
		}
	})
}

func TestPackage_Summarize(t *testing.T) {
	t.Parallel()

	files := validFiles()
	files[LogFileName] = "done"
	s, err := New(newPackageDir(t, files)).Summarize()
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !s.HasInfo || !s.HasDatabase || !s.HasLog {
		t.Errorf("unexpected presence flags %+v", s)
	}
	if len(s.Plugins) != 3 || s.Template != "twentytwenty" || !s.Validation.Valid {
		t.Errorf("unexpected summary %+v", s)
	}

	empty, err := New(t.TempDir()).Summarize()
	if err != nil {
		t.Fatal(err)
	}
	if empty.HasInfo || empty.Validation.Valid || empty.Plugins == nil {
		t.Errorf("unexpected summary for empty dir %+v", empty)
	}
}

func ptr(s string) *string { return &s }
