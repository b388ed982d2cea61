// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// SiteFiles is a minimal migration package: the two required files plus a
// small wp-content tree.
var SiteFiles = map[string]string{
	"package.json": `{"Plugins":["akismet/akismet.php","hello.php"],"Stylesheet":"twentytwenty","Template":"twentytwenty"}`,
	"database.sql": "CREATE TABLE wp_options (option_name varchar(191));\n",

	"wp-content/plugins/akismet/akismet.php":   "<?php\n// Akismet\n",
	"wp-content/plugins/hello.php":             "<?php\n// Hello Dolly\n",
	"wp-content/themes/twentytwenty/style.css": "/* Theme Name: Twenty Twenty */\n",
}

// WriteTree creates files under dir from a map of slash-separated relative
// paths to contents.
func WriteTree(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// ReadTree returns every regular file under dir keyed by slash-separated
// relative path.
func ReadTree(t testing.TB, dir string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", dir, err)
	}
	return files
}

// NewSite writes SiteFiles into a fresh temporary directory and returns it.
func NewSite(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteTree(t, dir, SiteFiles)
	return dir
}
