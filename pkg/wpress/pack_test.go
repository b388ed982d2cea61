// SPDX-License-Identifier: MPL-2.0

package wpress

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under dir from a map of slash-separated relative
// paths to contents, setting every mtime to mtime.
func writeTree(t *testing.T, dir string, files map[string]string, mtime time.Time) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		require.NoError(t, os.Chtimes(p, mtime, mtime))
	}
}

// readTree returns every regular file under dir keyed by slash-separated
// relative path.
func readTree(t *testing.T, dir string) map[string]string {
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
	require.NoError(t, err)
	return files
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	t.Parallel()

	mtime := time.Unix(1700000000, 0)
	files := map[string]string{
		"package.json":                           `{"Plugins":["akismet/akismet.php"]}`,
		"database.sql":                           "CREATE TABLE wp_posts();",
		"wp-content/empty.txt":                   "",
		"wp-content/plugins/akismet/akismet.php": "<?php // akismet",
		"wp-content/uploads/2024/01/big.bin":     strings.Repeat("0123456789abcdef", 5000),
	}
	src := t.TempDir()
	writeTree(t, src, files, mtime)

	var stream bytes.Buffer
	require.NoError(t, Pack(&stream, src, WithChunkSize(1024)))

	dst := filepath.Join(t.TempDir(), "restore")
	got, err := Unpack(bytes.NewReader(stream.Bytes()), dst, WithChunkSize(777), WithPreserveTimes(true))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	assert.Equal(t, files, readTree(t, dst))

	info, err := os.Stat(filepath.Join(dst, "wp-content", "plugins", "akismet", "akismet.php"))
	require.NoError(t, err)
	assert.Equal(t, mtime.Unix(), info.ModTime().Unix())
}

func TestPack_EntryPaths(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"root.txt":  "r",
		"a/b/c.txt": "c",
	}, time.Unix(42, 0))

	var stream bytes.Buffer
	require.NoError(t, Pack(&stream, src))

	var headers []Header
	require.NoError(t, List(bytes.NewReader(stream.Bytes()), func(h Header) error {
		headers = append(headers, h)
		return nil
	}))

	require.Len(t, headers, 2)
	assert.Equal(t, "a/b", headers[0].Path())
	assert.Equal(t, "c.txt", headers[0].Name())
	assert.Equal(t, int64(1), headers[0].Size())
	assert.Equal(t, int64(42), headers[0].Time())
	assert.Equal(t, ".", headers[1].Path())
	assert.Equal(t, "root.txt", headers[1].Name())
}

func TestPackUnpack_EmptyTree(t *testing.T) {
	t.Parallel()

	var stream bytes.Buffer
	require.NoError(t, Pack(&stream, t.TempDir()))
	assert.Equal(t, make([]byte, HeaderSize), stream.Bytes())

	dst := filepath.Join(t.TempDir(), "nested", "target")
	_, err := Unpack(bytes.NewReader(stream.Bytes()), dst)
	require.NoError(t, err)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPack_Symlinks(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	outside := t.TempDir()
	writeTree(t, src, map[string]string{"real.txt": "data", "sub/inner.txt": "x"}, time.Unix(1, 0))
	writeTree(t, outside, map[string]string{"shared.txt": "shared content"}, time.Unix(7, 0))

	links := map[string]string{
		"link.txt":   filepath.Join(src, "real.txt"),
		"shared.txt": filepath.Join(outside, "shared.txt"),
		"dirlink":    filepath.Join(src, "sub"),
		"broken":     filepath.Join(src, "missing.txt"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(src, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	var stream bytes.Buffer
	require.NoError(t, Pack(&stream, src))

	var entries []string
	require.NoError(t, List(bytes.NewReader(stream.Bytes()), func(h Header) error {
		entries = append(entries, h.Path()+"/"+h.Name())
		return nil
	}))
	assert.Equal(t, []string{"./link.txt", "./real.txt", "./shared.txt", "sub/inner.txt"}, entries)

	dst := t.TempDir()
	_, err := Unpack(bytes.NewReader(stream.Bytes()), dst, WithPreserveTimes(true))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"link.txt":      "data",
		"real.txt":      "data",
		"shared.txt":    "shared content",
		"sub/inner.txt": "x",
	}, readTree(t, dst))

	info, err := os.Lstat(filepath.Join(dst, "link.txt"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "link should be restored as a regular file")
	assert.Equal(t, int64(1), info.ModTime().Unix())
}

func TestPack_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "nope")
		err := Pack(&bytes.Buffer{}, missing)
		var pe *PackError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, missing, pe.Source)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("source is a file", func(t *testing.T) {
		t.Parallel()

		f := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(f, nil, 0o644))
		err := Pack(&bytes.Buffer{}, f)
		var pe *PackError
		require.ErrorAs(t, err, &pe)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("time before epoch", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writeTree(t, src, map[string]string{"old.txt": "x"}, time.Unix(-3600, 0))
		err := Pack(&bytes.Buffer{}, src)
		require.ErrorIs(t, err, ErrFormat)
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "time", fe.Field)
	})

	t.Run("name not valid utf-8", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		if err := os.WriteFile(filepath.Join(src, "bad\xff.txt"), []byte("x"), 0o644); err != nil {
			t.Skipf("filesystem rejects non-UTF-8 names: %v", err)
		}
		var stream bytes.Buffer
		err := Pack(&stream, src)
		var pe *PackError
		require.ErrorAs(t, err, &pe)
		require.ErrorIs(t, err, ErrFormat)
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "name", fe.Field)
		assert.Zero(t, stream.Len(), "no header should be written for the rejected file")
	})

	t.Run("directory not valid utf-8", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		dir := filepath.Join(src, "up\xffloads")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Skipf("filesystem rejects non-UTF-8 names: %v", err)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
		err := Pack(&bytes.Buffer{}, src)
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "path", fe.Field)
	})

	t.Run("unwritable stream", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writeTree(t, src, map[string]string{"a": "a"}, time.Unix(1, 0))
		err := Pack(failingWriter{}, src)
		require.ErrorIs(t, err, errBrokenPipe)
	})
}

var errBrokenPipe = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBrokenPipe }

func TestPackFile_SkipsOwnArchive(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.txt": "a"}, time.Unix(1, 0))
	target := filepath.Join(src, "site.wpress")

	got, err := PackFile(src, target)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()

	var names []string
	require.NoError(t, List(f, func(h Header) error {
		names = append(names, h.Name())
		return nil
	}))
	assert.Equal(t, []string{"a.txt"}, names)
}

func TestPack_Progress(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{"a": "12", "b/c": "345"}, time.Unix(1, 0))

	var events []ProgressEvent
	require.NoError(t, Pack(&bytes.Buffer{}, src, WithProgress(func(e ProgressEvent) {
		events = append(events, e)
	})))

	require.Len(t, events, 2)
	assert.Equal(t, StagePacking, events[1].Stage)
	assert.Equal(t, 2, events[1].FilesDone)
	assert.Equal(t, uint64(5), events[1].BytesDone)
	assert.Equal(t, "packing", StagePacking.String())
}
