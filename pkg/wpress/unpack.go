// SPDX-License-Identifier: MPL-2.0

package wpress

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Unpack reads an archive stream from r and recreates its files under
// targetDir, which is created if missing. It returns the absolute target
// directory.
//
// Entries are extracted in stream order. Directories are created as needed;
// an existing directory is reused. Each file is truncated and receives
// exactly the number of bytes its header declares. Entries that would land
// outside targetDir are rejected.
//
// Any failure is returned as an *UnpackError. Files extracted before the
// failure stay on disk.
func Unpack(r io.Reader, targetDir string, opts ...Option) (string, error) {
	o := newOptions(opts)
	target, err := filepath.Abs(targetDir)
	if err != nil {
		return "", &UnpackError{Source: o.sourceName, Err: err}
	}
	if err := unpack(r, target, &o); err != nil {
		return "", &UnpackError{Source: o.sourceName, Err: err}
	}
	return target, nil
}

// UnpackFile unpacks the archive at sourceFile into targetDir and returns
// the absolute target directory.
func UnpackFile(sourceFile, targetDir string, opts ...Option) (string, error) {
	source, err := filepath.Abs(sourceFile)
	if err != nil {
		return "", &UnpackError{Source: sourceFile, Err: err}
	}
	o := newOptions(append([]Option{WithSourceName(source)}, opts...))
	target, err := filepath.Abs(targetDir)
	if err != nil {
		return "", &UnpackError{Source: o.sourceName, Err: err}
	}

	f, err := os.Open(source) //nolint:gosec // user-provided archive path is intentional
	if err != nil {
		return "", &UnpackError{Source: o.sourceName, Err: err}
	}
	defer f.Close()

	if err := unpack(f, target, &o); err != nil {
		return "", &UnpackError{Source: o.sourceName, Err: err}
	}
	return target, nil
}

func unpack(r io.Reader, target string, o *options) error {
	if err := makeDirs(target); err != nil {
		return err
	}

	tr := NewReader(r)
	buf := make([]byte, o.chunkSize)
	var (
		files int
		total uint64
	)
	for {
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		dir := filepath.Join(target, filepath.FromSlash(h.Path()))
		dest := filepath.Join(dir, h.Name())
		if !within(target, dest) {
			return newFormatError(pathSlot.name, "entry escapes target directory: %s/%s", h.Path(), h.Name())
		}
		if err := makeDirs(dir); err != nil {
			return err
		}
		if err := extractFile(tr, dest, h, buf, o.preserveTimes); err != nil {
			return err
		}

		files++
		total += uint64(h.Size()) //nolint:gosec // Size is validated non-negative
		entry := h.Path() + "/" + h.Name()
		o.logger.Debug("extracted entry", "path", entry, "size", h.Size())
		o.report(StageUnpacking, entry, total, files)
	}

	o.logger.Info("archive extracted", "dir", target, "files", files, "bytes", total)
	return nil
}

// makeDirs creates path and any missing parents. An existing entry is not an
// error; whether it is actually a directory is left to later file creation.
func makeDirs(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("error creating a directory: %s: %w", path, err)
	}
	return nil
}

// extractFile writes exactly h.Size() bytes from r to dest.
func extractFile(r io.Reader, dest string, h Header, buf []byte, preserveTimes bool) error {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // dest is confined to the target directory
	if err != nil {
		return &ExtractError{Path: dest, Err: err}
	}
	_, err = copyN(f, r, h.Size(), buf)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &ExtractError{Path: dest, Err: err}
	}

	if preserveTimes {
		mt := h.ModTime()
		if err := os.Chtimes(dest, mt, mt); err != nil {
			return &ExtractError{Path: dest, Err: err}
		}
	}
	return nil
}

// within reports whether path is root or lies beneath it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
