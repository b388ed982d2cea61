// SPDX-License-Identifier: MPL-2.0

package wpress

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Pack writes every regular file under sourceDir to w as an archive stream,
// followed by the sentinel header.
//
// Files are visited in lexical order. Each entry's path is the containing
// directory relative to sourceDir using forward slashes, "." for files
// directly under sourceDir. A symbolic link to a regular file is stored
// under the link's name with the target's content and metadata. Links to
// directories, broken links, and other non-regular files are skipped. Empty
// directories are not recorded.
//
// Any failure is returned as a *PackError. Output already written is left as
// is.
func Pack(w io.Writer, sourceDir string, opts ...Option) error {
	o := newOptions(opts)
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return &PackError{Source: sourceDir, Err: err}
	}
	if err := pack(w, root, &o, ""); err != nil {
		return &PackError{Source: root, Err: err}
	}
	return nil
}

// PackFile packs sourceDir into a newly created (or truncated) targetFile and
// returns the absolute path of targetFile. If targetFile lies inside
// sourceDir it is left out of the archive.
func PackFile(sourceDir, targetFile string, opts ...Option) (string, error) {
	o := newOptions(opts)
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", &PackError{Source: sourceDir, Err: err}
	}
	target, err := filepath.Abs(targetFile)
	if err != nil {
		return "", &PackError{Source: root, Err: err}
	}

	f, err := os.Create(target) //nolint:gosec // user-provided archive path is intentional
	if err != nil {
		return "", &PackError{Source: root, Err: err}
	}
	err = pack(f, root, &o, target)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", &PackError{Source: root, Err: err}
	}
	return target, nil
}

// pack walks root and writes the stream. A non-empty skip names a file to
// leave out, used when the archive is written inside the tree being packed.
func pack(w io.Writer, root string, o *options, skip string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	tw := NewWriter(w)
	buf := make([]byte, o.chunkSize)
	var (
		files int
		total uint64
	)

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if skip != "" && p == skip {
			return nil
		}
		switch {
		case d.Type().IsRegular():
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Stat(p)
			if err != nil {
				o.logger.Warn("skipped broken symlink", "path", p, "err", err)
				return nil
			}
			if !target.Mode().IsRegular() {
				o.logger.Debug("skipped symlink to non-regular file", "path", p, "type", target.Mode().Type().String())
				return nil
			}
		default:
			o.logger.Debug("skipped non-regular file", "path", p, "type", d.Type().String())
			return nil
		}

		h, err := archiveFile(tw, root, p, buf)
		if err != nil {
			return err
		}
		files++
		total += uint64(h.Size()) //nolint:gosec // Size is validated non-negative
		entry := h.Path() + "/" + h.Name()
		o.logger.Debug("packed entry", "path", entry, "size", h.Size())
		o.report(StagePacking, entry, total, files)
		return nil
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return err
	}
	o.logger.Info("archive written", "dir", root, "files", files, "bytes", total)
	return nil
}

// archiveFile writes the header and content of the file at p, following p
// if it is a symbolic link.
func archiveFile(tw *Writer, root, p string, buf []byte) (Header, error) {
	f, err := os.Open(p) //nolint:gosec // path comes from walking the source tree
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Header{}, err
	}

	rel, err := filepath.Rel(root, filepath.Dir(p))
	if err != nil {
		return Header{}, err
	}
	h, err := NewHeader(filepath.ToSlash(rel), filepath.Base(p), info.Size(), info.ModTime().Unix())
	if err != nil {
		return Header{}, fmt.Errorf("%s: %w", p, err)
	}
	if err := tw.WriteHeader(h); err != nil {
		return Header{}, fmt.Errorf("%s: %w", p, err)
	}
	if _, err := copyN(tw, f, h.Size(), buf); err != nil {
		return Header{}, fmt.Errorf("read %s: %w", p, err)
	}
	return h, nil
}
