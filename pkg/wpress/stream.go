// SPDX-License-Identifier: MPL-2.0

package wpress

import (
	"errors"
	"fmt"
	"io"
)

// Writer writes an archive stream entry by entry.
//
// Call WriteHeader to begin an entry, then Write exactly Size bytes of
// content. Close terminates the stream with the sentinel header; it does not
// close the underlying writer.
type Writer struct {
	w         io.Writer
	remaining int64
	closed    bool
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes h and prepares the Writer to accept h.Size() bytes of
// content. The previous entry must be complete. The sentinel is written by
// Close, not by WriteHeader.
func (tw *Writer) WriteHeader(h Header) error {
	if tw.closed {
		return ErrWriteAfterClose
	}
	if tw.remaining > 0 {
		return fmt.Errorf("previous entry missing %d bytes: %w", tw.remaining, io.ErrShortWrite)
	}
	if h.IsEOF() {
		return newFormatError("", "sentinel header is written by Close")
	}
	rec, err := EncodeHeader(h)
	if err != nil {
		return err
	}
	if _, err := tw.w.Write(rec); err != nil {
		return err
	}
	tw.remaining = h.Size()
	return nil
}

// Write writes content for the current entry. Writing past the declared size
// writes nothing beyond it and returns ErrWriteTooLong.
func (tw *Writer) Write(p []byte) (int, error) {
	if tw.closed {
		return 0, ErrWriteAfterClose
	}
	var overflow bool
	if int64(len(p)) > tw.remaining {
		p = p[:tw.remaining]
		overflow = true
	}
	n, err := tw.w.Write(p)
	tw.remaining -= int64(n)
	if err == nil && overflow {
		err = ErrWriteTooLong
	}
	return n, err
}

// Close writes the sentinel header. It fails if the current entry is
// incomplete. Calling Close more than once is a no-op.
func (tw *Writer) Close() error {
	if tw.closed {
		return nil
	}
	if tw.remaining > 0 {
		return fmt.Errorf("entry missing %d bytes: %w", tw.remaining, io.ErrShortWrite)
	}
	rec, err := EncodeHeader(EOF)
	if err != nil {
		return err
	}
	if _, err := tw.w.Write(rec); err != nil {
		return err
	}
	tw.closed = true
	return nil
}

// Reader reads an archive stream entry by entry.
//
// Next advances to the next entry; Read then returns that entry's content.
type Reader struct {
	r         io.Reader
	size      int64
	remaining int64
	done      bool
	rec       []byte
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, rec: make([]byte, HeaderSize)}
}

// Next advances to the next entry, discarding any unread content of the
// current one. It returns io.EOF once the sentinel header has been read.
// A stream that ends before a complete header yields a TruncationError.
func (tr *Reader) Next() (Header, error) {
	if tr.done {
		return EOF, io.EOF
	}
	if tr.remaining > 0 {
		n, err := io.CopyN(io.Discard, tr.r, tr.remaining)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Header{}, &TruncationError{Want: tr.size, Got: tr.size - tr.remaining + n}
			}
			return Header{}, err
		}
		tr.remaining = 0
	}

	n, err := io.ReadFull(tr.r, tr.rec)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, &TruncationError{Want: HeaderSize, Got: int64(n)}
		}
		return Header{}, err
	}

	h, err := DecodeHeader(tr.rec)
	if err != nil {
		return Header{}, err
	}
	if h.IsEOF() {
		tr.done = true
		return EOF, io.EOF
	}
	tr.size = h.Size()
	tr.remaining = h.Size()
	return h, nil
}

// Read reads content of the current entry. It returns io.EOF at the end of
// the entry and a TruncationError if the stream ends first.
func (tr *Reader) Read(p []byte) (int, error) {
	if tr.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > tr.remaining {
		p = p[:tr.remaining]
	}
	n, err := tr.r.Read(p)
	tr.remaining -= int64(n)
	if errors.Is(err, io.EOF) {
		if tr.remaining > 0 {
			return n, &TruncationError{Want: tr.size, Got: tr.size - tr.remaining}
		}
		err = nil
	}
	return n, err
}

// List reads every header in r, skipping content, and calls fn for each
// entry in stream order. It stops at the sentinel or at the first error,
// including one returned by fn.
func List(r io.Reader, fn func(Header) error) error {
	tr := NewReader(r)
	for {
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(h); err != nil {
			return err
		}
	}
}

// copyN copies exactly n bytes from src to dst through buf, one chunk at a
// time. A source that runs dry first yields a TruncationError.
func copyN(dst io.Writer, src io.Reader, n int64, buf []byte) (int64, error) {
	var written int64
	for written < n {
		chunk := buf
		if rem := n - written; rem < int64(len(chunk)) {
			chunk = chunk[:rem]
		}
		nr, err := io.ReadFull(src, chunk)
		if nr > 0 {
			nw, werr := dst.Write(chunk[:nr])
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return written, &TruncationError{Want: n, Got: written}
			}
			return written, err
		}
	}
	return written, nil
}
