// SPDX-License-Identifier: MPL-2.0

package wpress

import (
	"bytes"
	"strconv"
	"time"
	"unicode/utf8"
)

// HeaderSize is the exact length in bytes of an encoded header record.
const HeaderSize = 4377

// slot is the fixed byte range reserved for one header field.
type slot struct {
	name   string
	offset int
	width  int
}

func (s slot) end() int { return s.offset + s.width }

// Field slots, in on-disk order.
var (
	nameSlot = slot{name: "name", offset: 0, width: 255}
	sizeSlot = slot{name: "size", offset: 255, width: 14}
	timeSlot = slot{name: "time", offset: 269, width: 12}
	pathSlot = slot{name: "path", offset: 281, width: 4096}
)

// Header describes one archived file. The zero value is the end-of-stream
// sentinel, also available as EOF.
//
// Header values are immutable; construct them with NewHeader.
type Header struct {
	path  string
	name  string
	size  int64
	mtime int64
}

// EOF is the sentinel header terminating every archive stream.
var EOF = Header{}

// NewHeader returns a validated header. Passing the zero value for every
// argument yields EOF. Otherwise path and name must be non-empty valid UTF-8
// and size and mtime must be non-negative.
func NewHeader(path, name string, size, mtime int64) (Header, error) {
	if path == "" && name == "" && size == 0 && mtime == 0 {
		return EOF, nil
	}
	if path == "" {
		return Header{}, newFormatError(pathSlot.name, "must be a nonempty string")
	}
	if name == "" {
		return Header{}, newFormatError(nameSlot.name, "must be a nonempty string")
	}
	if !utf8.ValidString(path) {
		return Header{}, newFormatError(pathSlot.name, "not valid UTF-8")
	}
	if !utf8.ValidString(name) {
		return Header{}, newFormatError(nameSlot.name, "not valid UTF-8")
	}
	if size < 0 {
		return Header{}, newFormatError(sizeSlot.name, "must be a non-negative integer, got %d", size)
	}
	if mtime < 0 {
		return Header{}, newFormatError(timeSlot.name, "must be a non-negative integer, got %d", mtime)
	}
	return Header{path: path, name: name, size: size, mtime: mtime}, nil
}

// Path returns the directory of the file relative to the archive root,
// "." for the root itself.
func (h Header) Path() string { return h.path }

// Name returns the base name of the file.
func (h Header) Name() string { return h.name }

// Size returns the content length in bytes.
func (h Header) Size() int64 { return h.size }

// Time returns the last-modified time in Unix seconds.
func (h Header) Time() int64 { return h.mtime }

// ModTime returns Time as a time.Time.
func (h Header) ModTime() time.Time { return time.Unix(h.mtime, 0) }

// IsEOF reports whether h is the end-of-stream sentinel.
func (h Header) IsEOF() bool { return h == EOF }

// EncodeHeader encodes h into a HeaderSize record. Each field is written into
// its slot and right-padded with zero bytes.
func EncodeHeader(h Header) ([]byte, error) {
	buf := make([]byte, HeaderSize)
	if h.IsEOF() {
		return buf, nil
	}

	fields := []struct {
		slot  slot
		value string
	}{
		{nameSlot, h.name},
		{sizeSlot, strconv.FormatInt(h.size, 10)},
		{timeSlot, strconv.FormatInt(h.mtime, 10)},
		{pathSlot, h.path},
	}
	for _, f := range fields {
		if len(f.value) > f.slot.width {
			return nil, newFormatError(f.slot.name, "is too long to pack: %s", f.value)
		}
		copy(buf[f.slot.offset:f.slot.end()], f.value)
	}
	return buf, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	return EncodeHeader(h)
}

// DecodeHeader decodes a HeaderSize record. An all-zero record decodes to EOF.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, newFormatError("", "invalid header size: %d bytes, want %d", len(b), HeaderSize)
	}
	if isZero(b) {
		return EOF, nil
	}

	name, err := extractText(b, nameSlot)
	if err != nil {
		return Header{}, err
	}
	size, err := extractInt(b, sizeSlot)
	if err != nil {
		return Header{}, err
	}
	mtime, err := extractInt(b, timeSlot)
	if err != nil {
		return Header{}, err
	}
	path, err := extractText(b, pathSlot)
	if err != nil {
		return Header{}, err
	}

	return NewHeader(path, name, size, mtime)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(b []byte) error {
	decoded, err := DecodeHeader(b)
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}

func extractField(b []byte, s slot) ([]byte, error) {
	if s.end() > len(b) {
		return nil, newFormatError(s.name, "error extracting a header field: slot [%d:%d] exceeds record", s.offset, s.end())
	}
	return bytes.TrimRight(b[s.offset:s.end()], "\x00"), nil
}

func extractText(b []byte, s slot) (string, error) {
	field, err := extractField(b, s)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(field) {
		return "", newFormatError(s.name, "invalid header field: not valid UTF-8")
	}
	return string(field), nil
}

func extractInt(b []byte, s slot) (int64, error) {
	field, err := extractField(b, s)
	if err != nil {
		return 0, err
	}
	if len(field) == 0 {
		return 0, newFormatError(s.name, "invalid header field: empty")
	}
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, newFormatError(s.name, "invalid header field: %q is not a non-negative integer", field)
		}
	}
	n, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		return 0, newFormatError(s.name, "invalid header field: %v", err)
	}
	return n, nil
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
