// SPDX-License-Identifier: MPL-2.0

// Package wpress reads and writes the archive format used by All-in-One WP
// Migration to bundle a website into a single file.
//
// An archive is a flat sequence of entries, each a fixed-size header followed
// by the raw file content, terminated by a header of all zero bytes:
//
//	(header, content[size])* , sentinel
//
// A header is exactly HeaderSize (4377) bytes. Fields are stored as text,
// left-justified and padded with zero bytes:
//
//	name  [0:255]      UTF-8 file base name
//	size  [255:269]    decimal content length
//	time  [269:281]    decimal modification time, Unix seconds
//	path  [281:4377]   UTF-8 directory relative to the archive root, "." for the root
//
// There is no compression, checksum or index; entries can only be read in
// order. Pack and Unpack convert between a directory tree and a stream;
// Writer and Reader expose the stream one entry at a time.
package wpress
