// SPDX-License-Identifier: MPL-2.0

package wpress

// ProgressStage identifies the operation reporting progress.
type ProgressStage uint8

const (
	// StagePacking is reported after each file written to an archive.
	StagePacking ProgressStage = iota
	// StageUnpacking is reported after each file extracted from an archive.
	StageUnpacking
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StagePacking:
		return "packing"
	case StageUnpacking:
		return "unpacking"
	default:
		return "unknown"
	}
}

// ProgressEvent is a progress update for a single archive entry.
type ProgressEvent struct {
	Stage ProgressStage

	// Path is the entry's slash-separated path relative to the archive root.
	Path string

	// BytesDone is the total content bytes processed so far.
	BytesDone uint64

	// FilesDone is the number of entries processed so far.
	FilesDone int
}

// ProgressFunc receives progress updates. It is called synchronously from
// the packing or unpacking loop.
type ProgressFunc func(ProgressEvent)
