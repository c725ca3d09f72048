package binseq

import (
	"errors"
	"fmt"

	"github.com/inodb/genseq/internal/interval"
)

var (
	// ErrSequenceSet is returned when a record's sequence is assigned twice.
	ErrSequenceSet = errors.New("sequence already set")
	// ErrBadMagic is returned when a file is not a marker sequence file.
	ErrBadMagic = errors.New("not a marker sequence file")
	// ErrVersion is returned for files written by an unknown format version.
	ErrVersion = errors.New("unsupported marker sequence file version")
	// ErrChecksum is returned when a file's payload does not match its checksum.
	ErrChecksum = errors.New("marker sequence file checksum mismatch")
	// ErrMixedFileSet is returned when files sharing a base name come from
	// different saves.
	ErrMixedFileSet = errors.New("marker sequence files from different saves")
	// ErrFileNameCollision is returned when two chromosome names sanitize to
	// the same file name.
	ErrFileNameCollision = errors.New("chromosome file name collision")
)

// OutOfRangeError reports a region that does not fit inside its chromosome
// sequence. It is recoverable: the region is skipped.
type OutOfRangeError struct {
	Region   interval.Interval
	ChromLen int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("region %s outside chromosome range (chromosome length: %d)", e.Region, e.ChromLen)
}

// FatalExtractionError reports a failure to slice a region that passed the
// bounds check. It indicates corrupt input and aborts the enclosing operation.
type FatalExtractionError struct {
	Region   interval.Interval
	ChromLen int
	Err      error
}

func (e *FatalExtractionError) Error() string {
	return fmt.Sprintf("extract sequence for %s (chromosome length: %d): %v", e.Region, e.ChromLen, e.Err)
}

func (e *FatalExtractionError) Unwrap() error {
	return e.Err
}
