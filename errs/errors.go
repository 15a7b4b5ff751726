// Package errs defines the sentinel errors shared across bix packages.
//
// Callers match errors with errors.Is; most decode-time errors are returned
// wrapped with positional context, e.g.:
//
//	fmt.Errorf("%w: fill word with zero counter at word 12", errs.ErrMalformedStream)
package errs

import "errors"

var (
	// ErrInvalidWordSize is returned when a WAH word size is outside [2, 64].
	// Word size 1 leaves no room for the marker bit.
	ErrInvalidWordSize = errors.New("word size must be in range [2, 64]")

	// ErrOutOfRange is returned when a bit index or slice range exceeds the
	// bounds of a BitSequence. It indicates a caller bug, not bad input data.
	ErrOutOfRange = errors.New("bit index out of range")

	// ErrMalformedStream is returned when a compressed stream is structurally
	// inconsistent: unknown marker, truncated field, zero-length run, or a
	// trailer that disagrees with the stream length. Decoding never returns
	// partial output once malformation is detected.
	ErrMalformedStream = errors.New("malformed compressed stream")

	// ErrInvalidMagic is returned when container data does not start with the
	// bix frame magic number.
	ErrInvalidMagic = errors.New("invalid frame magic number")

	// ErrChecksumMismatch is returned when the payload checksum stored in a
	// container frame does not match the decoded payload.
	ErrChecksumMismatch = errors.New("frame payload checksum mismatch")

	// ErrUnknownAlgorithm is returned when a frame names an algorithm this
	// build does not implement.
	ErrUnknownAlgorithm = errors.New("unknown compression algorithm")

	// ErrUnknownCompression is returned when a frame names an outer
	// compression codec this build does not implement.
	ErrUnknownCompression = errors.New("unknown outer compression type")

	// ErrFrameTooShort is returned when container data is shorter than the
	// fixed frame header.
	ErrFrameTooShort = errors.New("frame data shorter than header")
)
