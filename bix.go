// Package bix provides lossless compression for bitmap-index bit sequences
// using two codecs: word-aligned hybrid (WAH) and byte-aligned bitmap code
// (BBC).
//
// Bitmap index columns are long bit sequences dominated by runs of identical
// bits. Both codecs run-length-encode those runs while keeping the stream
// self-describing, and both round-trip exactly: decompressing a compressed
// sequence reproduces the original bit for bit, including its length.
//
// # Basic Usage
//
// Compressing and decompressing with WAH (word size is a runtime parameter
// in [2, 64]):
//
//	input := bitseq.FromByteSlice(columnBytes)
//
//	compressed, finalBits, err := bix.CompressWAH(input, 32)
//	if err != nil {
//	    return err
//	}
//
//	original, err := bix.DecompressWAH(compressed, finalBits, 32)
//
// The finalBits trailer records how many bits of the final encoded section
// are real input rather than padding; keep it with the compressed stream.
//
// Compressing with BBC (fixed 8-bit units, no parameter):
//
//	compressed := bix.CompressBBC(input)
//	original, err := bix.DecompressBBC(compressed, input.Len())
//
// BBC has no trailer; the caller carries the original bit length instead.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec
// package, covering the common cases. For uniform handling of both
// algorithms, persistence and outer compression, use the codec and container
// packages directly.
package bix

import (
	"github.com/arloliu/bix/bitseq"
	"github.com/arloliu/bix/codec"
)

// CompressWAH compresses input with the WAH codec at the given word size and
// returns the compressed stream plus the final-bits trailer needed to
// decompress it.
//
// Returns errs.ErrInvalidWordSize if wordSize is outside [2, 64]; the check
// happens before any input bits are read.
func CompressWAH(input *bitseq.BitSequence, wordSize uint) (*bitseq.BitSequence, uint, error) {
	c, err := codec.NewWAHCodec(wordSize)
	if err != nil {
		return nil, 0, err
	}

	compressed, finalBits := c.Encode(input)

	return compressed, finalBits, nil
}

// DecompressWAH reverses CompressWAH. finalBits and wordSize must be the
// values used during compression.
//
// Returns errs.ErrInvalidWordSize for a bad word size, or a wrapped
// errs.ErrMalformedStream if the stream is structurally inconsistent.
func DecompressWAH(compressed *bitseq.BitSequence, finalBits, wordSize uint) (*bitseq.BitSequence, error) {
	c, err := codec.NewWAHCodec(wordSize)
	if err != nil {
		return nil, err
	}

	return c.Decode(compressed, finalBits)
}

// CompressBBC compresses input with the BBC codec. The caller must carry the
// original bit length alongside the result to decompress it; BBC has no
// word-size parameter to make final-byte padding visible otherwise.
func CompressBBC(input *bitseq.BitSequence) *bitseq.BitSequence {
	return codec.NewBBCCodec().Encode(input)
}

// DecompressBBC reverses CompressBBC, truncating the output to bitLen bits.
//
// Returns a wrapped errs.ErrMalformedStream if the stream is structurally
// inconsistent or disagrees with bitLen.
func DecompressBBC(compressed *bitseq.BitSequence, bitLen int) (*bitseq.BitSequence, error) {
	return codec.NewBBCCodec().Decode(compressed, bitLen)
}
