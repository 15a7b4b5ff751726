// Package codec implements the two lossless bitmap-compression codecs at the
// core of bix: word-aligned hybrid (WAH) and byte-aligned bitmap code (BBC).
//
// Both codecs operate on a bitseq.BitSequence and round-trip exactly: for any
// input x, decoding the encoded form of x reproduces x bit for bit, including
// its original bit length.
//
// # Overview
//
// Bitmap-index columns contain long runs of identical bits. Both codecs
// partition the input into fixed-size units, classify each unit, and
// run-length-encode the units that form runs:
//
//   - WAH carves the input into (W-1)-bit sections, where the word size W is
//     a runtime parameter in [2, 64]. Each encoded word is W bits: a marker
//     bit, then either W-1 raw section bits (literal) or a fill value plus a
//     (W-2)-bit run counter (fill).
//   - BBC carves the input into 8-bit bytes and encodes each as a zero-run
//     record, a one-run record, a single-set-bit record, or a literal record,
//     each self-described by a 2-bit marker.
//
// Because the input bit length is usually not a multiple of the unit size,
// the final unit is zero-padded during encoding and an out-of-band value
// records where real data ends: WAH returns a final-bits trailer, BBC relies
// on the caller to carry the original bit length.
//
// # Usage
//
// Direct per-algorithm entry points:
//
//	wah, err := codec.NewWAHCodec(8)
//	compressed, finalBits := wah.Encode(input)
//	original, err := wah.Decode(compressed, finalBits)
//
//	bbc := codec.NewBBCCodec()
//	compressed := bbc.Encode(input)
//	original, err := bbc.Decode(compressed, input.Len())
//
// The Codec interface bundles the out-of-band values into a Compressed value
// for callers that handle both algorithms uniformly (the container package
// and the CLI):
//
//	c, err := codec.New(format.AlgorithmWAH, 8)
//	compressed, err := c.Compress(input)
//	original, err := c.Decompress(compressed)
//
// # Thread Safety
//
// Codecs are stateless; a single codec value may be used concurrently on
// independent inputs without synchronization.
package codec
