package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/bix/bitseq"
	"github.com/arloliu/bix/errs"
	"github.com/arloliu/bix/format"
)

// WAHCodec implements word-aligned hybrid compression with a configurable
// word size W in [2, 64].
//
// The input is partitioned into consecutive (W-1)-bit sections, the last one
// zero-padded on the right if short. Each encoded word is W bits:
//
//	bit 0: marker, 0 = literal, 1 = fill
//	literal: bits 1..W-1 hold one section verbatim
//	fill:    bit 1 holds the fill value, bits 2..W-1 hold an unsigned counter
//	         of consecutive all-zero or all-one sections, at most 2^(W-2)-1
//
// Runs longer than a single counter can express are emitted as consecutive
// fill words. A run must span at least two whole sections to be emitted as a
// fill; an isolated all-zero or all-one section costs the same either way and
// is emitted as a literal.
//
// Encode returns a final-bits trailer recording how many bits of the final
// section are real input rather than padding; Decode needs it to reproduce
// the original bit length exactly.
type WAHCodec struct {
	wordSize uint
}

var _ Codec = (*WAHCodec)(nil)

// NewWAHCodec creates a WAH codec with the given word size.
//
// Returns errs.ErrInvalidWordSize if wordSize is outside [2, 64]. Word size 1
// would leave no room for the marker bit.
func NewWAHCodec(wordSize uint) (*WAHCodec, error) {
	if wordSize < 2 || wordSize > 64 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidWordSize, wordSize)
	}

	return &WAHCodec{wordSize: wordSize}, nil
}

// WordSize returns the configured word size W.
func (c *WAHCodec) WordSize() uint {
	return c.wordSize
}

// Algorithm returns format.AlgorithmWAH.
func (c *WAHCodec) Algorithm() format.AlgorithmType {
	return format.AlgorithmWAH
}

// Encode compresses the input and returns the compressed bit stream together
// with the final-bits trailer.
//
// The trailer is the number of valid bits in the final (W-1)-bit section:
// W-1 when the input length is an exact multiple of W-1, the shorter
// remainder otherwise, and 0 only for empty input (which encodes to an empty
// stream).
func (c *WAHCodec) Encode(input *bitseq.BitSequence) (*bitseq.BitSequence, uint) {
	w := int(c.wordSize)
	section := w - 1
	maxRun := maxRunSections(w)

	n := input.Len()
	out := bitseq.WithCapacity(n + n/section + w)

	pos := 0
	finalBits := 0

	for pos < n {
		runSections := input.RunLength(pos) / section

		// maxRun is 0 at W=2: the counter field has no bits, so every
		// section is emitted as a literal.
		if runSections >= 2 && maxRun > 0 {
			fill := input.MustGet(pos)
			// A single section left over after an overflow split falls
			// through to the literal path like any other isolated section.
			for runSections >= 2 {
				k := uint64(runSections)
				if k > maxRun {
					k = maxRun
				}

				out.Append(1)
				out.Append(fill)
				out.AppendUint(k, w-2)

				pos += int(k) * section
				runSections -= int(k)
			}

			// Fill words always cover whole sections.
			finalBits = section

			continue
		}

		take := section
		if remaining := n - pos; remaining < take {
			take = remaining
		}

		out.Append(0)
		for i := 0; i < take; i++ {
			out.Append(input.MustGet(pos + i))
		}
		out.AppendRun(0, section-take)

		pos += take
		finalBits = take
	}

	return out, uint(finalBits)
}

// Decode expands a compressed stream produced by Encode with the same word
// size, truncating the output to the bit length implied by finalBits.
//
// Returns errs.ErrMalformedStream (wrapped with the offending word offset) if
// the stream length is not a multiple of W, a fill word carries a zero
// counter, or the trailer is inconsistent with the stream.
func (c *WAHCodec) Decode(compressed *bitseq.BitSequence, finalBits uint) (*bitseq.BitSequence, error) {
	w := int(c.wordSize)
	section := w - 1

	clen := compressed.Len()
	if clen%w != 0 {
		return nil, fmt.Errorf("%w: stream length %d is not a multiple of word size %d",
			errs.ErrMalformedStream, clen, w)
	}

	words := clen / w
	if words == 0 {
		if finalBits != 0 {
			return nil, fmt.Errorf("%w: trailer %d for empty stream", errs.ErrMalformedStream, finalBits)
		}

		return bitseq.New(), nil
	}

	if finalBits < 1 || int(finalBits) > section {
		return nil, fmt.Errorf("%w: trailer %d outside [1, %d]", errs.ErrMalformedStream, finalBits, section)
	}

	out := bitseq.WithCapacity(words * section)
	sections := 0

	for word := 0; word < words; word++ {
		base := word * w

		if compressed.MustGet(base) == 0 {
			for i := 1; i < w; i++ {
				out.Append(compressed.MustGet(base + i))
			}
			sections++

			continue
		}

		fill := compressed.MustGet(base + 1)
		count, err := compressed.Uint(base+2, w-2)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: fill word with zero counter at word %d", errs.ErrMalformedStream, word)
		}
		if count > uint64(math.MaxInt/section) {
			return nil, fmt.Errorf("%w: fill counter %d at word %d exceeds representable output",
				errs.ErrMalformedStream, count, word)
		}

		out.AppendRun(fill, int(count)*section)
		sections += int(count)
	}

	// The trailer applies to the final section only; everything before it is
	// full-width by construction.
	bitLen := (sections-1)*section + int(finalBits)
	if err := out.Truncate(bitLen); err != nil {
		return nil, fmt.Errorf("%w: trailer %d inconsistent with %d decoded sections",
			errs.ErrMalformedStream, finalBits, sections)
	}

	return out, nil
}

// Compress implements the Codec interface over Encode.
func (c *WAHCodec) Compress(input *bitseq.BitSequence) (*Compressed, error) {
	bits, finalBits := c.Encode(input)

	return &Compressed{
		Algorithm: format.AlgorithmWAH,
		Bits:      bits,
		WordSize:  c.wordSize,
		FinalBits: finalBits,
		BitLen:    input.Len(),
	}, nil
}

// Decompress implements the Codec interface over Decode.
//
// The Compressed value must carry this codec's algorithm and word size.
func (c *WAHCodec) Decompress(cp *Compressed) (*bitseq.BitSequence, error) {
	if cp.Algorithm != format.AlgorithmWAH {
		return nil, fmt.Errorf("%w: WAH codec got %s data", errs.ErrUnknownAlgorithm, cp.Algorithm)
	}
	if cp.WordSize != c.wordSize {
		return nil, fmt.Errorf("%w: stream word size %d, codec word size %d",
			errs.ErrMalformedStream, cp.WordSize, c.wordSize)
	}

	return c.Decode(cp.Bits, cp.FinalBits)
}

// maxRunSections returns the largest section count a single fill word can
// carry for word size w: 2^(w-2) - 1.
func maxRunSections(w int) uint64 {
	return 1<<uint(w-2) - 1
}
