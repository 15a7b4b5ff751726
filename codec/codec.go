package codec

import (
	"fmt"

	"github.com/arloliu/bix/bitseq"
	"github.com/arloliu/bix/errs"
	"github.com/arloliu/bix/format"
)

// Compressed bundles a codec's output bits with the out-of-band values needed
// to decode them: the algorithm, the WAH word size and final-bits trailer, and
// the original input length in bits.
//
// A Compressed value is self-sufficient: any codec of the matching algorithm
// and parameters can reproduce the original sequence from it.
type Compressed struct {
	// Algorithm identifies the codec that produced Bits.
	Algorithm format.AlgorithmType

	// Bits is the compressed bit stream.
	Bits *bitseq.BitSequence

	// WordSize is the WAH word size used for encoding. Zero for BBC.
	WordSize uint

	// FinalBits is the WAH trailer: the number of semantically valid bits in
	// the final encoded section. Zero for BBC and for empty WAH input.
	FinalBits uint

	// BitLen is the original input length in bits. BBC decoding truncates its
	// output to this length; for WAH it is informational.
	BitLen int
}

// Compressor compresses a bit sequence into a Compressed value.
type Compressor interface {
	// Compress encodes the input and returns a Compressed value carrying the
	// encoded bits plus the out-of-band decode parameters.
	//
	// The input is not modified and no reference to it is retained; the
	// returned value owns its own storage.
	Compress(input *bitseq.BitSequence) (*Compressed, error)
}

// Decompressor reproduces the original bit sequence from a Compressed value.
type Decompressor interface {
	// Decompress decodes a Compressed value back into the original sequence,
	// including its original bit length.
	//
	// Returns errs.ErrMalformedStream (wrapped with offset context) if the
	// stream is structurally inconsistent. No partial output is returned once
	// malformation is detected.
	Decompress(c *Compressed) (*bitseq.BitSequence, error)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor

	// Algorithm reports which algorithm this codec implements.
	Algorithm() format.AlgorithmType
}

// New creates a codec for the given algorithm. wordSize applies to WAH only
// and is ignored for BBC.
//
// Returns errs.ErrInvalidWordSize for a WAH word size outside [2, 64], or
// errs.ErrUnknownAlgorithm for an unrecognized algorithm.
func New(algorithm format.AlgorithmType, wordSize uint) (Codec, error) {
	switch algorithm {
	case format.AlgorithmWAH:
		return NewWAHCodec(wordSize)
	case format.AlgorithmBBC:
		return NewBBCCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownAlgorithm, algorithm)
	}
}
