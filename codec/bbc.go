package codec

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/bix/bitseq"
	"github.com/arloliu/bix/errs"
	"github.com/arloliu/bix/format"
)

// BBC record markers. Every record starts with a 2-bit marker, so the stream
// is self-describing and decodes with a forward-only scan.
const (
	bbcMarkerZeroRun = 0b00 // followed by a 6-bit run count of 0x00 bytes
	bbcMarkerOneRun  = 0b01 // followed by a 6-bit run count of 0xFF bytes
	bbcMarkerSingle  = 0b10 // followed by a 3-bit index of the single set bit
	bbcMarkerLiteral = 0b11 // followed by the 8 raw bits of the byte
)

const (
	bbcMarkerBits   = 2
	bbcRunCountBits = 6
	bbcMaxRun       = 1<<bbcRunCountBits - 1 // 63 bytes per run record
	bbcIndexBits    = 3
)

// BBCCodec implements byte-aligned bitmap code compression over fixed 8-bit
// units.
//
// Each input byte is classified, in priority order, as part of a run of 0x00
// bytes, part of a run of 0xFF bytes, a byte with exactly one bit set, or a
// generic literal. Runs are length-encoded up to 63 bytes per record, longer
// runs emitting consecutive records; a single-set-bit byte is encoded as a
// marker plus the 3-bit position of its set bit (0 = most significant), which
// is cheaper than a full literal and common in bitmap-index postings.
//
// BBC has no configurable word size, so the original bit length is not
// recoverable from the stream when the input is not byte-aligned; the caller
// carries it and passes it to Decode, analogous to the WAH trailer.
type BBCCodec struct{}

var _ Codec = BBCCodec{}

// NewBBCCodec creates a BBC codec.
func NewBBCCodec() BBCCodec {
	return BBCCodec{}
}

// Algorithm returns format.AlgorithmBBC.
func (BBCCodec) Algorithm() format.AlgorithmType {
	return format.AlgorithmBBC
}

// Encode compresses the input. The final byte is zero-padded for
// classification when the input length is not a multiple of 8; Decode
// truncates the padding away using the caller-supplied bit length.
func (BBCCodec) Encode(input *bitseq.BitSequence) *bitseq.BitSequence {
	data := input.Bytes()
	out := bitseq.WithCapacity(len(data)*(8+bbcMarkerBits) + bbcMarkerBits)

	pos := 0
	for pos < len(data) {
		b := data[pos]

		if b == 0x00 || b == 0xFF {
			marker := uint64(bbcMarkerZeroRun)
			if b == 0xFF {
				marker = bbcMarkerOneRun
			}

			run := 1
			for pos+run < len(data) && data[pos+run] == b {
				run++
			}
			pos += run

			for run > 0 {
				k := run
				if k > bbcMaxRun {
					k = bbcMaxRun
				}
				out.AppendUint(marker, bbcMarkerBits)
				out.AppendUint(uint64(k), bbcRunCountBits)
				run -= k
			}

			continue
		}

		if bits.OnesCount8(b) == 1 {
			out.AppendUint(bbcMarkerSingle, bbcMarkerBits)
			out.AppendUint(uint64(bits.LeadingZeros8(b)), bbcIndexBits)
			pos++

			continue
		}

		out.AppendUint(bbcMarkerLiteral, bbcMarkerBits)
		out.AppendByte(b)
		pos++
	}

	return out
}

// Decode expands a compressed stream produced by Encode and truncates the
// result to bitLen bits, the original input length carried by the caller.
//
// Returns errs.ErrMalformedStream (wrapped with the offending record offset)
// if a record field is truncated at end of stream, a run record carries a
// zero count, or the decoded byte count disagrees with bitLen.
func (BBCCodec) Decode(compressed *bitseq.BitSequence, bitLen int) (*bitseq.BitSequence, error) {
	if bitLen < 0 {
		return nil, fmt.Errorf("%w: negative bit length %d", errs.ErrMalformedStream, bitLen)
	}

	wantBytes := (bitLen + 7) / 8
	data := make([]byte, 0, wantBytes)

	pos := 0
	record := 0

	for pos < compressed.Len() {
		if compressed.Len()-pos < bbcMarkerBits {
			return nil, fmt.Errorf("%w: truncated marker in record %d at bit %d",
				errs.ErrMalformedStream, record, pos)
		}
		marker, _ := compressed.Uint(pos, bbcMarkerBits)
		pos += bbcMarkerBits

		switch marker {
		case bbcMarkerZeroRun, bbcMarkerOneRun:
			count, err := compressed.Uint(pos, bbcRunCountBits)
			if err != nil {
				return nil, fmt.Errorf("%w: truncated run count in record %d at bit %d",
					errs.ErrMalformedStream, record, pos)
			}
			pos += bbcRunCountBits

			if count == 0 {
				return nil, fmt.Errorf("%w: run record %d with zero count", errs.ErrMalformedStream, record)
			}

			fill := byte(0x00)
			if marker == bbcMarkerOneRun {
				fill = 0xFF
			}
			for i := uint64(0); i < count; i++ {
				data = append(data, fill)
			}

		case bbcMarkerSingle:
			index, err := compressed.Uint(pos, bbcIndexBits)
			if err != nil {
				return nil, fmt.Errorf("%w: truncated bit index in record %d at bit %d",
					errs.ErrMalformedStream, record, pos)
			}
			pos += bbcIndexBits

			data = append(data, 0x80>>index)

		case bbcMarkerLiteral:
			raw, err := compressed.Uint(pos, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: truncated literal in record %d at bit %d",
					errs.ErrMalformedStream, record, pos)
			}
			pos += 8

			data = append(data, byte(raw))
		}

		record++
	}

	if len(data) != wantBytes {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d for bit length %d",
			errs.ErrMalformedStream, len(data), wantBytes, bitLen)
	}

	return bitseq.FromBytes(data, bitLen)
}

// Compress implements the Codec interface over Encode.
func (c BBCCodec) Compress(input *bitseq.BitSequence) (*Compressed, error) {
	return &Compressed{
		Algorithm: format.AlgorithmBBC,
		Bits:      c.Encode(input),
		BitLen:    input.Len(),
	}, nil
}

// Decompress implements the Codec interface over Decode.
func (c BBCCodec) Decompress(cp *Compressed) (*bitseq.BitSequence, error) {
	if cp.Algorithm != format.AlgorithmBBC {
		return nil, fmt.Errorf("%w: BBC codec got %s data", errs.ErrUnknownAlgorithm, cp.Algorithm)
	}

	return c.Decode(cp.Bits, cp.BitLen)
}
