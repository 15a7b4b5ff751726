// Package container serializes compressed bitmaps into a self-describing
// binary frame for storage and transport.
//
// A codec.Compressed value is not self-sufficient as raw bits: the word size,
// the final-bits trailer and the original bit length live out of band. The
// frame captures them in a fixed header, applies optional outer compression
// to the encoded payload, and guards the payload with an xxHash64 checksum:
//
//	offset size field
//	0      4    magic "BIXF"
//	4      1    frame version (currently 1)
//	5      1    flags (bit 0: numeric fields are big-endian)
//	6      1    algorithm (format.AlgorithmType)
//	7      1    WAH word size, 0 for BBC
//	8      1    outer compression (format.CompressionType)
//	9      2    WAH final-bits trailer
//	11     8    original input length in bits
//	19     8    compressed stream length in bits
//	27     4    payload length in bytes, after outer compression
//	31     8    xxHash64 of the payload as stored
//	39     -    payload
//
// # Usage
//
//	frame, err := container.Encode(compressed, container.WithCompression(format.CompressionS2))
//	compressed, err = container.Decode(frame)
package container

import (
	"bytes"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/bix/bitseq"
	"github.com/arloliu/bix/codec"
	"github.com/arloliu/bix/compress"
	"github.com/arloliu/bix/endian"
	"github.com/arloliu/bix/errs"
	"github.com/arloliu/bix/format"
	"github.com/arloliu/bix/internal/options"
	"github.com/arloliu/bix/internal/pool"
)

const (
	// Version is the current frame format version.
	Version = 1

	headerSize = 39

	flagBigEndian = 0x01
)

var magic = [4]byte{'B', 'I', 'X', 'F'}

type encodeConfig struct {
	compression format.CompressionType
	engine      endian.EndianEngine
	flags       uint8
}

// Option configures frame encoding.
type Option = options.Option[*encodeConfig]

// WithCompression selects the outer compression applied to the payload.
// The default is format.CompressionNone.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(cfg *encodeConfig) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		cfg.compression = compression

		return nil
	})
}

// WithBigEndian stores the numeric header fields big-endian, for consumers
// on big-endian systems. Frames record their endianness, so Decode handles
// either form.
func WithBigEndian() Option {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.engine = endian.GetBigEndianEngine()
		cfg.flags |= flagBigEndian
	})
}

// Encode serializes a Compressed value into a frame.
//
// The returned slice is newly allocated and owned by the caller.
func Encode(c *codec.Compressed, opts ...Option) ([]byte, error) {
	cfg := &encodeConfig{
		compression: format.CompressionNone,
		engine:      endian.GetLittleEndianEngine(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if c == nil || c.Bits == nil {
		return nil, fmt.Errorf("%w: nil compressed value", errs.ErrMalformedStream)
	}

	outer, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	payload, err := outer.Compress(c.Bits.Bytes())
	if err != nil {
		return nil, fmt.Errorf("outer compression failed: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds frame limit", errs.ErrMalformedStream, len(payload))
	}

	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	buf.MustWrite(magic[:])
	buf.MustWrite([]byte{
		Version,
		cfg.flags,
		byte(c.Algorithm),
		byte(c.WordSize),
		byte(cfg.compression),
	})
	buf.B = cfg.engine.AppendUint16(buf.B, uint16(c.FinalBits))
	buf.B = cfg.engine.AppendUint64(buf.B, uint64(c.BitLen))
	buf.B = cfg.engine.AppendUint64(buf.B, uint64(c.Bits.Len()))
	buf.B = cfg.engine.AppendUint32(buf.B, uint32(len(payload)))
	buf.B = cfg.engine.AppendUint64(buf.B, xxhash.Sum64(payload))
	buf.MustWrite(payload)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode parses a frame back into a Compressed value, reversing any outer
// compression and verifying the payload checksum.
//
// Returns errs.ErrFrameTooShort, errs.ErrInvalidMagic,
// errs.ErrUnknownCompression, errs.ErrChecksumMismatch, or a wrapped
// errs.ErrMalformedStream depending on what is wrong with the data.
func Decode(data []byte) (*codec.Compressed, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", errs.ErrFrameTooShort, len(data), headerSize)
	}
	if !bytes.Equal(data[0:4], magic[:]) {
		return nil, errs.ErrInvalidMagic
	}
	if data[4] != Version {
		return nil, fmt.Errorf("%w: unsupported frame version %d", errs.ErrMalformedStream, data[4])
	}

	engine := endian.GetLittleEndianEngine()
	if data[5]&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	algorithm := format.AlgorithmType(data[6])
	wordSize := uint(data[7])
	compression := format.CompressionType(data[8])
	finalBits := uint(engine.Uint16(data[9:11]))
	bitLen := engine.Uint64(data[11:19])
	streamBits := engine.Uint64(data[19:27])
	payloadLen := int(engine.Uint32(data[27:31]))
	checksum := engine.Uint64(data[31:39])

	if bitLen > math.MaxInt64 || streamBits > math.MaxInt64 {
		return nil, fmt.Errorf("%w: unreasonable bit length fields", errs.ErrMalformedStream)
	}
	if len(data)-headerSize != payloadLen {
		return nil, fmt.Errorf("%w: payload length %d, frame carries %d bytes",
			errs.ErrMalformedStream, payloadLen, len(data)-headerSize)
	}

	payload := data[headerSize:]
	if xxhash.Sum64(payload) != checksum {
		return nil, errs.ErrChecksumMismatch
	}

	outer, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	streamBytes, err := outer.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("outer decompression failed: %w", err)
	}

	if (int(streamBits)+7)/8 != len(streamBytes) {
		return nil, fmt.Errorf("%w: stream of %d bits decompressed to %d bytes",
			errs.ErrMalformedStream, streamBits, len(streamBytes))
	}

	bits, err := bitseq.FromBytes(streamBytes, int(streamBits))
	if err != nil {
		return nil, fmt.Errorf("%w: stream of %d bits does not fit %d payload bytes",
			errs.ErrMalformedStream, streamBits, len(streamBytes))
	}

	return &codec.Compressed{
		Algorithm: algorithm,
		Bits:      bits,
		WordSize:  wordSize,
		FinalBits: finalBits,
		BitLen:    int(bitLen),
	}, nil
}
