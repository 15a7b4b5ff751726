package compress

import (
	"fmt"

	"github.com/arloliu/bix/errs"
	"github.com/arloliu/bix/format"
)

// Compressor compresses a byte payload.
type Compressor interface {
	// Compress compresses the input and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
type Decompressor interface {
	// Decompress decompresses the input and returns a newly allocated result.
	// Returns an error if the data is corrupted or was compressed with a
	// different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// Stats summarizes one compression operation, for reporting in the CLI and
// benchmarks.
type Stats struct {
	// Algorithm identifies the outer compression algorithm used.
	Algorithm format.CompressionType

	// OriginalSize is the payload size before compression, in bytes.
	OriginalSize int64

	// CompressedSize is the payload size after compression, in bytes.
	CompressedSize int64
}

// Ratio returns compressed size divided by original size. Values below 1.0
// indicate net compression; 0 is returned for an empty original.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the savings as a percentage in [0, 100] for
// compressing payloads, negative when the codec expanded the payload.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the given compression type.
//
// Returns errs.ErrUnknownCompression for an unrecognized type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
}
