package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/arloliu/bix/errs"
	"github.com/arloliu/bix/format"
	"github.com/stretchr/testify/require"
)

func allCompressionTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
}

// samplePayload imitates WAH output for a sparse bitmap: long stretches of
// fill words interleaved with literals.
func samplePayload(size int) []byte {
	rng := rand.New(rand.NewSource(42))
	payload := make([]byte, size)
	for i := 0; i < size; i += 16 {
		if rng.Intn(4) == 0 {
			for j := i; j < i+16 && j < size; j++ {
				payload[j] = byte(rng.Intn(256))
			}
		}
	}

	return payload
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := samplePayload(8 * 1024)

	for _, ct := range allCompressionTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, decompressed))
		})
	}
}

func TestCodecs_EmptyPayload(t *testing.T) {
	for _, ct := range allCompressionTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestCodecs_CompressRepetitivePayload(t *testing.T) {
	// Fill-heavy payloads must shrink under every real algorithm.
	payload := bytes.Repeat([]byte{0x80, 0x00, 0x00, 0x01}, 2048)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload))
		})
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestZstdCodec_RejectsCorruptData(t *testing.T) {
	codec := NewZstdCodec()

	_, err := codec.Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	s := Stats{
		Algorithm:      format.CompressionS2,
		OriginalSize:   1000,
		CompressedSize: 250,
	}

	require.InDelta(t, 0.25, s.Ratio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)

	empty := Stats{}
	require.Zero(t, empty.Ratio())
}

func BenchmarkCodecs_Compress(b *testing.B) {
	payload := samplePayload(64 * 1024)

	for _, ct := range allCompressionTypes() {
		codec, err := GetCodec(ct)
		require.NoError(b, err)

		b.Run(ct.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = codec.Compress(payload)
			}
		})
	}
}
