package codec

import (
	"math/rand"
	"testing"

	"github.com/arloliu/bix/bitseq"
	"github.com/arloliu/bix/errs"
	"github.com/arloliu/bix/format"
	"github.com/stretchr/testify/require"
)

func mustBits(t *testing.T, s string) *bitseq.BitSequence {
	t.Helper()
	bs, err := bitseq.FromString(s)
	require.NoError(t, err)

	return bs
}

func randomBits(rng *rand.Rand, bitLen int) *bitseq.BitSequence {
	bs := bitseq.WithCapacity(bitLen)
	for i := 0; i < bitLen; i++ {
		bs.Append(byte(rng.Intn(2)))
	}

	return bs
}

// randomRunBits produces run-heavy sequences, the shape bitmap-index columns
// actually have, so fills and literals both get exercised.
func randomRunBits(rng *rand.Rand, bitLen int) *bitseq.BitSequence {
	bs := bitseq.WithCapacity(bitLen)
	for bs.Len() < bitLen {
		run := 1 + rng.Intn(40)
		if remaining := bitLen - bs.Len(); run > remaining {
			run = remaining
		}
		bs.AppendRun(byte(rng.Intn(2)), run)
	}

	return bs
}

func TestNewWAHCodec_WordSizeValidation(t *testing.T) {
	for _, w := range []uint{2, 3, 8, 16, 32, 64} {
		c, err := NewWAHCodec(w)
		require.NoError(t, err)
		require.Equal(t, w, c.WordSize())
	}

	for _, w := range []uint{0, 1, 65, 1000} {
		_, err := NewWAHCodec(w)
		require.ErrorIs(t, err, errs.ErrInvalidWordSize, "word size %d", w)
	}
}

func TestWAHCodec_Encode_Vectors(t *testing.T) {
	tests := []struct {
		name      string
		wordSize  uint
		input     string
		want      string
		finalBits uint
	}{
		{name: "empty", wordSize: 4, input: "", want: "", finalBits: 0},
		{name: "single literal", wordSize: 4, input: "101", want: "0101", finalBits: 3},
		{name: "short literal padded", wordSize: 4, input: "10", want: "0100", finalBits: 2},
		{name: "single bit", wordSize: 4, input: "1", want: "0100", finalBits: 1},
		{name: "isolated zero section is literal", wordSize: 4, input: "000", want: "0000", finalBits: 3},
		{name: "two zero sections fill", wordSize: 4, input: "000000", want: "1010", finalBits: 3},
		{name: "three one sections fill", wordSize: 4, input: "111111111", want: "1111", finalBits: 3},
		{name: "fill counter overflow", wordSize: 4, input: "000000000000", want: "10110000", finalBits: 3},
		{name: "fill counter overflow remainder fill", wordSize: 4, input: "000000000000000", want: "10111010", finalBits: 3},
		{name: "literal then fill", wordSize: 4, input: "101000000", want: "01011010", finalBits: 3},
		{name: "fill then short literal", wordSize: 4, input: "1010000001", want: "010110100100", finalBits: 1},
		{name: "word size 8 zero fill", wordSize: 8, input: "00000000000000", want: "10000010", finalBits: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewWAHCodec(tt.wordSize)
			require.NoError(t, err)

			got, finalBits := c.Encode(mustBits(t, tt.input))
			require.Equal(t, tt.want, got.String())
			require.Equal(t, tt.finalBits, finalBits)

			back, err := c.Decode(got, finalBits)
			require.NoError(t, err)
			require.Equal(t, tt.input, back.String())
		})
	}
}

func TestWAHCodec_RoundTrip_HelloWorld(t *testing.T) {
	// Fixed regression vector: ASCII bytes of "Hello, world!" at word size 8.
	input := bitseq.FromByteSlice([]byte("Hello, world!"))

	c, err := NewWAHCodec(8)
	require.NoError(t, err)

	compressed, finalBits := c.Encode(input)
	back, err := c.Decode(compressed, finalBits)
	require.NoError(t, err)

	require.True(t, input.Equal(back))
	require.Equal(t, []byte("Hello, world!"), back.Bytes())
}

func TestWAHCodec_RoundTrip_WordSizeSweep(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for w := uint(2); w <= 64; w++ {
		c, err := NewWAHCodec(w)
		require.NoError(t, err)

		section := int(w) - 1
		lengths := []int{0, 1, section - 1, section, section + 1, 2 * section, 5*section + 3, 163}

		for _, bitLen := range lengths {
			if bitLen < 0 {
				continue
			}
			for _, input := range []*bitseq.BitSequence{
				randomBits(rng, bitLen),
				randomRunBits(rng, bitLen),
			} {
				compressed, finalBits := c.Encode(input)
				back, err := c.Decode(compressed, finalBits)
				require.NoError(t, err, "w=%d bitLen=%d", w, bitLen)
				require.True(t, input.Equal(back), "w=%d bitLen=%d input=%s", w, bitLen, input)
			}
		}
	}
}

func TestWAHCodec_RoundTrip_LargeRunHeavy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := NewWAHCodec(16)
	require.NoError(t, err)

	input := randomRunBits(rng, 100_000)
	compressed, finalBits := c.Encode(input)
	back, err := c.Decode(compressed, finalBits)
	require.NoError(t, err)
	require.True(t, input.Equal(back))
}

func TestWAHCodec_CompressionBenefitOnRuns(t *testing.T) {
	c, err := NewWAHCodec(8)
	require.NoError(t, err)

	// A single long run compresses to run counters, so doubling the run
	// length must not double the compressed size.
	short := bitseq.New()
	short.AppendRun(1, 7*63) // one full fill word
	long := bitseq.New()
	long.AppendRun(1, 7*63*8)

	shortOut, _ := c.Encode(short)
	longOut, _ := c.Encode(long)

	require.Equal(t, 8, shortOut.Len())
	require.Equal(t, 8*8, longOut.Len())
	require.Less(t, longOut.Len(), long.Len()/50)
}

func TestWAHCodec_ExpansionBound(t *testing.T) {
	// Incompressible input may grow by at most the marker bit per section.
	rng := rand.New(rand.NewSource(99))

	for _, w := range []uint{4, 8, 32} {
		c, err := NewWAHCodec(w)
		require.NoError(t, err)

		section := int(w) - 1
		input := randomBits(rng, section*128)

		compressed, _ := c.Encode(input)
		sections := input.Len() / section
		require.LessOrEqual(t, compressed.Len(), input.Len()+sections, "w=%d", w)
	}
}

func TestWAHCodec_Decode_Malformed(t *testing.T) {
	c, err := NewWAHCodec(4)
	require.NoError(t, err)

	t.Run("length not multiple of word size", func(t *testing.T) {
		_, err := c.Decode(mustBits(t, "01011"), 3)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("fill word with zero counter", func(t *testing.T) {
		_, err := c.Decode(mustBits(t, "1000"), 3)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("trailer for empty stream", func(t *testing.T) {
		_, err := c.Decode(bitseq.New(), 1)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("zero trailer for non-empty stream", func(t *testing.T) {
		_, err := c.Decode(mustBits(t, "0101"), 0)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("trailer wider than section", func(t *testing.T) {
		_, err := c.Decode(mustBits(t, "0101"), 4)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})
}

func TestWAHCodec_Decode_EmptyStream(t *testing.T) {
	c, err := NewWAHCodec(8)
	require.NoError(t, err)

	out, err := c.Decode(bitseq.New(), 0)
	require.NoError(t, err)
	require.Equal(t, 0, out.Len())
}

func TestWAHCodec_WordSizeTwo_AllLiterals(t *testing.T) {
	// At W=2 the fill counter field has zero bits, so fills are
	// unrepresentable and every section becomes a literal.
	c, err := NewWAHCodec(2)
	require.NoError(t, err)

	input := mustBits(t, "0000")
	compressed, finalBits := c.Encode(input)
	require.Equal(t, "00000000", compressed.String())
	require.Equal(t, uint(1), finalBits)

	back, err := c.Decode(compressed, finalBits)
	require.NoError(t, err)
	require.True(t, input.Equal(back))
}

func TestWAHCodec_CodecInterface(t *testing.T) {
	c, err := New(format.AlgorithmWAH, 8)
	require.NoError(t, err)
	require.Equal(t, format.AlgorithmWAH, c.Algorithm())

	input := bitseq.FromByteSlice([]byte{0x00, 0x00, 0x00, 0x42, 0xFF})
	compressed, err := c.Compress(input)
	require.NoError(t, err)
	require.Equal(t, input.Len(), compressed.BitLen)
	require.Equal(t, uint(8), compressed.WordSize)

	back, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.True(t, input.Equal(back))
}

func TestWAHCodec_Decompress_Mismatches(t *testing.T) {
	c, err := NewWAHCodec(8)
	require.NoError(t, err)

	input := bitseq.FromByteSlice([]byte{0xAB})
	compressed, err := c.Compress(input)
	require.NoError(t, err)

	t.Run("wrong algorithm", func(t *testing.T) {
		bad := *compressed
		bad.Algorithm = format.AlgorithmBBC
		_, err := c.Decompress(&bad)
		require.ErrorIs(t, err, errs.ErrUnknownAlgorithm)
	})

	t.Run("wrong word size", func(t *testing.T) {
		bad := *compressed
		bad.WordSize = 16
		_, err := c.Decompress(&bad)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})
}

func FuzzWAHRoundTrip(f *testing.F) {
	f.Add([]byte("Hello, world!"), uint8(8), uint16(104))
	f.Add([]byte{}, uint8(2), uint16(0))
	f.Add([]byte{0x00, 0x00, 0xFF, 0xFF}, uint8(31), uint16(30))

	f.Fuzz(func(t *testing.T, data []byte, wordSeed uint8, lenSeed uint16) {
		wordSize := uint(2 + int(wordSeed)%63)
		bitLen := int(lenSeed) % (len(data)*8 + 1)

		input, err := bitseq.FromBytes(data, bitLen)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}

		c, err := NewWAHCodec(wordSize)
		if err != nil {
			t.Fatalf("NewWAHCodec(%d): %v", wordSize, err)
		}

		compressed, finalBits := c.Encode(input)
		back, err := c.Decode(compressed, finalBits)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !input.Equal(back) {
			t.Fatalf("round trip mismatch: w=%d in=%s out=%s", wordSize, input, back)
		}
	})
}

func BenchmarkWAHCodec_Encode(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	input := randomRunBits(rng, 1<<16)
	c, _ := NewWAHCodec(32)

	for i := 0; i < b.N; i++ {
		_, _ = c.Encode(input)
	}
}

func BenchmarkWAHCodec_Decode(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	input := randomRunBits(rng, 1<<16)
	c, _ := NewWAHCodec(32)
	compressed, finalBits := c.Encode(input)

	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(compressed, finalBits)
	}
}
