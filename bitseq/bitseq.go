// Package bitseq provides the ordered bit-sequence substrate the bix codecs
// read from and write to.
//
// A BitSequence is a 0-indexed, appendable sequence of bits backed by a byte
// slice. Bits are packed MSB-first within each byte, so bit 0 of the sequence
// is the highest-order bit of the first byte. The sequence always knows its
// exact bit length; the zero padding in the final backing byte is never
// visible through the API.
//
// # Usage
//
//	bs := bitseq.New()
//	bs.AppendUint(0b10110, 5)
//	bs.Append(1)
//	fmt.Println(bs.String()) // "101101"
//
// Random access is O(1), Append is amortized O(1), and Slice returns an
// independent copy of the requested range.
//
// # Thread Safety
//
// A BitSequence is not safe for concurrent mutation. Distinct sequences may
// be used from distinct goroutines without synchronization.
package bitseq

import (
	"fmt"
	"strings"

	"github.com/arloliu/bix/errs"
)

// BitSequence is an ordered, indexable, appendable sequence of bits.
//
// The zero value is not ready for use; construct instances with New,
// WithCapacity, FromBytes or FromString.
type BitSequence struct {
	buf    []byte
	bitLen int
}

// New creates an empty BitSequence.
func New() *BitSequence {
	return &BitSequence{}
}

// WithCapacity creates an empty BitSequence with backing storage preallocated
// for the given number of bits. Useful when the output size is known ahead of
// time, e.g. codec output buffers.
func WithCapacity(bits int) *BitSequence {
	if bits < 0 {
		bits = 0
	}

	return &BitSequence{buf: make([]byte, 0, (bits+7)/8)}
}

// FromBytes creates a BitSequence from a raw byte buffer holding bitLen bits,
// MSB-first within each byte. The buffer must contain at least ceil(bitLen/8)
// bytes; extra bytes are ignored. The input is copied, so the caller may
// reuse data afterwards.
//
// Returns errs.ErrOutOfRange if bitLen is negative or exceeds the buffer.
func FromBytes(data []byte, bitLen int) (*BitSequence, error) {
	if bitLen < 0 || bitLen > len(data)*8 {
		return nil, fmt.Errorf("%w: bit length %d for %d-byte buffer", errs.ErrOutOfRange, bitLen, len(data))
	}

	byteLen := (bitLen + 7) / 8
	bs := &BitSequence{
		buf:    make([]byte, byteLen),
		bitLen: bitLen,
	}
	copy(bs.buf, data[:byteLen])

	// Zero the padding so Equal and Bytes stay canonical regardless of what
	// the caller left in the unused low-order bits of the final byte.
	if rem := bitLen % 8; rem != 0 {
		bs.buf[byteLen-1] &= ^byte(0) << (8 - rem)
	}

	return bs, nil
}

// FromByteSlice creates a BitSequence covering every bit of data, in order.
// It is shorthand for FromBytes(data, len(data)*8).
func FromByteSlice(data []byte) *BitSequence {
	bs, _ := FromBytes(data, len(data)*8)
	return bs
}

// FromString parses an ASCII binary string of '0' and '1' characters,
// most-significant bit first, into a BitSequence.
func FromString(s string) (*BitSequence, error) {
	bs := WithCapacity(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bs.Append(0)
		case '1':
			bs.Append(1)
		default:
			return nil, fmt.Errorf("invalid bit character %q at position %d", s[i], i)
		}
	}

	return bs, nil
}

// Len returns the number of bits in the sequence.
func (bs *BitSequence) Len() int {
	return bs.bitLen
}

// Get returns the bit at index i as 0 or 1.
//
// Returns errs.ErrOutOfRange if i is negative or i >= Len().
func (bs *BitSequence) Get(i int) (byte, error) {
	if i < 0 || i >= bs.bitLen {
		return 0, fmt.Errorf("%w: index %d, length %d", errs.ErrOutOfRange, i, bs.bitLen)
	}

	return bs.bit(i), nil
}

// MustGet returns the bit at index i, panicking if i is out of range.
// Intended for hot paths that have already validated their bounds.
func (bs *BitSequence) MustGet(i int) byte {
	if i < 0 || i >= bs.bitLen {
		panic(fmt.Sprintf("bitseq: MustGet index %d out of range [0, %d)", i, bs.bitLen))
	}

	return bs.bit(i)
}

func (bs *BitSequence) bit(i int) byte {
	return (bs.buf[i>>3] >> (7 - uint(i&7))) & 1
}

// Append extends the sequence by one bit. Any non-zero value is stored as 1.
func (bs *BitSequence) Append(bit byte) {
	if bs.bitLen&7 == 0 {
		bs.buf = append(bs.buf, 0)
	}
	if bit != 0 {
		bs.buf[bs.bitLen>>3] |= 1 << (7 - uint(bs.bitLen&7))
	}
	bs.bitLen++
}

// AppendRun appends n copies of bit. It is equivalent to calling Append n
// times but fills whole bytes at once once the write position is aligned.
func (bs *BitSequence) AppendRun(bit byte, n int) {
	if n <= 0 {
		return
	}

	// Head: single bits until byte-aligned.
	for n > 0 && bs.bitLen&7 != 0 {
		bs.Append(bit)
		n--
	}

	// Body: whole bytes.
	var fill byte
	if bit != 0 {
		fill = 0xFF
	}
	for ; n >= 8; n -= 8 {
		bs.buf = append(bs.buf, fill)
		bs.bitLen += 8
	}

	// Tail.
	for ; n > 0; n-- {
		bs.Append(bit)
	}
}

// AppendUint appends the low width bits of v, most-significant bit first.
// width must be in [0, 64]; wider requests panic.
func (bs *BitSequence) AppendUint(v uint64, width int) {
	if width < 0 || width > 64 {
		panic(fmt.Sprintf("bitseq: AppendUint width %d out of range [0, 64]", width))
	}

	for i := width - 1; i >= 0; i-- {
		bs.Append(byte(v>>uint(i)) & 1)
	}
}

// AppendByte appends all 8 bits of b, most-significant bit first.
func (bs *BitSequence) AppendByte(b byte) {
	bs.AppendUint(uint64(b), 8)
}

// Uint reads width bits starting at index start as an unsigned integer,
// most-significant bit first. width must be in [0, 64].
//
// Returns errs.ErrOutOfRange if the range [start, start+width) is not fully
// contained in the sequence.
func (bs *BitSequence) Uint(start, width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("%w: field width %d", errs.ErrOutOfRange, width)
	}
	if start < 0 || start+width > bs.bitLen {
		return 0, fmt.Errorf("%w: field [%d, %d), length %d", errs.ErrOutOfRange, start, start+width, bs.bitLen)
	}

	var v uint64
	for i := 0; i < width; i++ {
		v = v<<1 | uint64(bs.bit(start+i))
	}

	return v, nil
}

// RunLength returns the length of the maximal run of identical bits starting
// at index start. Returns 0 if start is at or beyond the end of the sequence.
func (bs *BitSequence) RunLength(start int) int {
	if start < 0 || start >= bs.bitLen {
		return 0
	}

	v := bs.bit(start)
	i := start + 1

	// Bit-by-bit until byte-aligned.
	for i < bs.bitLen && i&7 != 0 {
		if bs.bit(i) != v {
			return i - start
		}
		i++
	}

	// Whole bytes. The final, possibly partial byte is excluded since its
	// padding bits must not count toward the run.
	var fill byte
	if v != 0 {
		fill = 0xFF
	}
	for i+8 <= bs.bitLen && bs.buf[i>>3] == fill {
		i += 8
	}

	for i < bs.bitLen && bs.bit(i) == v {
		i++
	}

	return i - start
}

// Slice returns an independent copy of the half-open bit range [start, end).
//
// Returns errs.ErrOutOfRange if the bounds are invalid.
func (bs *BitSequence) Slice(start, end int) (*BitSequence, error) {
	if start < 0 || end < start || end > bs.bitLen {
		return nil, fmt.Errorf("%w: slice [%d, %d), length %d", errs.ErrOutOfRange, start, end, bs.bitLen)
	}

	out := WithCapacity(end - start)
	for i := start; i < end; i++ {
		out.Append(bs.bit(i))
	}

	return out, nil
}

// Truncate shortens the sequence to n bits, discarding everything after
// index n-1. Used by decoders to trim zero padding once the true bit length
// is known.
//
// Returns errs.ErrOutOfRange if n is negative or greater than Len().
func (bs *BitSequence) Truncate(n int) error {
	if n < 0 || n > bs.bitLen {
		return fmt.Errorf("%w: truncate to %d, length %d", errs.ErrOutOfRange, n, bs.bitLen)
	}

	bs.buf = bs.buf[:(n+7)/8]
	bs.bitLen = n

	// Re-zero the padding in the new final byte so the representation stays
	// canonical for Equal and Bytes.
	if rem := n % 8; rem != 0 {
		bs.buf[len(bs.buf)-1] &= ^byte(0) << (8 - rem)
	}

	return nil
}

// Bytes returns a copy of the backing bytes, ceil(Len()/8) of them, with any
// unused low-order bits of the final byte set to zero. The copy keeps codec
// output and caller buffers independent.
func (bs *BitSequence) Bytes() []byte {
	out := make([]byte, len(bs.buf))
	copy(out, bs.buf)

	return out
}

// Clone returns an independent copy of the sequence.
func (bs *BitSequence) Clone() *BitSequence {
	return &BitSequence{buf: bs.Bytes(), bitLen: bs.bitLen}
}

// Equal reports whether two sequences hold the same bits in the same order.
func (bs *BitSequence) Equal(other *BitSequence) bool {
	if other == nil || bs.bitLen != other.bitLen {
		return false
	}
	for i := range bs.buf {
		if bs.buf[i] != other.buf[i] {
			return false
		}
	}

	return true
}

// String renders the sequence as an ASCII binary string, one '0' or '1' per
// bit, most-significant bit first. Inverse of FromString.
func (bs *BitSequence) String() string {
	var b strings.Builder
	b.Grow(bs.bitLen)
	for i := 0; i < bs.bitLen; i++ {
		b.WriteByte('0' + bs.bit(i))
	}

	return b.String()
}
