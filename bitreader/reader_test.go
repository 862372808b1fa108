package bitreader

import (
	"testing"

	"github.com/sleptworld/rbufr/errs"
	"github.com/stretchr/testify/require"
)

// packBits packs (value, width) pairs MSB-first into a byte slice,
// zero-padding the final byte.
func packBits(t *testing.T, pairs [][2]int) []byte {
	t.Helper()

	var bits []byte
	for _, p := range pairs {
		value, width := p[0], p[1]
		for i := width - 1; i >= 0; i-- {
			bits = append(bits, byte((value>>uint(i))&1))
		}
	}

	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b == 1 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func TestGetBitsRoundTrip(t *testing.T) {
	pairs := [][2]int{{7, 7}, {0, 1}, {1, 1}, {65535, 16}, {3, 2}, {123456789, 40}}
	data := packBits(t, pairs)

	r := New(data)
	for _, p := range pairs {
		got, err := r.GetBits(p[1])
		require.NoError(t, err)
		require.Equal(t, uint64(p[0]), got)
	}
}

func TestGetBitsAlignedWidths(t *testing.T) {
	data := []byte{0xAB, 0xCD, 0xEF, 0x01, 0x02, 0x03}
	r := New(data)

	v8, err := r.GetBits(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0xAB), v8)

	v16, err := r.GetBits(16)
	require.NoError(t, err)
	require.Equal(t, uint64(0xCDEF), v16)

	v24, err := r.GetBits(24)
	require.NoError(t, err)
	require.Equal(t, uint64(0x010203), v24)
}

func TestGetBitsUnderflow(t *testing.T) {
	r := New([]byte{0x01})
	_, err := r.GetBits(16)
	require.ErrorIs(t, err, errs.ErrUnderflow)
}

func TestTakeStringAligned(t *testing.T) {
	r := New([]byte("hello"))
	s, err := r.TakeString(5)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestTakeStringUnaligned(t *testing.T) {
	// 4 bits of padding, then "hi" byte-unaligned.
	data := packBits(t, [][2]int{{0, 4}, {int('h'), 8}, {int('i'), 8}})
	r := New(data)
	_, err := r.GetBits(4)
	require.NoError(t, err)

	s, err := r.TakeString(2)
	require.NoError(t, err)
	require.Equal(t, "hi", s)
}

func TestGetBatchSameWidth(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}
	r := New(data)
	got, err := r.GetBatchSameWidth(16, 3)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, got)
}

func TestGetBatchSameWidthUnaligned(t *testing.T) {
	pairs := [][2]int{{0, 4}, {1, 7}, {2, 7}, {3, 7}}
	data := packBits(t, pairs)
	r := New(data)
	_, err := r.GetBits(4)
	require.NoError(t, err)

	got, err := r.GetBatchSameWidth(7, 3)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3}, got)
}

func TestGetBitsUnalignedNinthByte(t *testing.T) {
	// Widths wide enough that, for most offset/width pairs, the window
	// spans a 9th byte (offset+n > 64); the rest (e.g. n=57 at any offset)
	// exercise the 8-byte path at its upper end. Only the final bit of the
	// window is set, so a correct decode always yields 1.
	for offset := 1; offset <= 7; offset++ {
		for _, n := range []int{57, 60, 63, 64} {
			data := packBits(t, [][2]int{{0, offset}, {1, n}})
			r := New(data)

			_, err := r.GetBits(offset)
			require.NoError(t, err)

			got, err := r.GetBits(n)
			require.NoError(t, err, "offset=%d n=%d", offset, n)
			require.Equal(t, uint64(1), got, "offset=%d n=%d", offset, n)
		}
	}
}

func TestMissingAllOnesPattern(t *testing.T) {
	// All-ones at 7 bits is the Missing sentinel per the decoder's rule.
	data := packBits(t, [][2]int{{0x7F, 7}})
	r := New(data)
	v, err := r.GetBits(7)
	require.NoError(t, err)
	require.Equal(t, uint64((1<<7)-1), v)
}
