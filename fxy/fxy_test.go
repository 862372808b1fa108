package fxy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToUint32(t *testing.T) {
	for f := 0; f <= 3; f++ {
		for _, x := range []int{0, 1, 31, 63} {
			for _, y := range []int{0, 1, 128, 255} {
				k := New(f, x, y)
				want := (uint32(f) << 14) | (uint32(x) << 8) | uint32(y)
				require.Equal(t, want, k.ToUint32())
			}
		}
	}
}

func TestFromUint16RoundTrip(t *testing.T) {
	k := New(3, 21, 11)
	word := k.ToUint16()
	got := FromUint16(word)
	require.Equal(t, k, got)
}

func TestStringRoundTrip(t *testing.T) {
	k := New(0, 1, 1)
	s := k.String()
	require.Equal(t, "000101", s)

	back, err := Parse(s)
	require.NoError(t, err)
	require.Equal(t, k, back)
}

func TestParseInvalidLength(t *testing.T) {
	_, err := Parse("12345")
	require.Error(t, err)
}

func TestIsDelayedReplicationCount(t *testing.T) {
	require.True(t, New(0, 31, 1).IsDelayedReplicationCount())
	require.True(t, New(0, 31, 0).IsDelayedReplicationCount())
	require.False(t, New(1, 31, 1).IsDelayedReplicationCount())
	require.False(t, New(0, 30, 1).IsDelayedReplicationCount())
}
