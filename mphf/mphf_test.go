package mphf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAssignsDistinctSlots(t *testing.T) {
	keys := make([]uint64, 0, 200)
	for i := 0; i < 200; i++ {
		keys = append(keys, uint64(i)*97+13)
	}

	f, err := Build(keys)
	require.NoError(t, err)

	seen := make(map[uint32]bool, len(keys))
	for _, k := range keys {
		slot := f.Get(k)
		require.Less(t, int(slot), f.Len())
		require.False(t, seen[slot], "slot %d assigned twice", slot)
		seen[slot] = true
	}
	require.Len(t, seen, len(keys))
}

func TestMarshalRoundTrip(t *testing.T) {
	keys := []uint64{10, 20, 30, 40, 50}
	f, err := Build(keys)
	require.NoError(t, err)

	buf := f.Marshal()
	back, err := Unmarshal(buf)
	require.NoError(t, err)

	for _, k := range keys {
		require.Equal(t, f.Get(k), back.Get(k))
	}
}

func TestEmptyKeySet(t *testing.T) {
	f, err := Build(nil)
	require.NoError(t, err)
	require.Equal(t, 0, f.Len())
}
