package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

func sampleBEntries() []tabentry.BEntry {
	return []tabentry.BEntry{
		{FXY: fxy.New(0, 1, 1), ElementNameEn: "WMO block number", Unit: "numeric", Scale: 0, ReferenceValue: 0, DataWidthBits: 7},
		{FXY: fxy.New(0, 1, 2), ElementNameEn: "WMO station number", Unit: "numeric", Scale: 0, ReferenceValue: 0, DataWidthBits: 10},
		{FXY: fxy.New(0, 7, 1), ElementNameEn: "Height of station", Unit: "m", Scale: 0, ReferenceValue: -400, DataWidthBits: 15},
		{FXY: fxy.New(0, 31, 1), ElementNameEn: "Delayed descriptor replication factor", Unit: "numeric", DataWidthBits: 8},
	}
}

func TestBCatalogBuildLoadGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tableb.archive")
	entries := sampleBEntries()
	require.NoError(t, BuildB(path, entries))

	cat, err := LoadB(path)
	require.NoError(t, err)
	defer cat.Close()

	for _, want := range entries {
		got, ok := cat.Get(want.FXY)
		require.True(t, ok)
		require.Equal(t, want.ElementNameEn, got.ElementNameEn)
		require.Equal(t, want.ReferenceValue, got.ReferenceValue)
	}
}

func TestBCatalogGetUnknownKeyReportsMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tableb.archive")
	require.NoError(t, BuildB(path, sampleBEntries()))

	cat, err := LoadB(path)
	require.NoError(t, err)
	defer cat.Close()

	_, ok := cat.Get(fxy.New(0, 99, 99))
	require.False(t, ok)
}

func TestBCatalogGetAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tableb.archive")
	entries := sampleBEntries()
	require.NoError(t, BuildB(path, entries))

	cat, err := LoadB(path)
	require.NoError(t, err)
	defer cat.Close()

	require.Len(t, cat.GetAll(), len(entries))
}

func sampleDEntries() []tabentry.DEntry {
	return []tabentry.DEntry{
		{
			FXY:      fxy.New(3, 1, 1),
			Chain:    []fxy.FXY{fxy.New(0, 1, 1), fxy.New(0, 1, 2)},
			TitleEn:  "Station identification",
			Category: "01",
		},
		{
			FXY:      fxy.New(3, 1, 11),
			Chain:    []fxy.FXY{fxy.New(0, 4, 1), fxy.New(0, 4, 2), fxy.New(0, 4, 3)},
			TitleEn:  "Date",
			Category: "01",
		},
	}
}

func TestDCatalogBuildLoadGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabled.archive")
	entries := sampleDEntries()
	require.NoError(t, BuildD(path, entries))

	cat, err := LoadD(path)
	require.NoError(t, err)
	defer cat.Close()

	for _, want := range entries {
		got, ok := cat.Get(want.FXY)
		require.True(t, ok)
		require.Equal(t, want.Chain, got.Chain)
		require.Equal(t, want.TitleEn, got.TitleEn)
	}
}

func TestDCatalogGetUnknownKeyReportsMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabled.archive")
	require.NoError(t, BuildD(path, sampleDEntries()))

	cat, err := LoadD(path)
	require.NoError(t, err)
	defer cat.Close()

	_, ok := cat.Get(fxy.New(3, 63, 255))
	require.False(t, ok)
}
