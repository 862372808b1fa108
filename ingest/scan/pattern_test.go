package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWMOPattern(t *testing.T) {
	p := newWMOPattern()

	meta, ok := p.Match("BUFRCREX_TableB_en_35.csv")
	require.True(t, ok)
	require.Equal(t, KindB, meta.Kind)
	require.Equal(t, uint32(35), meta.Version)
	require.Equal(t, "en", meta.Language)
	require.False(t, meta.IsLocal)

	meta, ok = p.Match("BUFR_TableD_en_40.csv")
	require.True(t, ok)
	require.Equal(t, KindD, meta.Kind)
	require.Equal(t, uint32(40), meta.Version)

	_, ok = p.Match("BUFRCREX_TableB_35.csv")
	require.False(t, ok)
	_, ok = p.Match("TableB_en_35.csv")
	require.False(t, ok)
}

func TestLocalPattern(t *testing.T) {
	p := newLocalPattern()

	meta, ok := p.Match("localtabb_85_20.csv")
	require.True(t, ok)
	require.Equal(t, KindB, meta.Kind)
	require.Equal(t, uint32(85), meta.Subcenter)
	require.Equal(t, uint32(20), meta.Version)
	require.True(t, meta.IsLocal)

	meta, ok = p.Match("localtabd_100_5.csv")
	require.True(t, ok)
	require.Equal(t, KindD, meta.Kind)
	require.Equal(t, uint32(100), meta.Subcenter)
	require.Equal(t, uint32(5), meta.Version)

	_, ok = p.Match("local_table_85_20.csv")
	require.False(t, ok)
	_, ok = p.Match("localtabb_85.csv")
	require.False(t, ok)
}

func TestOldMasterPattern(t *testing.T) {
	p := newOldMasterPattern()

	meta, ok := p.Match("bufrtabb_14.csv")
	require.True(t, ok)
	require.Equal(t, KindB, meta.Kind)
	require.Equal(t, uint32(14), meta.Version)
	require.False(t, meta.IsLocal)
}

func TestCustomPattern(t *testing.T) {
	p := newCustomPattern()

	meta, ok := p.Match("test_c7_sc85_tableb_v20.csv")
	require.True(t, ok)
	require.Equal(t, KindB, meta.Kind)
	require.Equal(t, uint32(7), meta.Center)
	require.Equal(t, uint32(85), meta.Subcenter)
	require.Equal(t, uint32(20), meta.Version)
	require.True(t, meta.IsLocal)

	meta, ok = p.Match("data_center_7_scenter_85_tabled_10.csv")
	require.True(t, ok)
	require.Equal(t, KindD, meta.Kind)
	require.Equal(t, uint32(7), meta.Center)
	require.Equal(t, uint32(85), meta.Subcenter)
	require.Equal(t, uint32(10), meta.Version)
}

func TestOutputNameGeneration(t *testing.T) {
	meta := Metadata{Kind: KindB, Version: 14, IsLocal: false}
	require.Equal(t, "BUFR_TableB_14", meta.OutputName())

	meta = Metadata{Kind: KindD, Version: 40, IsLocal: false}
	require.Equal(t, "BUFR_TableD_40", meta.OutputName())

	meta = Metadata{Kind: KindB, Version: 14, Subcenter: 1, HasSub: true, IsLocal: true}
	require.Equal(t, "BUFR_TableB_1_14", meta.OutputName())

	meta = Metadata{Kind: KindB, Version: 20, Subcenter: 85, HasSub: true, IsLocal: true}
	require.Equal(t, "BUFR_TableB_85_20", meta.OutputName())
}

func TestScannerMatchFilename(t *testing.T) {
	s := New()

	meta, ok := s.MatchFilename("BUFRCREX_TableB_en_35.csv")
	require.True(t, ok)
	require.Equal(t, KindB, meta.Kind)
	require.False(t, meta.IsLocal)

	meta, ok = s.MatchFilename("localtabb_85_20.csv")
	require.True(t, ok)
	require.True(t, meta.IsLocal)

	meta, ok = s.MatchFilename("test_c7_sc85_tableb_v20.csv")
	require.True(t, ok)
	require.True(t, meta.IsLocal)
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"BUFR_TableB_en_35.csv",
		"localtabd_7_2.csv",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	s := New()
	matches, err := s.ScanDirectory(dir, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	bKind := KindB
	filtered, err := s.ScanDirectory(dir, &bKind)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "BUFR_TableB_en_35.csv", filepath.Base(filtered[0].Path))
}
