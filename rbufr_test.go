package rbufr

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sleptworld/rbufr/catalog"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

// buildV4Message assembles a minimal, well-formed edition-4 message with
// one descriptor and a one-byte data section.
func buildV4Message(t *testing.T) []byte {
	t.Helper()

	section1 := make([]byte, 22)
	section1[0], section1[1], section1[2] = 0, 0, 22
	section1[4], section1[5] = 0, 7
	section1[13] = 0
	section1[15], section1[16] = 0x07, 0xE8
	section1[17] = 1
	section1[18] = 1

	section3 := make([]byte, 7+2)
	section3[0], section3[1], section3[2] = 0, 0, 9
	section3[4], section3[5] = 0, 1
	word := fxy.New(0, 1, 1).ToUint16()
	section3[7] = byte(word >> 8)
	section3[8] = byte(word)

	section4 := []byte{0, 0, 5, 0, 7} // one data byte; the 7-bit 0-01-001 element reads its top 7 bits (raw=3)

	var buf bytes.Buffer
	buf.WriteString("BUFR")
	total := 8 + len(section1) + len(section3) + len(section4) + 4
	buf.Write([]byte{byte(total >> 16), byte(total >> 8), byte(total)})
	buf.WriteByte(4)
	buf.Write(section1)
	buf.Write(section3)
	buf.Write(section4)
	buf.WriteString("7777")

	return buf.Bytes()
}

func TestParseAndDecode(t *testing.T) {
	tablesDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tablesDir, "master"), 0o755))

	entries := []tabentry.BEntry{{
		FXY:            fxy.New(0, 1, 1),
		ElementNameEn:  "WMO block number",
		Unit:           "Numeric",
		Scale:          0,
		ReferenceValue: 0,
		DataWidthBits:  7,
	}}
	require.NoError(t, catalog.BuildB(filepath.Join(tablesDir, "master", "BUFR_TableB_0.bufrtbl"), entries))
	require.NoError(t, catalog.BuildD(filepath.Join(tablesDir, "master", "BUFR_TableD_0.bufrtbl"), nil))

	data := buildV4Message(t)

	file, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, 1, file.Count())

	parsed, err := Decode(file.At(0), tablesDir)
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Count())
}
