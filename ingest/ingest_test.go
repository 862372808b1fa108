package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/sleptworld/rbufr/fxy"
)

// buildV4Message assembles a minimal, well-formed edition-4 message with
// one descriptor and a one-byte data section.
func buildV4Message(t *testing.T) []byte {
	t.Helper()

	section1 := make([]byte, 22)
	section1[0], section1[1], section1[2] = 0, 0, 22
	section1[4], section1[5] = 0, 7
	section1[13] = 28
	section1[15], section1[16] = 0x07, 0xE8
	section1[17] = 1
	section1[18] = 1

	section3 := make([]byte, 7+2)
	section3[0], section3[1], section3[2] = 0, 0, 9
	section3[4], section3[5] = 0, 1
	word := fxy.New(0, 1, 1).ToUint16()
	section3[7] = byte(word >> 8)
	section3[8] = byte(word)

	section4 := []byte{0, 0, 5, 0, 0xAB}

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

func TestParsePlainFile(t *testing.T) {
	msg := buildV4Message(t)

	var combined bytes.Buffer
	combined.Write(msg)
	combined.Write(msg)

	file, err := Parse(bytes.NewReader(combined.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 2, file.Count())
}

func TestParseGzippedFile(t *testing.T) {
	msg := buildV4Message(t)

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err := w.Write(msg)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	file, err := Parse(bytes.NewReader(gz.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 1, file.Count())
}

func TestParseSkipsUnparsableMessage(t *testing.T) {
	good := buildV4Message(t)

	var combined bytes.Buffer
	combined.WriteString("BUFR")
	combined.Write([]byte{0, 0, 4})
	combined.WriteByte(4)
	combined.WriteString("junk")
	combined.Write(good)

	file, err := Parse(bytes.NewReader(combined.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 1, file.Count())
}

func TestParseFile(t *testing.T) {
	msg := buildV4Message(t)
	path := filepath.Join(t.TempDir(), "sample.bufr")
	require.NoError(t, os.WriteFile(path, msg, 0o644))

	file, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, file.Count())
}
