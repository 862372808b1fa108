package message

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sleptworld/rbufr/fxy"
)

// buildV4Message assembles a minimal, well-formed edition-4 message with
// one descriptor and a one-byte data section, for framing/parsing tests.
func buildV4Message(t *testing.T) []byte {
	t.Helper()

	section1 := make([]byte, 22)
	section1[0], section1[1], section1[2] = 0, 0, 22 // length = 22
	section1[3] = 0                                   // master table
	section1[4], section1[5] = 0, 7                   // centre
	section1[6], section1[7] = 0, 0                   // subcentre
	section1[8] = 1                                   // update sequence
	section1[9] = 0                                   // flags, no section 2
	section1[10] = 0                                  // data category
	section1[11] = 0                                  // intl subcategory
	section1[12] = 0                                  // local subcategory
	section1[13] = 28                                 // master table version
	section1[14] = 0                                  // local table version
	section1[15], section1[16] = 0x07, 0xE8           // year 2024
	section1[17] = 1                                  // month
	section1[18] = 1                                  // day
	section1[19] = 0                                  // hour
	section1[20] = 0                                  // minute
	section1[21] = 0                                  // second

	section3 := make([]byte, 7+2)
	section3[0], section3[1], section3[2] = 0, 0, 9 // length = 9
	section3[3] = 0                                 // reserved
	section3[4], section3[5] = 0, 1                 // 1 subset
	section3[6] = 0                                 // flags
	word := fxy.New(0, 1, 1).ToUint16()
	section3[7] = byte(word >> 8)
	section3[8] = byte(word)

	section4 := []byte{0, 0, 5, 0, 0xAB} // length=5, reserved, 1 data byte

	var buf bytes.Buffer
	buf.WriteString("BUFR")
	total := 8 + len(section1) + len(section3) + len(section4) + 4
	buf.Write([]byte{byte(total >> 16), byte(total >> 8), byte(total)})
	buf.WriteByte(4) // edition
	buf.Write(section1)
	buf.Write(section3)
	buf.Write(section4)
	buf.WriteString("7777")

	return buf.Bytes()
}

func TestParseV4Message(t *testing.T) {
	data := buildV4Message(t)

	msg, err := Parse(data)
	require.NoError(t, err)
	require.EqualValues(t, 4, msg.Edition())
	require.EqualValues(t, 7, msg.CentreID())
	require.EqualValues(t, 28, msg.MasterTableVersion())
	require.Nil(t, msg.Section2)

	descs, err := msg.Descriptors()
	require.NoError(t, err)
	require.Equal(t, []fxy.FXY{fxy.New(0, 1, 1)}, descs)

	require.Equal(t, []byte{0xAB}, msg.DataBlock())
}

func TestParseRejectsUnsupportedEdition(t *testing.T) {
	data := buildV4Message(t)
	data[7] = 9 // mutate edition byte

	_, err := Parse(data)
	require.Error(t, err)
}

func TestParseDescriptorsOddLength(t *testing.T) {
	_, err := ParseDescriptors([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestFindOffsetsAcrossChunkBoundary(t *testing.T) {
	data := buildV4Message(t)
	// Pad so the first marker straddles the end of the first bufferSize-byte read.
	lead := bufferSize - 2
	padded := append(append(make([]byte, lead), data...), data...)

	offsets, err := FindOffsets(bytes.NewReader(padded))
	require.NoError(t, err)
	require.Equal(t, []int64{int64(lead), int64(lead + len(data))}, offsets)
}

func TestReadMessageAtTruncatedTail(t *testing.T) {
	data := buildV4Message(t)
	truncated := data[:len(data)-2]

	_, err := ReadMessageAt(bytes.NewReader(truncated), 0)
	require.Error(t, err)
}
