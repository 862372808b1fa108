package catalog

import (
	"encoding/binary"

	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

// bRecordSize is the fixed-layout wire size of one archived Table B
// record: three FXY fields, scale, reference, data width (6 x 4 bytes),
// followed by six (offset,length) pairs into the shared string blob.
const bRecordSize = 6*4 + 6*8

func encodeBEntries(entries []tabentry.BEntry) (records, blob []byte) {
	records = make([]byte, len(entries)*bRecordSize)
	var blobBuf []byte

	putString := func(rec []byte, off int, s string) {
		start := uint32(len(blobBuf))
		blobBuf = append(blobBuf, s...)
		binary.BigEndian.PutUint32(rec[off:off+4], start)
		binary.BigEndian.PutUint32(rec[off+4:off+8], uint32(len(s)))
	}

	for i, e := range entries {
		rec := records[i*bRecordSize : (i+1)*bRecordSize]
		binary.BigEndian.PutUint32(rec[0:4], uint32(e.FXY.F))
		binary.BigEndian.PutUint32(rec[4:8], uint32(e.FXY.X))
		binary.BigEndian.PutUint32(rec[8:12], uint32(e.FXY.Y))
		binary.BigEndian.PutUint32(rec[12:16], uint32(e.Scale))
		binary.BigEndian.PutUint32(rec[16:20], uint32(e.ReferenceValue))
		binary.BigEndian.PutUint32(rec[20:24], e.DataWidthBits)

		putString(rec, 24, e.ClassNameEn)
		putString(rec, 32, e.ElementNameEn)
		putString(rec, 40, e.Unit)
		putString(rec, 48, e.NoteEn)
		putString(rec, 56, e.NoteIDs)
		putString(rec, 64, e.Status)
	}

	return records, blobBuf
}

func decodeBEntry(rec, blob []byte) tabentry.BEntry {
	getString := func(off int) string {
		start := binary.BigEndian.Uint32(rec[off : off+4])
		length := binary.BigEndian.Uint32(rec[off+4 : off+8])
		return string(blob[start : start+length])
	}

	return tabentry.BEntry{
		FXY: fxy.New(
			int(int32(binary.BigEndian.Uint32(rec[0:4]))),
			int(int32(binary.BigEndian.Uint32(rec[4:8]))),
			int(int32(binary.BigEndian.Uint32(rec[8:12]))),
		),
		Scale:          int32(binary.BigEndian.Uint32(rec[12:16])),
		ReferenceValue: int32(binary.BigEndian.Uint32(rec[16:20])),
		DataWidthBits:  binary.BigEndian.Uint32(rec[20:24]),
		ClassNameEn:    getString(24),
		ElementNameEn:  getString(32),
		Unit:           getString(40),
		NoteEn:         getString(48),
		NoteIDs:        getString(56),
		Status:         getString(64),
	}
}
