package catalog

import (
	"encoding/binary"

	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

// dRecordSize is the fixed-layout wire size of one archived Table D
// record: three FXY fields plus a (offset,count) pair into the chain
// blob, followed by seven (offset,length) pairs into the string blob.
const dRecordSize = 3*4 + 2*4 + 7*8

func encodeDEntries(entries []tabentry.DEntry) (records, stringBlob, chainBlob []byte) {
	records = make([]byte, len(entries)*dRecordSize)
	var strBuf, chainBuf []byte

	putString := func(rec []byte, off int, s string) {
		start := uint32(len(strBuf))
		strBuf = append(strBuf, s...)
		binary.BigEndian.PutUint32(rec[off:off+4], start)
		binary.BigEndian.PutUint32(rec[off+4:off+8], uint32(len(s)))
	}

	for i, e := range entries {
		rec := records[i*dRecordSize : (i+1)*dRecordSize]
		binary.BigEndian.PutUint32(rec[0:4], uint32(e.FXY.F))
		binary.BigEndian.PutUint32(rec[4:8], uint32(e.FXY.X))
		binary.BigEndian.PutUint32(rec[8:12], uint32(e.FXY.Y))

		chainStart := uint32(len(chainBuf) / 2)
		for _, child := range e.Chain {
			var w [2]byte
			binary.BigEndian.PutUint16(w[:], child.ToUint16())
			chainBuf = append(chainBuf, w[:]...)
		}
		binary.BigEndian.PutUint32(rec[12:16], chainStart)
		binary.BigEndian.PutUint32(rec[16:20], uint32(len(e.Chain)))

		putString(rec, 20, e.Category)
		putString(rec, 28, e.CategoryOfSequencesEn)
		putString(rec, 36, e.TitleEn)
		putString(rec, 44, e.SubtitleEn)
		putString(rec, 52, e.NoteEn)
		putString(rec, 60, e.NoteIDs)
		putString(rec, 68, e.Status)
	}

	return records, strBuf, chainBuf
}

func decodeDEntry(rec, stringBlob, chainBlob []byte) tabentry.DEntry {
	getString := func(off int) string {
		start := binary.BigEndian.Uint32(rec[off : off+4])
		length := binary.BigEndian.Uint32(rec[off+4 : off+8])
		return string(stringBlob[start : start+length])
	}

	chainStart := binary.BigEndian.Uint32(rec[12:16])
	chainCount := binary.BigEndian.Uint32(rec[16:20])
	chain := make([]fxy.FXY, chainCount)
	for i := uint32(0); i < chainCount; i++ {
		off := (chainStart + i) * 2
		word := binary.BigEndian.Uint16(chainBlob[off : off+2])
		chain[i] = fxy.FromUint16(word)
	}

	return tabentry.DEntry{
		FXY: fxy.New(
			int(int32(binary.BigEndian.Uint32(rec[0:4]))),
			int(int32(binary.BigEndian.Uint32(rec[4:8]))),
			int(int32(binary.BigEndian.Uint32(rec[8:12]))),
		),
		Chain:                 chain,
		Category:              getString(20),
		CategoryOfSequencesEn: getString(28),
		TitleEn:               getString(36),
		SubtitleEn:            getString(44),
		NoteEn:                getString(52),
		NoteIDs:               getString(60),
		Status:                getString(68),
	}
}
