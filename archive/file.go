// Package archive implements the on-disk container format backing the
// table catalog (C4): a validated header, a serialized minimal perfect
// hash function, and a payload blob of archived entries stored in the
// MPHF's hash order, all accessed through a memory-mapped file so that
// loading a table never requires reading it fully into the heap.
//
// # Basic Usage
//
//	if err := archive.Create(path, entryCount, mphfBytes, payload); err != nil { ... }
//	f, err := archive.Open(path)
//	defer f.Close()
//	mphfBytes := f.MPHFBytes()
//	payload := f.Payload()
//
// # Thread Safety
//
// An opened File is immutable and safe for concurrent reads from any
// number of goroutines — multiple decoders may share one loaded catalog.
package archive

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/edsrzf/mmap-go"
)

const (
	magic       = "RBUFRTB1"
	headerBytes = 8 + 4 + 4 + 4 + 4 + 4 // magic + version + entryCount + mphfLen + payloadLen + checksum
	version     = 1
)

// File is an opened, memory-mapped archive.
type File struct {
	m          mmap.MMap
	entryCount uint32
	mphfLen    uint32
	payloadLen uint32
}

// Create writes a new archive file containing mphfBytes and payload.
// The header records entryCount, which Open reads back for EntryCount
// without comparing it to the MPHF or the payload.
func Create(path string, entryCount uint32, mphfBytes, payload []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("archive: creating %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, headerBytes)
	copy(header[0:8], magic)
	binary.BigEndian.PutUint32(header[8:12], version)
	binary.BigEndian.PutUint32(header[12:16], entryCount)
	binary.BigEndian.PutUint32(header[16:20], uint32(len(mphfBytes)))
	binary.BigEndian.PutUint32(header[20:24], uint32(len(payload)))

	checksum := crc32.ChecksumIEEE(append(append([]byte{}, mphfBytes...), payload...))
	binary.BigEndian.PutUint32(header[24:28], checksum)

	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("archive: writing header: %w", err)
	}
	if _, err := f.Write(mphfBytes); err != nil {
		return fmt.Errorf("archive: writing mphf: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("archive: writing payload: %w", err)
	}

	return nil
}

// Open memory-maps path and checks its magic, section lengths and
// checksum. The header's version field is not checked.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("archive: mapping %s: %w", path, err)
	}

	if len(m) < headerBytes {
		m.Unmap()
		return nil, fmt.Errorf("archive: %s too small to contain a header", path)
	}
	if string(m[0:8]) != magic {
		m.Unmap()
		return nil, fmt.Errorf("archive: %s has bad magic", path)
	}

	entryCount := binary.BigEndian.Uint32(m[12:16])
	mphfLen := binary.BigEndian.Uint32(m[16:20])
	payloadLen := binary.BigEndian.Uint32(m[20:24])
	wantChecksum := binary.BigEndian.Uint32(m[24:28])

	if uint32(len(m)) != uint32(headerBytes)+mphfLen+payloadLen {
		m.Unmap()
		return nil, fmt.Errorf("archive: %s has inconsistent section lengths", path)
	}

	gotChecksum := crc32.ChecksumIEEE(m[headerBytes:])
	if gotChecksum != wantChecksum {
		m.Unmap()
		return nil, fmt.Errorf("archive: %s failed integrity check", path)
	}

	return &File{m: m, entryCount: entryCount, mphfLen: mphfLen, payloadLen: payloadLen}, nil
}

// EntryCount returns the number of entries the archive was built with.
func (f *File) EntryCount() uint32 { return f.entryCount }

// MPHFBytes returns the serialized minimal perfect hash function, a
// zero-copy view into the mapped file.
func (f *File) MPHFBytes() []byte {
	return f.m[headerBytes : headerBytes+f.mphfLen]
}

// Payload returns the entry payload blob, a zero-copy view into the
// mapped file.
func (f *File) Payload() []byte {
	start := headerBytes + f.mphfLen
	return f.m[start : start+f.payloadLen]
}

// Close unmaps the underlying file.
func (f *File) Close() error {
	return f.m.Unmap()
}
