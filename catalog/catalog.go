// Package catalog implements C4: MPHF-backed Table B and Table D
// catalogs. Each catalog is a minimal perfect hash function over its
// entries' FXY keys paired with a fixed-layout payload blob, both
// stored in a single memory-mapped archive file.
//
// A minimal perfect hash function has no notion of "key not present":
// querying it for any uint64 returns a slot in range. A catalog must
// therefore re-check the FXY stored at the returned slot against the
// key the caller asked for before returning a hit — this is the
// equality filter invariants P1 and P2 require, and it lives here, in
// Get, rather than in a caller-side wrapper.
//
// # Basic Usage
//
//	cat, err := catalog.LoadB(path)
//	defer cat.Close()
//	entry, ok := cat.Get(fxy.New(0, 7, 1))
package catalog

import (
	"encoding/binary"
	"fmt"

	"github.com/sleptworld/rbufr/archive"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/mphf"
	"github.com/sleptworld/rbufr/tabentry"
)

// BCatalog is a loaded Table B (element) catalog.
type BCatalog struct {
	file    *archive.File
	hash    *mphf.MPHF
	records []byte
	blob    []byte
}

// BuildB constructs a new Table B archive file from entries.
func BuildB(path string, entries []tabentry.BEntry) error {
	keys := make([]uint64, len(entries))
	for i, e := range entries {
		keys[i] = uint64(e.FXY.ToUint32())
	}
	h, err := mphf.Build(keys)
	if err != nil {
		return fmt.Errorf("catalog: building Table B hash: %w", err)
	}

	slotted := make([]tabentry.BEntry, h.Len())
	for i, e := range entries {
		slotted[h.Get(keys[i])] = e
	}

	records, blob := encodeBEntries(slotted)

	payload := make([]byte, 4+len(records)+len(blob))
	binary.BigEndian.PutUint32(payload[0:4], uint32(len(records)))
	copy(payload[4:], records)
	copy(payload[4+len(records):], blob)

	if err := archive.Create(path, uint32(len(entries)), h.Marshal(), payload); err != nil {
		return fmt.Errorf("catalog: writing Table B archive: %w", err)
	}
	return nil
}

// LoadB opens a Table B archive previously built by BuildB.
func LoadB(path string) (*BCatalog, error) {
	f, err := archive.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening Table B archive: %w", err)
	}

	h, err := mphf.Unmarshal(f.MPHFBytes())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("catalog: reading Table B hash: %w", err)
	}

	payload := f.Payload()
	if len(payload) < 4 {
		f.Close()
		return nil, fmt.Errorf("catalog: Table B payload truncated")
	}
	recordsLen := binary.BigEndian.Uint32(payload[0:4])
	records := payload[4 : 4+recordsLen]
	blob := payload[4+recordsLen:]

	return &BCatalog{file: f, hash: h, records: records, blob: blob}, nil
}

// Get looks up key, applying the FXY-equality filter so that keys
// absent from the catalog reliably report ok=false (P1, P2).
func (c *BCatalog) Get(key fxy.FXY) (tabentry.BEntry, bool) {
	e, ok := c.GetRaw(key)
	if !ok || e.FXY != key {
		return tabentry.BEntry{}, false
	}
	return e, true
}

// GetRaw returns the entry stored at key's hash slot without verifying
// that the stored FXY matches key. Callers that already know key is a
// member of the catalog (e.g. while iterating GetAll) can use this to
// skip a redundant comparison.
func (c *BCatalog) GetRaw(key fxy.FXY) (tabentry.BEntry, bool) {
	if c.hash.Len() == 0 {
		return tabentry.BEntry{}, false
	}
	slot := c.hash.Get(uint64(key.ToUint32()))
	if slot >= uint32(c.hash.Len()) {
		return tabentry.BEntry{}, false
	}
	rec := c.records[slot*bRecordSize : (slot+1)*bRecordSize]
	return decodeBEntry(rec, c.blob), true
}

// GetAll returns every entry in the catalog, in hash-slot order.
func (c *BCatalog) GetAll() []tabentry.BEntry {
	out := make([]tabentry.BEntry, c.hash.Len())
	for i := range out {
		rec := c.records[i*bRecordSize : (i+1)*bRecordSize]
		out[i] = decodeBEntry(rec, c.blob)
	}
	return out
}

// Close unmaps the underlying archive file.
func (c *BCatalog) Close() error {
	return c.file.Close()
}

// DCatalog is a loaded Table D (sequence) catalog.
type DCatalog struct {
	file    *archive.File
	hash    *mphf.MPHF
	records []byte
	strBlob []byte
	chain   []byte
}

// BuildD constructs a new Table D archive file from entries.
func BuildD(path string, entries []tabentry.DEntry) error {
	keys := make([]uint64, len(entries))
	for i, e := range entries {
		keys[i] = uint64(e.FXY.ToUint32())
	}
	h, err := mphf.Build(keys)
	if err != nil {
		return fmt.Errorf("catalog: building Table D hash: %w", err)
	}

	slotted := make([]tabentry.DEntry, h.Len())
	for i, e := range entries {
		slotted[h.Get(keys[i])] = e
	}

	records, strBlob, chainBlob := encodeDEntries(slotted)

	payload := make([]byte, 8+len(records)+len(strBlob)+len(chainBlob))
	binary.BigEndian.PutUint32(payload[0:4], uint32(len(records)))
	binary.BigEndian.PutUint32(payload[4:8], uint32(len(strBlob)))
	off := 8
	copy(payload[off:], records)
	off += len(records)
	copy(payload[off:], strBlob)
	off += len(strBlob)
	copy(payload[off:], chainBlob)

	if err := archive.Create(path, uint32(len(entries)), h.Marshal(), payload); err != nil {
		return fmt.Errorf("catalog: writing Table D archive: %w", err)
	}
	return nil
}

// LoadD opens a Table D archive previously built by BuildD.
func LoadD(path string) (*DCatalog, error) {
	f, err := archive.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening Table D archive: %w", err)
	}

	h, err := mphf.Unmarshal(f.MPHFBytes())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("catalog: reading Table D hash: %w", err)
	}

	payload := f.Payload()
	if len(payload) < 8 {
		f.Close()
		return nil, fmt.Errorf("catalog: Table D payload truncated")
	}
	recordsLen := binary.BigEndian.Uint32(payload[0:4])
	strBlobLen := binary.BigEndian.Uint32(payload[4:8])
	off := 8
	records := payload[off : off+int(recordsLen)]
	off += int(recordsLen)
	strBlob := payload[off : off+int(strBlobLen)]
	off += int(strBlobLen)
	chain := payload[off:]

	return &DCatalog{file: f, hash: h, records: records, strBlob: strBlob, chain: chain}, nil
}

// Get looks up key, applying the FXY-equality filter so that keys
// absent from the catalog reliably report ok=false (P1, P2).
func (c *DCatalog) Get(key fxy.FXY) (tabentry.DEntry, bool) {
	e, ok := c.GetRaw(key)
	if !ok || e.FXY != key {
		return tabentry.DEntry{}, false
	}
	return e, true
}

// GetRaw returns the entry stored at key's hash slot without verifying
// that the stored FXY matches key.
func (c *DCatalog) GetRaw(key fxy.FXY) (tabentry.DEntry, bool) {
	if c.hash.Len() == 0 {
		return tabentry.DEntry{}, false
	}
	slot := c.hash.Get(uint64(key.ToUint32()))
	if slot >= uint32(c.hash.Len()) {
		return tabentry.DEntry{}, false
	}
	rec := c.records[slot*dRecordSize : (slot+1)*dRecordSize]
	return decodeDEntry(rec, c.strBlob, c.chain), true
}

// GetAll returns every entry in the catalog, in hash-slot order.
func (c *DCatalog) GetAll() []tabentry.DEntry {
	out := make([]tabentry.DEntry, c.hash.Len())
	for i := range out {
		rec := c.records[i*dRecordSize : (i+1)*dRecordSize]
		out[i] = decodeDEntry(rec, c.strBlob, c.chain)
	}
	return out
}

// Close unmaps the underlying archive file.
func (c *DCatalog) Close() error {
	return c.file.Close()
}
