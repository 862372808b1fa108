// Package mphf builds and evaluates a minimal perfect hash function over
// a fixed, known set of 64-bit keys: every key maps to a distinct slot in
// [0, n), with no collisions and no wasted slots.
//
// The construction is a CHD-style (compress, hash, and displace) two-level
// scheme: keys are bucketed by a first-level hash, then buckets are
// processed largest-first, each searching for a per-bucket displacement
// seed that places every key in the bucket into a still-free slot.
//
// # Basic Usage
//
//	keys := []uint64{100, 200, 300}
//	f, err := mphf.Build(keys)
//	slot := f.Get(200) // a unique index in [0,3)
//
// # Thread Safety
//
// An MPHF is immutable after Build or Unmarshal and is safe for concurrent
// lookups from any number of goroutines — the same property the catalog
// package relies on for its mmap-backed tables.
package mphf

import (
	"encoding/binary"
	"fmt"

	"github.com/sleptworld/rbufr/internal/hash"
)

const maxSeedTrials = 1 << 20

// MPHF is a built minimal perfect hash function over a known key set.
type MPHF struct {
	numKeys    uint32
	numBuckets uint32
	seeds      []uint32
}

// Build constructs an MPHF over keys, which must be pairwise distinct.
func Build(keys []uint64) (*MPHF, error) {
	n := uint32(len(keys))
	if n == 0 {
		return &MPHF{numKeys: 0, numBuckets: 1, seeds: []uint32{0}}, nil
	}

	numBuckets := n/4 + 1

	buckets := make([][]uint64, numBuckets)
	for _, k := range keys {
		b := bucketOf(k, numBuckets)
		buckets[b] = append(buckets[b], k)
	}

	order := make([]uint32, numBuckets)
	for i := range order {
		order[i] = uint32(i)
	}
	// Largest buckets first: they are hardest to place, so give them
	// first pick of the free slots.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && len(buckets[order[j]]) > len(buckets[order[j-1]]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	occupied := make([]bool, n)
	seeds := make([]uint32, numBuckets)

	for _, b := range order {
		bucket := buckets[b]
		if len(bucket) == 0 {
			continue
		}

		found := false
		for seed := uint32(0); seed < maxSeedTrials; seed++ {
			slots := make([]uint32, 0, len(bucket))
			ok := true
			for _, k := range bucket {
				slot := slotOf(k, seed, n)
				if occupied[slot] {
					ok = false
					break
				}
				duplicate := false
				for _, s := range slots {
					if s == slot {
						duplicate = true
						break
					}
				}
				if duplicate {
					ok = false
					break
				}
				slots = append(slots, slot)
			}

			if ok {
				for _, slot := range slots {
					occupied[slot] = true
				}
				seeds[b] = seed
				found = true
				break
			}
		}

		if !found {
			return nil, fmt.Errorf("mphf: could not place bucket of size %d after %d trials", len(bucket), maxSeedTrials)
		}
	}

	return &MPHF{numKeys: n, numBuckets: numBuckets, seeds: seeds}, nil
}

// Get returns the slot assigned to key. For a key outside the original
// build set this returns an arbitrary slot in [0, Len()) — callers must
// verify the entry found there actually matches their key.
func (f *MPHF) Get(key uint64) uint32 {
	if f.numKeys == 0 {
		return 0
	}
	b := bucketOf(key, f.numBuckets)
	seed := f.seeds[b]
	return slotOf(key, seed, f.numKeys)
}

// Len reports the number of keys the function was built over.
func (f *MPHF) Len() int {
	return int(f.numKeys)
}

func bucketOf(key uint64, numBuckets uint32) uint32 {
	return uint32(mix(key, 0)%uint64(numBuckets))
}

func slotOf(key uint64, seed, numKeys uint32) uint32 {
	return uint32(mix(key, seed) % uint64(numKeys))
}

func mix(key uint64, seed uint32) uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], key)
	binary.BigEndian.PutUint32(buf[8:], seed)
	return hash.Bytes(buf[:])
}

// Marshal serializes the function to a compact byte form suitable for
// embedding in an archive file (see the archive package).
func (f *MPHF) Marshal() []byte {
	buf := make([]byte, 8+4*len(f.seeds))
	binary.BigEndian.PutUint32(buf[0:4], f.numKeys)
	binary.BigEndian.PutUint32(buf[4:8], f.numBuckets)
	for i, s := range f.seeds {
		binary.BigEndian.PutUint32(buf[8+4*i:12+4*i], s)
	}
	return buf
}

// Unmarshal reconstructs an MPHF previously produced by Marshal.
func Unmarshal(buf []byte) (*MPHF, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("mphf: truncated header")
	}
	numKeys := binary.BigEndian.Uint32(buf[0:4])
	numBuckets := binary.BigEndian.Uint32(buf[4:8])

	want := 8 + 4*int(numBuckets)
	if len(buf) < want {
		return nil, fmt.Errorf("mphf: truncated seed table")
	}

	seeds := make([]uint32, numBuckets)
	for i := range seeds {
		seeds[i] = binary.BigEndian.Uint32(buf[8+4*i : 12+4*i])
	}

	return &MPHF{numKeys: numKeys, numBuckets: numBuckets, seeds: seeds}, nil
}
