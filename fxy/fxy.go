// Package fxy implements the BUFR descriptor key: a 16-bit tagged
// identifier decomposed into F (2 bits), X (6 bits), and Y (8 bits).
//
// F selects the descriptor kind: 0 is an element (a leaf that consumes
// data bits), 1 is a replication, 2 is an operator, and 3 is a sequence.
package fxy

import (
	"fmt"
	"strconv"
)

// FXY is a descriptor key. F is in [0,3], X is in [0,63], Y is in [0,255].
type FXY struct {
	F int
	X int
	Y int
}

// New builds an FXY from its three fields.
func New(f, x, y int) FXY {
	return FXY{F: f, X: x, Y: y}
}

// FromUint16 splits a 16-bit descriptor word into (F,X,Y).
func FromUint16(word uint16) FXY {
	return FXY{
		F: int(word >> 14),
		X: int((word >> 8) & 0x3f),
		Y: int(word & 0xff),
	}
}

// ToUint32 packs the key as (F<<14)|(X<<8)|Y, matching the wire-word
// layout widened to 32 bits for hashing.
func (k FXY) ToUint32() uint32 {
	return (uint32(k.F) << 14) | (uint32(k.X) << 8) | uint32(k.Y)
}

// ToUint16 packs the key into its 16-bit wire form.
func (k FXY) ToUint16() uint16 {
	return uint16(k.ToUint32())
}

// String renders the key in "FFXXYY" form: two digits each for F, X, and Y.
// A Y of 100 or more renders as three digits, a form Parse does not accept.
func (k FXY) String() string {
	return fmt.Sprintf("%02d%02d%02d", k.F, k.X, k.Y)
}

// Parse reads a 6-character "FFXXYY" string into an FXY.
func Parse(s string) (FXY, error) {
	if len(s) != 6 {
		return FXY{}, fmt.Errorf("fxy: invalid string length %d for %q", len(s), s)
	}

	f, err := strconv.Atoi(s[0:2])
	if err != nil {
		return FXY{}, fmt.Errorf("fxy: parsing F from %q: %w", s, err)
	}

	x, err := strconv.Atoi(s[2:4])
	if err != nil {
		return FXY{}, fmt.Errorf("fxy: parsing X from %q: %w", s, err)
	}

	y, err := strconv.Atoi(s[4:6])
	if err != nil {
		return FXY{}, fmt.Errorf("fxy: parsing Y from %q: %w", s, err)
	}

	return FXY{F: f, X: x, Y: y}, nil
}

// IsDelayedReplicationCount reports whether the key is the (F=0, X=31)
// family of delayed-replication counter elements, which are exempt from
// width/scale overrides and from missing-value detection.
func (k FXY) IsDelayedReplicationCount() bool {
	return k.F == 0 && k.X == 31
}
