// Package message implements C5 (the BUFR message framer) and C6 (the
// fixed-layout section parsers for editions 2 and 4).
//
// A BUFR message is a sequence of six sections: an 8-byte Section 0
// identifying the edition and total length, Section 1 (identification,
// edition-dependent layout), an optional Section 2 (local use), Section 3
// (data description, the descriptor list), Section 4 (the data bit
// stream), and a fixed 4-byte Section 5 trailer ("7777").
package message

import (
	"github.com/sleptworld/rbufr/errs"
)

const section0Size = 8

// Section0 identifies the message edition and its total on-wire length.
type Section0 struct {
	TotalLength uint32 // byte offset 4-6, the whole message including Section 0 and 5
	Edition     uint8  // byte offset 7
}

// ParseSection0 parses the leading "BUFR" tag, 3-byte total length, and
// 1-byte edition number.
func ParseSection0(data []byte) (Section0, error) {
	if len(data) < section0Size {
		return Section0{}, errs.Parse("section 0 shorter than 8 bytes")
	}
	if string(data[0:4]) != "BUFR" {
		return Section0{}, errs.Parse("section 0 missing BUFR marker")
	}

	total := uint32(data[4])<<16 | uint32(data[5])<<8 | uint32(data[6])
	edition := data[7]

	return Section0{TotalLength: total, Edition: edition}, nil
}
