package message

import (
	"fmt"
	"strings"

	"github.com/sleptworld/rbufr/errs"
)

// section1FixedLenV4 is the minimum length of an edition-4 Section 1,
// octets 1 through 22 inclusive (the 3-octet length prefix is counted).
const section1FixedLenV4 = 22

// section1FixedLenV2 is the minimum length of an edition-2 Section 1,
// octets 1 through 17 inclusive, length prefix counted (§4 of SPEC_FULL.md).
const section1FixedLenV2 = 17

// Section1 holds the identification section fields common to both
// editions, plus any edition-specific detail a caller needs separately.
type Section1 struct {
	Edition                     uint8
	Length                      int
	MasterTable                 uint8
	Centre                      uint16
	Subcentre                   uint16
	UpdateSequenceNumber        uint8
	OptionalSectionPresent      bool
	DataCategory                uint8
	InternationalDataSubcategory uint8 // edition 4 only
	LocalSubcategory            uint8 // edition 4 only
	DataSubcategory             uint8 // edition 2 only
	MasterTableVersion          uint8
	LocalTableVersion           uint8
	Year                        uint16
	Month, Day                  uint8
	Hour, Minute, Second        uint8
	LocalUse                    []byte
}

// ParseSection1V4 parses an edition-4 Section 1: two-octet centre and
// subcentre, four-digit year, and a seconds field.
func ParseSection1V4(data []byte) (Section1, []byte, error) {
	if len(data) < 3 {
		return Section1{}, nil, errs.Parse("section 1 missing length prefix")
	}
	length := int(data[0])<<16 | int(data[1])<<8 | int(data[2])
	if length < section1FixedLenV4 {
		return Section1{}, nil, errs.Parse("section 1 length shorter than its fixed fields")
	}
	if len(data) < length {
		return Section1{}, nil, errs.Parse("section 1 truncated before its declared length")
	}

	b := data[3:length]
	flags := b[6]

	s := Section1{
		Edition:                      4,
		Length:                       length,
		MasterTable:                  b[0],
		Centre:                       uint16(b[1])<<8 | uint16(b[2]),
		Subcentre:                    uint16(b[3])<<8 | uint16(b[4]),
		UpdateSequenceNumber:         b[5],
		OptionalSectionPresent:       flags&0x80 != 0,
		DataCategory:                 b[7],
		InternationalDataSubcategory: b[8],
		LocalSubcategory:             b[9],
		MasterTableVersion:           b[10],
		LocalTableVersion:            b[11],
		Year:                         uint16(b[12])<<8 | uint16(b[13]),
		Month:                        b[14],
		Day:                          b[15],
		Hour:                        b[16],
		Minute:                      b[17],
		Second:                      b[18],
		LocalUse:                    append([]byte(nil), b[section1FixedLenV4-3:]...),
	}

	return s, data[length:], nil
}

// ParseSection1V2 parses an edition-2 Section 1: one-octet centre and
// subcentre (subcentre preceding centre on the wire), one-octet
// year-of-century, and no seconds field.
func ParseSection1V2(data []byte) (Section1, []byte, error) {
	if len(data) < 3 {
		return Section1{}, nil, errs.Parse("section 1 missing length prefix")
	}
	length := int(data[0])<<16 | int(data[1])<<8 | int(data[2])
	if length < section1FixedLenV2 {
		return Section1{}, nil, errs.Parse("section 1 length shorter than its fixed fields")
	}
	if len(data) < length {
		return Section1{}, nil, errs.Parse("section 1 truncated before its declared length")
	}

	b := data[3:length]
	flags := b[4]

	s := Section1{
		Edition:                2,
		Length:                 length,
		MasterTable:            b[0],
		Subcentre:              uint16(b[1]),
		Centre:                 uint16(b[2]),
		UpdateSequenceNumber:   b[3],
		OptionalSectionPresent: flags&0x80 != 0,
		DataCategory:           b[5],
		DataSubcategory:        b[6],
		MasterTableVersion:     b[7],
		LocalTableVersion:      b[8],
		Year:                   uint16(b[9]),
		Month:                  b[10],
		Day:                    b[11],
		Hour:                   b[12],
		Minute:                 b[13],
		LocalUse:               append([]byte(nil), b[section1FixedLenV2-3:]...),
	}

	return s, data[length:], nil
}

// String renders a multi-line human-readable dump of the identification
// section, grouped the way the original edition dumps group their fields.
func (s Section1) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Section 1 (edition %d):\n", s.Edition)
	fmt.Fprintf(&b, "  Length: %d bytes\n\n", s.Length)
	b.WriteString("  Organization:\n")
	fmt.Fprintf(&b, "    Centre:              %d\n", s.Centre)
	fmt.Fprintf(&b, "    Sub-centre:          %d\n", s.Subcentre)
	fmt.Fprintf(&b, "    Update Sequence:     %d\n\n", s.UpdateSequenceNumber)
	b.WriteString("  Data Classification:\n")
	fmt.Fprintf(&b, "    Category:            %d\n", s.DataCategory)
	if s.Edition == 4 {
		fmt.Fprintf(&b, "    International Sub:   %d\n", s.InternationalDataSubcategory)
	}
	fmt.Fprintf(&b, "    Local Sub:           %d\n\n", s.LocalSubcategory)
	b.WriteString("  Table Versions:\n")
	fmt.Fprintf(&b, "    Master Table:        %d (v%d)\n", s.MasterTable, s.MasterTableVersion)
	fmt.Fprintf(&b, "    Local Table:         v%d\n\n", s.LocalTableVersion)
	b.WriteString("  Observation Time:\n")
	if s.Edition == 4 {
		fmt.Fprintf(&b, "    DateTime:            %04d-%02d-%02d %02d:%02d:%02d UTC\n\n",
			s.Year, s.Month, s.Day, s.Hour, s.Minute, s.Second)
	} else {
		fmt.Fprintf(&b, "    DateTime:            19%02d-%02d-%02d %02d:%02d:00 UTC\n\n",
			s.Year, s.Month, s.Day, s.Hour, s.Minute)
	}
	b.WriteString("  Optional Data:\n")
	present := "No"
	if s.OptionalSectionPresent {
		present = "Yes"
	}
	fmt.Fprintf(&b, "    Section 2 Present:   %s\n", present)
	fmt.Fprintf(&b, "    Local Use Data:      %d bytes", len(s.LocalUse))

	return b.String()
}
