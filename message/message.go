package message

import (
	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
)

// Message is one fully parsed BUFR message, edition 2 or 4.
type Message struct {
	Section0 Section0
	Section1 Section1
	Section2 *Section2 // nil when Section1.OptionalSectionPresent is false
	Section3 Section3
	Section4 Section4
}

// Parse decodes one complete BUFR message starting at the beginning of
// data. Unlike ingest.ParseFile, it does not scan for a "BUFR" marker: the
// caller must already have located the message boundary.
func Parse(data []byte) (*Message, error) {
	section0, err := ParseSection0(data)
	if err != nil {
		return nil, err
	}
	if section0.Edition != 2 && section0.Edition != 4 {
		return nil, errs.UnsupportedVersion(section0.Edition)
	}

	rest := data[section0Size:]

	var section1 Section1
	if section0.Edition == 4 {
		section1, rest, err = ParseSection1V4(rest)
	} else {
		section1, rest, err = ParseSection1V2(rest)
	}
	if err != nil {
		return nil, err
	}

	var section2 *Section2
	if section1.OptionalSectionPresent {
		var s2 Section2
		s2, rest, err = ParseSection2(rest)
		if err != nil {
			return nil, err
		}
		section2 = &s2
	}

	section3, rest, err := ParseSection3(rest)
	if err != nil {
		return nil, err
	}

	section4, rest, err := ParseSection4(rest)
	if err != nil {
		return nil, err
	}

	if _, err := ParseSection5(rest); err != nil {
		return nil, err
	}

	return &Message{
		Section0: section0,
		Section1: section1,
		Section2: section2,
		Section3: section3,
		Section4: section4,
	}, nil
}

// Edition reports the message's BUFR edition number (2 or 4).
func (m *Message) Edition() uint8 { return m.Section0.Edition }

// CentreID returns the originating centre identifier.
func (m *Message) CentreID() uint16 { return m.Section1.Centre }

// SubcentreID returns the originating sub-centre identifier.
func (m *Message) SubcentreID() uint16 { return m.Section1.Subcentre }

// MasterTableVersion returns the master table version this message was
// encoded against.
func (m *Message) MasterTableVersion() uint8 { return m.Section1.MasterTableVersion }

// LocalTableVersion returns the local table version this message was
// encoded against.
func (m *Message) LocalTableVersion() uint8 { return m.Section1.LocalTableVersion }

// SubsetCount reports the number of data subsets packed into Section 4.
func (m *Message) SubsetCount() uint16 { return m.Section3.NumberOfSubsets }

// NumDescriptors reports the number of FXY descriptors in Section 3.
func (m *Message) NumDescriptors() int { return len(m.Section3.Descriptors) / 2 }

// Descriptors decodes Section 3's raw descriptor word stream into FXY
// keys.
func (m *Message) Descriptors() ([]fxy.FXY, error) {
	return ParseDescriptors(m.Section3.Descriptors)
}

// DataBlock returns Section 4's raw bit stream.
func (m *Message) DataBlock() []byte { return m.Section4.Data }

// ParseDescriptors decodes a raw 2-byte-per-descriptor FXY word stream,
// as stored in Section3.Descriptors.
func ParseDescriptors(data []byte) ([]fxy.FXY, error) {
	if len(data)%2 != 0 {
		return nil, errs.Parse("descriptor stream length is not a multiple of 2")
	}

	out := make([]fxy.FXY, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		word := uint16(data[i])<<8 | uint16(data[i+1])
		out = append(out, fxy.FromUint16(word))
	}
	return out, nil
}
