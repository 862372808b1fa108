package message

import "github.com/sleptworld/rbufr/errs"

// Section3 is the data description section: the observed/compressed
// flags and the raw 2-byte-per-descriptor FXY list.
type Section3 struct {
	Length           int
	NumberOfSubsets  uint16
	Observed         bool
	Compressed       bool
	Descriptors      []byte // raw FXY word stream, 2 bytes each
}

// ParseSection3 parses the length prefix, reserved octet, subset count,
// flags octet, and the trailing descriptor word stream.
func ParseSection3(data []byte) (Section3, []byte, error) {
	if len(data) < 7 {
		return Section3{}, nil, errs.Parse("section 3 missing fixed fields")
	}
	length := int(data[0])<<16 | int(data[1])<<8 | int(data[2])
	if length < 7 || len(data) < length {
		return Section3{}, nil, errs.Parse("section 3 length inconsistent with available data")
	}

	numSubsets := uint16(data[4])<<8 | uint16(data[5])
	flags := data[6]

	s := Section3{
		Length:          length,
		NumberOfSubsets: numSubsets,
		Observed:        flags&0x80 != 0,
		Compressed:      flags&0x40 != 0,
		Descriptors:     append([]byte(nil), data[7:length]...),
	}

	return s, data[length:], nil
}
