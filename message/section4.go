package message

import "github.com/sleptworld/rbufr/errs"

// Section4 carries the raw data bit stream the decoder interprets
// against the descriptor program from Section 3.
type Section4 struct {
	Length int
	Data   []byte
}

// ParseSection4 parses the 3-byte length prefix, 1-byte reserved octet,
// and the raw data payload.
func ParseSection4(data []byte) (Section4, []byte, error) {
	if len(data) < 4 {
		return Section4{}, nil, errs.Parse("section 4 missing length prefix")
	}
	length := int(data[0])<<16 | int(data[1])<<8 | int(data[2])
	if length < 4 || len(data) < length {
		return Section4{}, nil, errs.Parse("section 4 length inconsistent with available data")
	}

	return Section4{Length: length, Data: append([]byte(nil), data[4:length]...)}, data[length:], nil
}
