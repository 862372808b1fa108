package message

import "github.com/sleptworld/rbufr/errs"

// Section2 is the optional local-use section; present only when
// Section1.OptionalSectionPresent is set.
type Section2 struct {
	Length int
	Data   []byte
}

// ParseSection2 parses the 3-byte length prefix, 1-byte reserved octet,
// and remaining local-use payload.
func ParseSection2(data []byte) (Section2, []byte, error) {
	if len(data) < 4 {
		return Section2{}, nil, errs.Parse("section 2 missing length prefix")
	}
	length := int(data[0])<<16 | int(data[1])<<8 | int(data[2])
	if length < 4 || len(data) < length {
		return Section2{}, nil, errs.Parse("section 2 length inconsistent with available data")
	}

	return Section2{Length: length, Data: append([]byte(nil), data[4:length]...)}, data[length:], nil
}
