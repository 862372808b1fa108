package message

import "github.com/sleptworld/rbufr/errs"

// ParseSection5 verifies and consumes the fixed "7777" trailer.
func ParseSection5(data []byte) ([]byte, error) {
	if len(data) < 4 || string(data[0:4]) != "7777" {
		return nil, errs.Parse("section 5 missing 7777 trailer")
	}
	return data[4:], nil
}
