package decoder

import (
	"math"

	"github.com/sleptworld/rbufr/bitreader"
	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/operator"
	"github.com/sleptworld/rbufr/record"
	"github.com/sleptworld/rbufr/tabentry"
)

func pow10(n int) float64 {
	return math.Pow(10, float64(n))
}

// evaluate decodes one Table B element's value from data under the
// current operator state: a CCITT IA5 element reads a byte-aligned
// string (common_str_width overrides the width-implied byte count),
// everything else reads datawidth bits and applies scale/reference,
// reporting Missing for an all-ones raw value unless the element is the
// (F=0,X=31) delayed-replication counter family.
func evaluate(state *operator.State, data *bitreader.Reader, e tabentry.BEntry) (record.Value, error) {
	if e.Unit == tabentry.UnitCCITTIA5 {
		totalBytes := int((e.DataWidthBits + 7) / 8)
		if state.CommonStrWidth != nil {
			totalBytes = *state.CommonStrWidth
		}
		s, err := data.TakeString(totalBytes)
		if err != nil {
			return record.Value{}, err
		}
		return record.StringValue(s), nil
	}

	width := state.DataWidth(e)
	scale := state.Scale(e)
	reference := state.Reference(e)

	raw, err := data.GetBits(int(width))
	if err != nil {
		return record.Value{}, err
	}

	missing := uint64(1)<<width - 1
	if width >= 64 {
		missing = ^uint64(0)
	}
	if raw == missing && !e.FXY.IsDelayedReplicationCount() {
		return record.MissingValue, nil
	}

	result := (float64(raw) + float64(reference)) * pow10(-int(scale))
	return record.NumberValue(result), nil
}

// parseUsize decodes a delayed-replication count: des must be an F=0
// element, and its evaluated value must not be Missing or a string.
func parseUsize(state *operator.State, c *cache, des fxy.FXY, data *bitreader.Reader) (int, error) {
	if des.F != 0 {
		return 0, errs.Parsef("descriptor %s not found in Table B", des)
	}

	e, ok := c.getB(des)
	if !ok {
		return 0, errs.Parsef("descriptor %s not found in Table B", des)
	}

	value, err := evaluate(state, data, e)
	if err != nil {
		return 0, err
	}

	if value.IsMissing() {
		return 0, errs.Parse("format error: delayed replication count is missing")
	}
	f, ok := value.AsFloat64()
	if !ok {
		return 0, errs.Parse("format error: delayed replication count is not numeric")
	}
	return int(math.Floor(f)), nil
}

// dealWithOperator applies an F=2 operator descriptor's runtime effect:
// most operators mutate state without consuming data bits, but 2-05
// reads a literal string of Y bytes and pushes it as a named-empty
// record.
//
// The literal's unit string here, "CAITT IA5", is copied verbatim from
// the reference implementation's deal_with_operator: an apparent typo
// against the "CCITT IA5" spelling used everywhere else (evaluate's
// string dispatch, the array compiler's rejection check, Display's
// unit-suppression check). Kept bug-for-bug rather than corrected, the
// same call made for the 2-07/2-02 scale composition behavior.
func dealWithOperator(state *operator.State, parsed *record.Parsed, des fxy.FXY, data *bitreader.Reader) error {
	x, y := des.X, des.Y

	switch x {
	case 1:
		state.CommonDataWidth = optionalInt32(y)
	case 2:
		state.CommonScale = optionalInt32(y)
	case 3:
		state.CommonRefValue = optionalInt32(y)
	case 5:
		s, err := data.TakeString(y)
		if err != nil {
			return err
		}
		parsed.Push(record.StringValue(s), "", "CAITT IA5")
	case 6:
		v := int32(y)
		state.LocalDataWidth = &v
	case 7:
		v := int32(y)
		state.TempOperator = &v
	case 8:
		if y == 0 {
			state.CommonStrWidth = nil
		} else {
			v := y
			state.CommonStrWidth = &v
		}
	default:
		// Unknown/unsupported operator: allow but ignore.
	}

	return nil
}

func optionalInt32(y int) *int32 {
	if y == 0 {
		return nil
	}
	v := int32(y)
	return &v
}
