package decoder

import (
	"github.com/sleptworld/rbufr/bitreader"
	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/operator"
	"github.com/sleptworld/rbufr/record"
	"github.com/sleptworld/rbufr/tabentry"
)

// fieldSpec is one compiled element of a CompiledArray body: its
// effective decode parameters baked in at compile time so the hot loop
// never revisits operator state.
type fieldSpec struct {
	fxy          fxy.FXY
	name         string
	unit         string
	widthBits    uint32
	scale        int32
	reference    int32
	missingValue uint64
}

// compiledLayout is the array compiler's product: a fixed-width record
// shape that can be decoded repeat_count times without reinterpreting
// the descriptor body on each repetition.
type compiledLayout struct {
	fields []fieldSpec
}

// tryCompileArrayLayout attempts to compile body (the descriptors
// inside a 1-0X-0YY replication) into a compiledLayout. It returns
// (nil, nil) when the body is ineligible for the fast path: the
// caller falls back to the normal frame-based interpretation.
//
// Eligibility mirrors the reference implementation exactly: at least 16
// repetitions, every descriptor is F∈{0,2} (no nested replication or
// sequence expansion), no CCITT IA5 element, no 2-05/2-08 operator, and
// no temp_operator left dangling after the body is walked.
func (d *Decoder) tryCompileArrayLayout(body []fxy.FXY, repeatCount int, c *cache) (*compiledLayout, error) {
	if repeatCount < 16 {
		return nil, nil
	}

	state := operator.NewCompilerState()
	fields := make([]fieldSpec, 0, len(body))

	for _, desc := range body {
		switch desc.F {
		case 0:
			entry, ok := c.getB(desc)
			if !ok {
				return nil, errs.Parsef("descriptor %s not found in Table B", desc)
			}
			if entry.Unit == tabentry.UnitCCITTIA5 {
				return nil, nil
			}

			width := state.EffectiveWidth(entry)
			scale := state.EffectiveScale(entry)
			reference := state.EffectiveReference(entry)
			missing := uint64(1)<<width - 1
			if width >= 64 {
				missing = ^uint64(0)
			}

			fields = append(fields, fieldSpec{
				fxy:          desc,
				name:         entry.ElementNameEn,
				unit:         entry.Unit,
				widthBits:    width,
				scale:        scale,
				reference:    reference,
				missingValue: missing,
			})

			state.ClearPerElement()

		case 2:
			if !state.ApplyOperator(desc.X, desc.Y) {
				return nil, nil
			}

		default:
			return nil, nil
		}
	}

	if state.TempOperator != nil {
		return nil, nil
	}

	return &compiledLayout{fields: fields}, nil
}

// parseCompiledArray decodes repeatCount repetitions of layout straight
// from data, producing one Array record per field in program order.
func (d *Decoder) parseCompiledArray(layout *compiledLayout, repeatCount int, data *bitreader.Reader, parsed *record.Parsed) error {
	columns := make([][]float64, len(layout.fields))
	for i := range columns {
		columns[i] = make([]float64, 0, repeatCount)
	}

	for rep := 0; rep < repeatCount; rep++ {
		for i, field := range layout.fields {
			raw, err := data.GetBits(int(field.widthBits))
			if err != nil {
				return err
			}

			var value float64
			if raw == field.missingValue && !field.fxy.IsDelayedReplicationCount() {
				value = record.MissVal
			} else {
				value = (float64(raw) + float64(field.reference)) * pow10(-int(field.scale))
			}
			columns[i] = append(columns[i], value)
		}
	}

	for i, field := range layout.fields {
		arr := parsed.StartArray(0)
		arr.SetValues(columns[i])
		arr.Finish(field.name, field.unit)
	}

	return nil
}
