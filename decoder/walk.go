package decoder

import (
	"github.com/sleptworld/rbufr/bitreader"
	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/message"
	"github.com/sleptworld/rbufr/operator"
	"github.com/sleptworld/rbufr/record"
)

// Decode interprets msg's Section 3 descriptor program against
// Section 4's data block, producing one Parsed set of output records.
//
// The walk is an explicit stack rather than recursion, matching the
// reference decoder's Vec<Frame> loop: a Slice frame advances one
// descriptor at a time, pushing a continuation of itself plus whatever
// new frame that descriptor produced (a nested Slice for a sequence
// expansion, a Repeat or CompiledArray for a replication).
func (d *Decoder) Decode(msg *message.Message) (*record.Parsed, error) {
	descriptors, err := msg.Descriptors()
	if err != nil {
		return nil, err
	}

	data := bitreader.New(msg.DataBlock())
	parsed := record.NewParsed()
	state := operator.New()
	c := newCache(d)

	stack := []frame{{kind: frameSlice, descs: descriptors, idx: 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch f.kind {
		case frameSlice:
			if f.idx >= len(f.descs) {
				continue
			}
			var err error
			stack, err = d.parseSlice(f, stack, parsed, c, state, data)
			if err != nil {
				return nil, err
			}

		case frameRepeat:
			stack = parseRepeating(f, stack)

		case frameCompiledArray:
			if err := d.parseCompiledArray(f.layout, f.times, data, parsed); err != nil {
				return nil, err
			}
		}
	}

	return parsed, nil
}

// parseSlice interprets the descriptor at f.descs[f.idx], dispatching on
// its F field, and returns the stack with whatever new frames that
// descriptor produced pushed on top.
func (d *Decoder) parseSlice(f frame, stack []frame, parsed *record.Parsed, c *cache, state *operator.State, data *bitreader.Reader) ([]frame, error) {
	des := f.descs[f.idx]

	switch des.F {
	case 0:
		e, ok := c.getB(des)
		if !ok {
			return nil, errs.Parsef("descriptor %s not found in Table B", des)
		}

		value, err := evaluate(state, data, e)
		if err != nil {
			return nil, err
		}
		parsed.Push(value, e.ElementNameEn, e.Unit)

		// P8: these overrides apply to exactly one following element.
		state.ClearPerElement()

		stack = append(stack, frame{kind: frameSlice, descs: f.descs, idx: f.idx + 1, lineage: f.lineage})

	case 1:
		x := des.X
		y := des.Y
		delayRepeat := y == 0

		if delayRepeat {
			if f.idx+1 >= len(f.descs) {
				return nil, errs.Parse("delayed replication count descriptor missing")
			}
			countDes := f.descs[f.idx+1]
			count, err := parseUsize(state, c, countDes, data)
			if err != nil {
				return nil, err
			}
			// The counter element is itself an output record, ahead of the replicated body.
			counterEntry, _ := c.getB(countDes)
			parsed.Push(record.NumberValue(float64(count)), counterEntry.ElementNameEn, counterEntry.Unit)
			y = count
		}

		bodyStart := f.idx + 1
		if delayRepeat {
			bodyStart = f.idx + 2
		}
		bodyEnd := bodyStart + x

		if bodyEnd > len(f.descs) {
			return nil, errs.Parsef("not enough descriptors to repeat: requested %d, available %d", x, len(f.descs)-bodyStart)
		}

		body := f.descs[bodyStart:bodyEnd]

		layout, err := d.tryCompileArrayLayout(body, y, c)
		if err != nil {
			return nil, err
		}

		stack = append(stack, frame{kind: frameSlice, descs: f.descs, idx: bodyEnd, lineage: f.lineage})

		if layout != nil {
			stack = append(stack, frame{kind: frameCompiledArray, layout: layout, times: y})
		} else {
			stack = append(stack, frame{kind: frameRepeat, descs: body, times: y, current: 0, lineage: f.lineage})
		}

	case 2:
		if err := dealWithOperator(state, parsed, des, data); err != nil {
			return nil, err
		}
		stack = append(stack, frame{kind: frameSlice, descs: f.descs, idx: f.idx + 1, lineage: f.lineage})

	case 3:
		seq, ok := c.getD(des)
		if !ok {
			return nil, errs.Parsef("sequence descriptor %s not found in Table D", des)
		}

		if containsFXY(f.lineage, des) {
			return nil, errs.Parsef("sequence expansion cycle at descriptor %s", des)
		}
		childLineage := append(append([]fxy.FXY{}, f.lineage...), des)

		stack = append(stack, frame{kind: frameSlice, descs: f.descs, idx: f.idx + 1, lineage: f.lineage})
		stack = append(stack, frame{kind: frameSlice, descs: seq.Chain, idx: 0, lineage: childLineage})

	default:
		return nil, errs.Parsef("invalid descriptor F value: %d", des.F)
	}

	return stack, nil
}

// parseRepeating drives one interpreted (non-compiled) replication:
// each of f.times repetitions walks f.descs from idx 0 before the next
// repetition starts.
func parseRepeating(f frame, stack []frame) []frame {
	if f.current >= f.times {
		return stack
	}
	stack = append(stack, frame{kind: frameRepeat, descs: f.descs, times: f.times, current: f.current + 1, lineage: f.lineage})
	stack = append(stack, frame{kind: frameSlice, descs: f.descs, idx: 0, lineage: f.lineage})
	return stack
}
