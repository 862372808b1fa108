package record

import (
	"fmt"
	"math"
	"strings"
)

func noUnitPrinted(unit string) bool {
	switch unit {
	case "CCITT IA5", "code table", "code-table", "flag table", "flag-table", "":
		return true
	default:
		return false
	}
}

// String renders one record the way the original single-line Display
// impl does: "name : value unit" for a scalar, a bracketed length/stats
// summary for a repeated run or compiled array, eliding all but the
// first three and last two entries once there are more than six.
func (r Record) String() string {
	if r.Name == "" && r.Data.Kind != DataRepeat {
		return ""
	}

	var b strings.Builder
	if r.Name != "" {
		fmt.Fprintf(&b, "%s : ", r.Name)
	}

	printUnit := !noUnitPrinted(r.Unit)

	switch r.Data.Kind {
	case DataSingle:
		writeSingle(&b, r.Data.Single, r.Unit, printUnit)
	case DataRepeat:
		writeRepeat(&b, r.Data.Repeat, printUnit)
	case DataArray:
		writeArray(&b, r.Data.Array, r.Unit, printUnit)
	}

	return b.String()
}

func writeSingle(b *strings.Builder, v Value, unit string, printUnit bool) {
	switch v.Kind {
	case KindMissing:
		b.WriteString("MISSING")
	case KindString:
		fmt.Fprintf(b, "%q", v.Str)
	default:
		if printUnit {
			fmt.Fprintf(b, "%12.6f %s", v.Number, unit)
		} else {
			fmt.Fprintf(b, "%v", v.Number)
		}
	}
}

func writeRepeat(b *strings.Builder, values []Value, printUnit bool) {
	missing := 0
	for _, v := range values {
		if v.IsMissing() {
			missing++
		}
	}

	fmt.Fprintf(b, "[len=%d", len(values))
	if missing > 0 {
		fmt.Fprintf(b, ", missing=%d", missing)
	}
	b.WriteString("] ")

	if len(values) == 0 {
		b.WriteString("[]")
		return
	}

	writeValueRun(b, values, printUnit)
}

func writeValueRun(b *strings.Builder, values []Value, printUnit bool) {
	const showLimit = 6

	formatOne := func(v Value) string {
		switch v.Kind {
		case KindMissing:
			return "MISSING"
		case KindString:
			return fmt.Sprintf("%q", v.Str)
		default:
			if printUnit {
				return fmt.Sprintf("%.3f", v.Number)
			}
			return fmt.Sprintf("%v", v.Number)
		}
	}

	b.WriteByte('[')
	if len(values) <= showLimit {
		for i, v := range values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatOne(v))
		}
	} else {
		for i, v := range values[:3] {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatOne(v))
		}
		b.WriteString(" ... ")
		for i, v := range values[len(values)-2:] {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatOne(v))
		}
	}
	b.WriteByte(']')
}

func writeArray(b *strings.Builder, values []float64, unit string, printUnit bool) {
	missing := 0
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if v == MissVal {
			missing++
		} else {
			valid = append(valid, v)
		}
	}

	fmt.Fprintf(b, "[len=%d", len(values))
	if missing > 0 {
		fmt.Fprintf(b, ", missing=%d", missing)
	}

	if len(valid) > 0 {
		min, max, sum := valid[0], valid[0], 0.0
		for _, v := range valid {
			min = math.Min(min, v)
			max = math.Max(max, v)
			sum += v
		}
		mean := sum / float64(len(valid))
		fmt.Fprintf(b, ", min=%.3f, max=%.3f, mean=%.3f", min, max, mean)
	}
	b.WriteByte(']')

	if printUnit && unit != "" {
		fmt.Fprintf(b, " %s", unit)
	}

	if len(values) > 0 {
		b.WriteString("\n  ")
		writeFloatRun(b, values)
	}
}

func writeFloatRun(b *strings.Builder, values []float64) {
	const showLimit = 6

	formatOne := func(v float64) string {
		if v == MissVal {
			return "MISSING"
		}
		return fmt.Sprintf("%.3f", v)
	}

	b.WriteByte('[')
	if len(values) <= showLimit {
		for i, v := range values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatOne(v))
		}
	} else {
		for i, v := range values[:3] {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatOne(v))
		}
		b.WriteString(" ... ")
		for i, v := range values[len(values)-2:] {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatOne(v))
		}
	}
	b.WriteByte(']')
}

// String renders every record, one per line, the way the compact
// Display view does.
func (p *Parsed) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "BUFR Parsed Data (%d records)\n", len(p.records))
	for _, r := range p.records {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}
