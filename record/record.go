package record

// DataKind distinguishes the three shapes a built record's payload can
// take: one value, a replicated run of tagged Values, or a compiled
// array-compiler fast-path run of plain numbers.
type DataKind uint8

const (
	DataSingle DataKind = iota
	DataRepeat
	DataArray
)

// Data is a decoded record's payload, tagged by DataKind.
type Data struct {
	Kind   DataKind
	Single Value
	Repeat []Value
	Array  []float64
}

// Record is one named, unit-tagged decoded output. Records without a
// table name (the reference implementation's injected string literals
// from a 2-05 operator) carry an empty Name.
type Record struct {
	Name string
	Unit string
	Data Data
}

// Parsed accumulates Records in the order a decode walk produces them.
type Parsed struct {
	records []Record
}

// NewParsed returns an empty Parsed.
func NewParsed() *Parsed {
	return &Parsed{}
}

// Push appends a single scalar value.
func (p *Parsed) Push(value Value, name, unit string) {
	p.records = append(p.records, Record{
		Name: name,
		Unit: unit,
		Data: Data{Kind: DataSingle, Single: value},
	})
}

// Records returns every record built so far, in build order.
func (p *Parsed) Records() []Record {
	return p.records
}

// Count reports the number of records built so far.
func (p *Parsed) Count() int {
	return len(p.records)
}

// StartRepeating begins a nested replicated run (F=1 body interpreted
// the slow, non-compiled way): each value pushed to the returned
// Repeating is a tagged Value rather than a plain number, since the
// replicated body may itself contain strings or missing values.
func (p *Parsed) StartRepeating(capacityHint int) *Repeating {
	return &Repeating{parsed: p, values: make([]Value, 0, capacityHint)}
}

// Repeating collects one replicated run's worth of tagged values before
// it is finished and appended to its parent Parsed as one Record.
type Repeating struct {
	parsed *Parsed
	values []Value
}

// Push appends one value to the run.
func (r *Repeating) Push(v Value) {
	r.values = append(r.values, v)
}

// Finish appends the accumulated run to the parent Parsed as a single
// unnamed, unit-less Record.
func (r *Repeating) Finish() {
	r.parsed.records = append(r.parsed.records, Record{
		Data: Data{Kind: DataRepeat, Repeat: r.values},
	})
}

// StartArray begins a compiled array-compiler run: plain float64 values
// with MissVal standing in for Value's Missing variant, matching the
// compiled fast path's flat numeric buffers.
func (p *Parsed) StartArray(capacityHint int) *Array {
	return &Array{parsed: p, values: make([]float64, 0, capacityHint)}
}

// Array collects one compiled field's worth of plain numeric values
// before it is finished and appended to its parent Parsed as one Record.
type Array struct {
	parsed *Parsed
	values []float64
}

// SetValues replaces the array's accumulated values outright — the
// array compiler produces a whole repetition's worth of values at once
// rather than pushing them one at a time.
func (a *Array) SetValues(values []float64) {
	a.values = values
}

// Push appends one value to the array.
func (a *Array) Push(v float64) {
	a.values = append(a.values, v)
}

// Finish appends the accumulated array to the parent Parsed, tagged
// with the field's table name and unit.
func (a *Array) Finish(name, unit string) {
	a.parsed.records = append(a.parsed.records, Record{
		Name: name,
		Unit: unit,
		Data: Data{Kind: DataArray, Array: a.values},
	})
}
