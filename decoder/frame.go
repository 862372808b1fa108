package decoder

import "github.com/sleptworld/rbufr/fxy"

type frameKind uint8

const (
	frameSlice frameKind = iota
	frameRepeat
	frameCompiledArray
)

// frame is one stack entry of the descriptor-program walk. Only the
// fields relevant to its kind are populated.
type frame struct {
	kind frameKind

	// frameSlice: walk descs starting at idx. lineage is the chain of
	// Table D keys expanded to reach this slice, used to reject a
	// self-referential sequence (spec §9 "Cyclic sequences").
	descs   []fxy.FXY
	idx     int
	lineage []fxy.FXY

	// frameRepeat: interpret descs (the replicated body) `times` times,
	// `current` repetitions done so far.
	times   int
	current int

	// frameCompiledArray: decode a pre-compiled array layout `times`
	// repetitions' worth, straight from the bit stream.
	layout *compiledLayout
}

func containsFXY(lineage []fxy.FXY, key fxy.FXY) bool {
	for _, k := range lineage {
		if k == key {
			return true
		}
	}
	return false
}
