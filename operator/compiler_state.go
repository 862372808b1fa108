package operator

import "github.com/sleptworld/rbufr/tabentry"

// CompilerState is the array compiler's own shadow of the overrides a
// compiled body has seen so far. It mirrors State's fields exactly: the
// array compiler (C9) cannot share a live *State with the interpreter
// because a rejected compile attempt must not leak its partial operator
// state back into the fallback interpreted path.
type CompilerState struct {
	CommonScale     *int32
	CommonRefValue  *int32
	CommonDataWidth *int32
	CommonStrWidth  *int
	LocalDataWidth  *int32
	TempOperator    *int32
}

// NewCompilerState returns a CompilerState with no overrides installed.
func NewCompilerState() *CompilerState {
	return &CompilerState{}
}

// EffectiveWidth mirrors State.DataWidth for the array compiler's
// pre-pass over a replicated body.
func (s *CompilerState) EffectiveWidth(e tabentry.BEntry) uint32 {
	if s.LocalDataWidth != nil {
		return uint32(*s.LocalDataWidth)
	}

	var v uint32
	if e.NoChange() {
		v = e.DataWidthBits
	} else if s.CommonDataWidth != nil {
		c := *s.CommonDataWidth
		v = e.DataWidthBits + uint32(c-128)
	} else {
		v = e.DataWidthBits
	}

	if s.TempOperator != nil {
		v += uint32(10 * (*s.TempOperator))
	}
	return v
}

// EffectiveScale mirrors State.Scale for the array compiler.
func (s *CompilerState) EffectiveScale(e tabentry.BEntry) int32 {
	var v int32
	if e.NoChange() {
		v = e.Scale
	} else if s.CommonScale != nil {
		c := *s.CommonScale
		v = e.Scale + (128 - c)
	} else {
		v = e.Scale
	}

	if s.TempOperator != nil {
		return e.Scale + *s.TempOperator
	}
	return v
}

// EffectiveReference mirrors State.Reference for the array compiler.
func (s *CompilerState) EffectiveReference(e tabentry.BEntry) int32 {
	return (&State{TempOperator: s.TempOperator}).Reference(e)
}

// ApplyOperator updates the compiler shadow state for one 2-XX operator
// descriptor, reporting ok=false when the operator makes the body
// ineligible for array-compiler fast-pathing (2-05 string literals,
// 2-08 character width change).
func (s *CompilerState) ApplyOperator(x, y int) (ok bool) {
	switch x {
	case 1:
		s.CommonDataWidth = optionalInt32(y)
		return true
	case 2:
		s.CommonScale = optionalInt32(y)
		return true
	case 3:
		s.CommonRefValue = optionalInt32(y)
		return true
	case 5:
		return false
	case 6:
		v := int32(y)
		s.LocalDataWidth = &v
		return true
	case 7:
		v := int32(y)
		s.TempOperator = &v
		return true
	case 8:
		return false
	default:
		return true
	}
}

// ClearPerElement clears the overrides that apply to only the next
// element descriptor, called after every Table B field is compiled.
func (s *CompilerState) ClearPerElement() {
	s.TempOperator = nil
	s.LocalDataWidth = nil
}

func optionalInt32(y int) *int32 {
	if y == 0 {
		return nil
	}
	v := int32(y)
	return &v
}
