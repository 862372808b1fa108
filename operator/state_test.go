package operator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

func plainEntry() tabentry.BEntry {
	return tabentry.BEntry{
		FXY:            fxy.New(0, 7, 1),
		Unit:           "m",
		Scale:          1,
		ReferenceValue: -400,
		DataWidthBits:  15,
	}
}

func int32p(v int32) *int32 { return &v }

func TestDataWidthNoOverride(t *testing.T) {
	s := New()
	require.EqualValues(t, 15, s.DataWidth(plainEntry()))
}

func TestDataWidthCommonOverride(t *testing.T) {
	s := New()
	s.CommonDataWidth = int32p(130) // c-128 = 2
	require.EqualValues(t, 17, s.DataWidth(plainEntry()))
}

func TestDataWidthLocalOverrideWins(t *testing.T) {
	s := New()
	s.CommonDataWidth = int32p(130)
	s.LocalDataWidth = int32p(9)
	require.EqualValues(t, 9, s.DataWidth(plainEntry()))
}

func TestDataWidthNoChangeEntryIgnoresCommon(t *testing.T) {
	s := New()
	s.CommonDataWidth = int32p(200)
	e := plainEntry()
	e.Unit = tabentry.UnitCodeTable
	require.Equal(t, e.DataWidthBits, s.DataWidth(e))
}

func TestScaleTempOperatorDiscardsCommonScale(t *testing.T) {
	s := New()
	s.CommonScale = int32p(5)
	s.TempOperator = int32p(2)
	e := plainEntry()
	require.EqualValues(t, e.Scale+2, s.Scale(e))
}

func TestScaleCommonOverrideWithoutTemp(t *testing.T) {
	s := New()
	s.CommonScale = int32p(120) // 128-120 = 8
	e := plainEntry()
	require.EqualValues(t, e.Scale+8, s.Scale(e))
}

func TestReferenceTempOperatorScalesByPowerOfTen(t *testing.T) {
	s := New()
	s.TempOperator = int32p(2)
	e := plainEntry()
	require.EqualValues(t, int32(float32(e.ReferenceValue)*100), s.Reference(e))
}

func TestClearPerElement(t *testing.T) {
	s := New()
	s.TempOperator = int32p(1)
	s.LocalDataWidth = int32p(1)
	s.ClearPerElement()
	require.Nil(t, s.TempOperator)
	require.Nil(t, s.LocalDataWidth)
}

func TestCompilerStateApplyOperatorRejectsStringOperators(t *testing.T) {
	s := NewCompilerState()
	require.False(t, s.ApplyOperator(5, 3))
	require.False(t, s.ApplyOperator(8, 3))
}

func TestCompilerStateApplyOperatorZeroClearsOverride(t *testing.T) {
	s := NewCompilerState()
	require.True(t, s.ApplyOperator(1, 5))
	require.NotNil(t, s.CommonDataWidth)
	require.True(t, s.ApplyOperator(1, 0))
	require.Nil(t, s.CommonDataWidth)
}
