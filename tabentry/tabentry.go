// Package tabentry defines the Table B (element) and Table D (sequence)
// catalog entry types (C3): the immutable records the catalog package
// stores, archives, and looks up by descriptor key.
package tabentry

import (
	"fmt"
	"strings"

	"github.com/sleptworld/rbufr/fxy"
)

// Unit strings treated as code/flag tables: their width and scale are
// never touched by common_data_width/common_scale operator overrides.
const (
	UnitFlagTable  = "flag table"
	UnitFlagTable2 = "flag-table"
	UnitCodeTable  = "code table"
	UnitCodeTable2 = "code-table"
	UnitCCITTIA5   = "CCITT IA5"
)

// BEntry is one Table B element descriptor: a leaf that consumes data
// bits and decodes to a named, scaled numeric or string value.
type BEntry struct {
	FXY            fxy.FXY
	ClassNameEn    string
	ElementNameEn  string
	Unit           string
	Scale          int32
	ReferenceValue int32
	DataWidthBits  uint32
	NoteEn         string
	NoteIDs        string
	Status         string
}

// IsFlagOrCodeTable reports whether the element's unit exempts it from
// width/scale operator overrides (the "no-change" rule, spec §4.6).
func (e BEntry) IsFlagOrCodeTable() bool {
	switch e.Unit {
	case UnitFlagTable, UnitFlagTable2, UnitCodeTable, UnitCodeTable2:
		return true
	default:
		return false
	}
}

// NoChange reports whether width/scale overrides never apply to this
// entry: flag/code-table units, or the (F=0,X=31) delayed-replication
// counter family.
func (e BEntry) NoChange() bool {
	return e.IsFlagOrCodeTable() || e.FXY.IsDelayedReplicationCount()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// String renders a compact one-line description, truncating long
// names/units the way the original table-entry dump does.
func (e BEntry) String() string {
	return fmt.Sprintf("%s %-40s %-15s scale=%d ref=%d width=%d",
		e.FXY, truncate(e.ElementNameEn, 40), truncate(e.Unit, 15), e.Scale, e.ReferenceValue, e.DataWidthBits)
}

// DEntry is one Table D sequence descriptor: an ordered, non-empty chain
// of child FXY keys.
type DEntry struct {
	FXY                   fxy.FXY
	Chain                 []fxy.FXY
	Category              string
	CategoryOfSequencesEn string
	TitleEn               string
	SubtitleEn            string
	NoteEn                string
	NoteIDs               string
	Status                string
}

// String renders a compact one-line description of the sequence and its
// expansion chain, truncating long titles.
func (e DEntry) String() string {
	chain := make([]string, len(e.Chain))
	for i, c := range e.Chain {
		chain[i] = c.String()
	}
	return fmt.Sprintf("%s %-50s [%s]", e.FXY, truncate(e.TitleEn, 50), strings.Join(chain, ","))
}
