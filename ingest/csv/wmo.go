// Package csv converts the two recognized catalog source CSV families
// (WMO and Météo-France) into tabentry.BEntry/tabentry.DEntry slices fit
// for catalog.BuildB/BuildD.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

// These are the header names a WMO Table B CSV is expected to
// carry; columns are looked up by name rather than position since the
// WMO export adds and reorders columns across releases.
const (
	colFXY                = "FXY"
	colElementNameEn      = "ElementName_en"
	colBUFRUnit           = "BUFR_Unit"
	colBUFRScale          = "BUFR_Scale"
	colBUFRReferenceValue = "BUFR_ReferenceValue"
	colBUFRDataWidthBits  = "BUFR_DataWidth_Bits"
	colClassNameEn        = "ClassName_en"
	colNoteEn             = "Note_en"
	colNoteIDs            = "NoteIDs"
	colStatus             = "Status"
)

// LoadWMOBTable reads a header-bearing, comma-delimited WMO Table B CSV.
// Malformed rows are skipped with a warning, not a fatal error, matching
// the reference loader's tolerant behavior.
func LoadWMOBTable(path string) ([]tabentry.BEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Io(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ','
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errs.Csv(err)
	}
	idx := columnIndex(header)

	var entries []tabentry.BEntry
	lineNum := 1
	for {
		row, err := r.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
			continue
		}

		entry, err := wmoRowToBEntry(row, idx)
		if err != nil {
			log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func field(row []string, idx map[string]int, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// cleanNumeric strips everything but digits, sign, decimal point and
// exponent markers, mirroring the reference parser's character filter
// for numeric-ish fields that sometimes carry stray whitespace or units.
func cleanNumeric(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c == '-', c == '+', c == '.', c == 'e', c == 'E':
			b.WriteRune(c)
		}
	}
	return b.String()
}

func wmoRowToBEntry(row []string, idx map[string]int) (tabentry.BEntry, error) {
	fxyStr, ok := field(row, idx, colFXY)
	if !ok {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("missing %s column", colFXY))
	}
	key, err := fxy.Parse(strings.TrimSpace(fxyStr))
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(err)
	}

	elementName, _ := field(row, idx, colElementNameEn)
	className, hasClass := field(row, idx, colClassNameEn)
	if !hasClass {
		className = elementName
	}
	unit, _ := field(row, idx, colBUFRUnit)

	scaleStr, _ := field(row, idx, colBUFRScale)
	scale, err := strconv.ParseInt(cleanNumeric(scaleStr), 10, 32)
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("%s: %w", colBUFRScale, err))
	}

	refStr, _ := field(row, idx, colBUFRReferenceValue)
	ref, err := strconv.ParseInt(cleanNumeric(refStr), 10, 32)
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("%s: %w", colBUFRReferenceValue, err))
	}

	widthStr, _ := field(row, idx, colBUFRDataWidthBits)
	width, err := strconv.ParseUint(cleanNumeric(widthStr), 10, 32)
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("%s: %w", colBUFRDataWidthBits, err))
	}

	noteEn, _ := field(row, idx, colNoteEn)
	noteIDs, _ := field(row, idx, colNoteIDs)
	status, _ := field(row, idx, colStatus)

	return tabentry.BEntry{
		FXY:            key,
		ClassNameEn:    strings.TrimSpace(className),
		ElementNameEn:  strings.TrimSpace(elementName),
		Unit:           strings.TrimSpace(unit),
		Scale:          int32(scale),
		ReferenceValue: int32(ref),
		DataWidthBits:  uint32(width),
		NoteEn:         noteEn,
		NoteIDs:        noteIDs,
		Status:         status,
	}, nil
}
