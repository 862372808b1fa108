package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

// LoadFRBTable reads a headerless, semicolon-delimited Météo-France Table
// B CSV: columns 0-2 are F/X/Y, column 3 the element name, 4 the unit, 5
// the scale, 6 the reference value, 7 the data width in bits.
func LoadFRBTable(path string) ([]tabentry.BEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Io(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	var entries []tabentry.BEntry
	lineNum := 0
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
		if len(row) < 8 {
			continue
		}

		entry, err := frRowToBEntry(row)
		if err != nil {
			log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func frRowToBEntry(row []string) (tabentry.BEntry, error) {
	f, err := strconv.Atoi(cleanAlnum(row[0]))
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("f field: %w", err))
	}
	x, err := strconv.Atoi(cleanAlnum(row[1]))
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("x field: %w", err))
	}
	y, err := strconv.Atoi(cleanAlnum(row[2]))
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("y field: %w", err))
	}
	key := fxy.New(f, x, y)

	name := row[3]
	unit := row[4]

	scale, err := strconv.ParseInt(cleanNumeric(row[5]), 10, 32)
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("scale field: %w", err))
	}
	ref, err := strconv.ParseInt(cleanNumeric(row[6]), 10, 32)
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("reference field: %w", err))
	}
	width, err := strconv.ParseUint(cleanNumeric(row[7]), 10, 32)
	if err != nil {
		return tabentry.BEntry{}, errs.Csv(fmt.Errorf("width field: %w", err))
	}

	return tabentry.BEntry{
		FXY:            key,
		ClassNameEn:    name,
		ElementNameEn:  name,
		Unit:           unit,
		Scale:          int32(scale),
		ReferenceValue: int32(ref),
		DataWidthBits:  uint32(width),
	}, nil
}

// cleanAlnum strips everything but alphanumerics, matching the reference
// parser's character filter for strictly-integer positional fields.
func cleanAlnum(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b = append(b, c)
		}
	}
	return string(b)
}
