package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

// LoadFRTableD reads a headerless, semicolon-delimited Météo-France Table
// D CSV. A row with non-empty columns 0-2 starts a new sequence (its own
// F/X/Y); columns 3-5 name the first chain element. A row with columns
// 0-2 empty is a continuation line adding one more element (columns 3-5)
// to the sequence currently being built. A duplicate sequence descriptor
// is skipped with a warning rather than overwriting the first definition.
func LoadFRTableD(path string) ([]tabentry.DEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Io(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	var entries []tabentry.DEntry
	var current *tabentry.DEntry
	seen := make(map[fxy.FXY]bool)
	lineNum := 0

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

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
		if len(row) < 6 || allBlank(row) {
			continue
		}

		isNewSequence := cleanAlnum(row[0]) != "" && cleanAlnum(row[1]) != "" && cleanAlnum(row[2]) != ""

		if isNewSequence {
			key, err := parseFRFXY(row[0], row[1], row[2])
			if err != nil {
				log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
				continue
			}

			if seen[key] {
				log.Printf("ingest/csv: duplicate sequence descriptor %s in %s, line %d: skipping", key, path, lineNum)
				continue
			}

			elem, err := parseFRFXY(row[3], row[4], row[5])
			if err != nil {
				log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
				continue
			}

			flush()
			seen[key] = true
			current = &tabentry.DEntry{FXY: key, Chain: []fxy.FXY{elem}}
		} else {
			if current == nil {
				log.Printf("ingest/csv: skipping line %d in %s: continuation row without sequence header", lineNum, path)
				continue
			}
			elem, err := parseFRFXY(row[3], row[4], row[5])
			if err != nil {
				log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
				continue
			}
			current.Chain = append(current.Chain, elem)
		}
	}

	flush()
	return entries, nil
}

func allBlank(row []string) bool {
	for _, s := range row {
		if cleanAlnum(s) != "" {
			return false
		}
	}
	return true
}

func parseFRFXY(fs, xs, ys string) (fxy.FXY, error) {
	f, err := parseUintField(fs)
	if err != nil {
		return fxy.FXY{}, err
	}
	x, err := parseUintField(xs)
	if err != nil {
		return fxy.FXY{}, err
	}
	y, err := parseUintField(ys)
	if err != nil {
		return fxy.FXY{}, err
	}
	return fxy.New(f, x, y), nil
}

func parseUintField(s string) (int, error) {
	clean := cleanAlnum(s)
	if clean == "" {
		return 0, errs.Csv(fmt.Errorf("empty FXY field"))
	}
	n := 0
	for i := 0; i < len(clean); i++ {
		c := clean[i]
		if c < '0' || c > '9' {
			return 0, errs.Csv(fmt.Errorf("non-numeric FXY field %q", s))
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
