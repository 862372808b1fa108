package csv

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"

	"github.com/sleptworld/rbufr/errs"
	"github.com/sleptworld/rbufr/fxy"
	"github.com/sleptworld/rbufr/tabentry"
)

const (
	colElementFXY            = "ElementFXY"
	colCategory              = "Category"
	colCategoryOfSequencesEn = "CategoryOfSequences_en"
	colTitleEn               = "Title_en"
	colSubTitleEn            = "SubTitle_en"
)

// LoadWMOTableD reads a header-bearing WMO Table D CSV. Each sequence
// spans one or more rows: the first row of a sequence carries a non-empty
// FXY column (the sequence's own descriptor); continuation rows leave FXY
// blank and contribute one more element to the prior row's chain.
func LoadWMOTableD(path string) ([]tabentry.DEntry, error) {
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

	var entries []tabentry.DEntry
	var current *tabentry.DEntry
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

		seqStr, hasSeq := field(row, idx, colFXY)
		seqStr = strings.TrimSpace(seqStr)

		elemStr, _ := field(row, idx, colElementFXY)
		elem, err := fxy.Parse(strings.TrimSpace(elemStr))
		if err != nil {
			log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
			continue
		}

		if hasSeq && seqStr != "" {
			if current != nil {
				entries = append(entries, *current)
			}

			key, err := fxy.Parse(seqStr)
			if err != nil {
				log.Printf("ingest/csv: skipping line %d in %s: %v", lineNum, path, err)
				current = nil
				continue
			}

			category, _ := field(row, idx, colCategory)
			categoryEn, _ := field(row, idx, colCategoryOfSequencesEn)
			title, _ := field(row, idx, colTitleEn)
			subtitle, _ := field(row, idx, colSubTitleEn)
			noteEn, _ := field(row, idx, colNoteEn)
			noteIDs, _ := field(row, idx, colNoteIDs)
			status, _ := field(row, idx, colStatus)

			current = &tabentry.DEntry{
				FXY:                   key,
				Chain:                 []fxy.FXY{elem},
				Category:              category,
				CategoryOfSequencesEn: categoryEn,
				TitleEn:               title,
				SubtitleEn:            subtitle,
				NoteEn:                noteEn,
				NoteIDs:               noteIDs,
				Status:                status,
			}
		} else {
			if current == nil {
				log.Printf("ingest/csv: skipping line %d in %s: continuation row without sequence header", lineNum, path)
				continue
			}
			current.Chain = append(current.Chain, elem)
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}
	return entries, nil
}
