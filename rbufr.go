// Package rbufr decodes WMO BUFR binary meteorological messages: bit-packed,
// table-driven records whose wire layout is resolved against versioned
// Table B (element) and Table D (sequence) catalogs.
//
// # Basic usage
//
// Reading every message out of a file (gzip-wrapped or not) and decoding
// each one against catalogs rooted at a tables directory:
//
//	file, err := rbufr.ParseFile("obs.bufr")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i := 0; i < file.Count(); i++ {
//	    msg := file.At(i)
//	    parsed, err := rbufr.Decode(msg, "tables")
//	    if err != nil {
//	        log.Printf("message %d: %v", i, err)
//	        continue
//	    }
//	    fmt.Println(parsed.String())
//	}
//
// # Package structure
//
// This file provides convenient top-level wrappers around ingest and
// decoder. For catalog construction from source CSVs, batch ingestion
// details, and CLI usage, see the ingest and cmd/rbufrdump packages.
package rbufr

import (
	"bytes"

	"github.com/sleptworld/rbufr/decoder"
	"github.com/sleptworld/rbufr/ingest"
	"github.com/sleptworld/rbufr/message"
	"github.com/sleptworld/rbufr/record"
)

// Parse reads every BUFR message out of data, transparently decompressing
// a gzip wrapper if present.
func Parse(data []byte) (*message.File, error) {
	return ingest.Parse(bytes.NewReader(data))
}

// ParseFile is Parse over a file path.
func ParseFile(path string) (*message.File, error) {
	return ingest.ParseFile(path)
}

// Decode resolves the Table B/D catalogs msg was encoded against (rooted
// at tablesDir) and interprets its descriptor program, returning the
// fully decoded record set. The catalogs are closed before Decode
// returns; callers decoding many messages against the same tables
// directory should use decoder.FromMessage/(*Decoder).Close directly to
// avoid reopening catalogs per message.
func Decode(msg *message.Message, tablesDir string) (*record.Parsed, error) {
	dec, err := decoder.FromMessage(msg, tablesDir)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.Decode(msg)
}
