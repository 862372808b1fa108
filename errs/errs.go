// Package errs defines the sentinel error taxonomy surfaced by the core
// decoder. Errors from the bitreader, fxy, message, ingest/csv and decoder
// packages wrap exactly one of these sentinels, so callers can classify
// them with errors.Is regardless of the wrapping context added along the
// way. Errors from creating, opening or validating catalog archives (the
// archive, catalog and mphf packages) and from ingest/config wrap none of
// them, including the local-table load errors decoder.FromMessage passes
// through unchanged.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. These are the only kinds the packages listed above
// emit; nothing here is retried internally.
var (
	// ErrIo wraps an underlying I/O failure (file open, read, mmap).
	ErrIo = errors.New("rbufr: io error")

	// ErrCsv wraps an underlying CSV-parsing failure during catalog ingestion.
	ErrCsv = errors.New("rbufr: csv error")

	// ErrTableNotFound indicates no catalog file could be loaded for any
	// requested version.
	ErrTableNotFound = errors.New("rbufr: table not found")

	// ErrParse indicates a structural or semantic decode failure (bad
	// marker, unknown descriptor, malformed section, sequence cycle).
	ErrParse = errors.New("rbufr: parse error")

	// ErrUnsupportedVersion indicates a BUFR edition other than 2 or 4.
	ErrUnsupportedVersion = errors.New("rbufr: unsupported edition")

	// ErrUnderflow indicates the bit stream was exhausted before the
	// requested number of bits could be read.
	ErrUnderflow = errors.New("rbufr: bit stream underflow")

	// ErrInvalidUtf8 indicates a CCITT IA5 field did not decode as valid
	// UTF-8/ASCII.
	ErrInvalidUtf8 = errors.New("rbufr: invalid utf-8")
)

// Parse wraps ErrParse with a specific reason, matching the decoder's
// `Error::ParseError(String)` counterpart in the original implementation.
func Parse(reason string) error {
	return fmt.Errorf("%w: %s", ErrParse, reason)
}

// Parsef is Parse with printf-style formatting.
func Parsef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// UnsupportedVersion wraps ErrUnsupportedVersion naming the offending edition.
func UnsupportedVersion(edition uint8) error {
	return fmt.Errorf("%w: edition %d", ErrUnsupportedVersion, edition)
}

// Io wraps ErrIo around an underlying error.
func Io(err error) error {
	return fmt.Errorf("%w: %w", ErrIo, err)
}

// Csv wraps ErrCsv around an underlying error.
func Csv(err error) error {
	return fmt.Errorf("%w: %w", ErrCsv, err)
}

// TableNotFound wraps ErrTableNotFound naming what was sought.
func TableNotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrTableNotFound, what)
}
