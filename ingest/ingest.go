// Package ingest is the batch entry point over whole files: it sniffs an
// optional gzip wrapper, scans for every BUFR message marker, and parses
// each message it finds, skipping (and logging) any that fail to read or
// parse rather than aborting the whole file.
package ingest

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/sleptworld/rbufr/internal/pool"
	"github.com/sleptworld/rbufr/message"
)

var gzipMagic = [2]byte{0x1F, 0x8B}

// ParseFile reads path, transparently decompressing it first if it
// carries a gzip wrapper, and returns every BUFR message recognized
// inside it. A message that fails to read or parse is logged and
// skipped; ParseFile only returns an error for a failure that prevents
// opening or fully buffering the input itself.
func ParseFile(path string) (*message.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse is ParseFile's underlying primitive over an already-open reader.
func Parse(r io.Reader) (*message.File, error) {
	var magic [2]byte
	n, err := io.ReadFull(r, magic[:])

	var body io.ReadSeeker
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		body = bytes.NewReader(magic[:n])
	case err != nil:
		return nil, err
	case magic == gzipMagic:
		buf, err := decompressGzip(magic, r)
		if err != nil {
			return nil, err
		}
		defer pool.PutFileBuffer(buf)
		body = bytes.NewReader(buf.Bytes())
	default:
		buf := pool.GetFileBuffer()
		defer pool.PutFileBuffer(buf)

		buf.MustWrite(magic[:n])
		if _, err := io.Copy(buf, r); err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf.Bytes())
	}

	return parseInner(body)
}

// decompressGzip drains a gzip-wrapped reader into a pooled buffer. The
// caller owns the returned buffer and must return it via
// pool.PutFileBuffer once done reading its bytes; message.ReadMessageAt
// copies out whatever bytes each message needs, so nothing downstream
// keeps a reference into this buffer past parseInner's return.
func decompressGzip(magic [2]byte, r io.Reader) (*pool.ByteBuffer, error) {
	full := io.MultiReader(bytes.NewReader(magic[:]), r)
	gz, err := gzip.NewReader(full)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	buf := pool.GetFileBuffer()
	if _, err := io.Copy(buf, gz); err != nil {
		pool.PutFileBuffer(buf)
		return nil, err
	}
	return buf, nil
}

// parseInner drives the skip-and-continue scan: find every "BUFR" marker,
// read the message at each offset, parse it, and keep going past any
// single failure.
func parseInner(r io.ReadSeeker) (*message.File, error) {
	offsets, err := message.FindOffsets(r)
	if err != nil {
		return nil, err
	}

	file := message.NewFile()
	for _, offset := range offsets {
		data, err := message.ReadMessageAt(r, offset)
		if err != nil {
			log.Printf("ingest: failed to read message at offset %d: %v", offset, err)
			continue
		}

		msg, err := message.Parse(data)
		if err != nil {
			log.Printf("ingest: failed to parse message at offset %d: %v", offset, err)
			continue
		}

		file.Append(msg)
	}

	return file, nil
}
