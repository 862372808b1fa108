package message

import (
	"io"

	"github.com/sleptworld/rbufr/errs"
)

const bufrMarker = "BUFR"

// bufferSize is the read chunk size used while scanning a stream for
// "BUFR" markers; chosen to match the original scanner's buffer.
const bufferSize = 8192

// FindOffsets scans r for every occurrence of the 4-byte "BUFR" marker,
// returning their byte offsets in ascending order. It carries the last
// len(marker)-1 bytes of each chunk into the next read so that a marker
// split across a chunk boundary is still found.
func FindOffsets(r io.ReadSeeker) ([]int64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errs.Io(err)
	}

	var offsets []int64
	buffer := make([]byte, bufferSize)
	var overlap [len(bufrMarker) - 1]byte
	overlapLen := 0
	var fileOffset int64

	for {
		n, readErr := r.Read(buffer)
		if n == 0 {
			if readErr == io.EOF || readErr == nil {
				break
			}
			return nil, errs.Io(readErr)
		}

		search := make([]byte, 0, overlapLen+n)
		search = append(search, overlap[:overlapLen]...)
		search = append(search, buffer[:n]...)

		for i := 0; i+len(bufrMarker) <= len(search); i++ {
			if string(search[i:i+len(bufrMarker)]) == bufrMarker {
				offsets = append(offsets, fileOffset-int64(overlapLen)+int64(i))
			}
		}

		if n >= len(bufrMarker)-1 {
			overlapLen = len(bufrMarker) - 1
			copy(overlap[:overlapLen], buffer[n-overlapLen:n])
		} else {
			overlapLen = n
			copy(overlap[:overlapLen], buffer[:n])
		}

		fileOffset += int64(n)

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errs.Io(readErr)
		}
	}

	return offsets, nil
}

// ReadMessageAt reads one complete message starting at offset, trusting
// Section 0's 3-byte total-length field to know how many bytes to take.
// It returns errs.ErrUnderflow if the stream ends before the declared
// length is satisfied — the "truncated tail" edge case.
func ReadMessageAt(r io.ReadSeeker, offset int64) ([]byte, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, errs.Io(err)
	}

	head := make([]byte, section0Size)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, errs.ErrUnderflow
	}

	section0, err := ParseSection0(head)
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, errs.Io(err)
	}

	buf := make([]byte, section0.TotalLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errs.ErrUnderflow
	}

	return buf, nil
}
