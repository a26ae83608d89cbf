package chunk

import "errors"

// Parse and decode failures form a closed set so callers can discriminate
// them with errors.Is. Nothing in this package retries or logs; corruption
// is reported to the caller and the chunk is rejected whole.
var (
	// ErrInvalidTypeCode reports a type string that is not 4 ASCII letters.
	ErrInvalidTypeCode = errors.New("chunk type must be 4 ASCII letters")

	// ErrTooShort reports a buffer smaller than the 12-byte minimum
	// (length + type + crc with empty data).
	ErrTooShort = errors.New("buffer too short for a chunk")

	// ErrTruncatedData reports a declared length that runs past the buffer.
	ErrTruncatedData = errors.New("chunk data truncated")

	// ErrCRCMismatch reports a stored CRC that disagrees with the CRC
	// recomputed over the type and data fields.
	ErrCRCMismatch = errors.New("chunk crc mismatch")

	// ErrTrailingData reports extra bytes after a strict single-chunk parse.
	ErrTrailingData = errors.New("trailing data after chunk")

	// ErrEncoding reports chunk data that is not valid UTF-8 when a text
	// view is requested. The chunk itself stays valid.
	ErrEncoding = errors.New("chunk data is not valid UTF-8")
)
