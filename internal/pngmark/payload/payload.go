// Package payload prepares messages for embedding into ancillary chunks.
// Messages can optionally be LZMA-compressed so large text payloads don't
// bloat the carrier file.
package payload

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// Pack returns the bytes to store in a chunk's data field
func Pack(msg []byte, compress bool) ([]byte, error) {
	if !compress {
		out := make([]byte, len(msg))
		copy(out, msg)
		return out, nil
	}

	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("creating lzma writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return nil, fmt.Errorf("compressing payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flushing lzma writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack recovers a message from a chunk's data field
func Unpack(data []byte, compressed bool) ([]byte, error) {
	if !compressed {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating lzma reader: %w", err)
	}
	msg, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w", err)
	}
	return msg, nil
}
