// Package chunk implements the PNG chunk wire format: length-prefixed,
// type-tagged, CRC-checked binary records. It is pure in-memory
// transformation; file handling lives with the callers.
package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// headerSize is length + type, trailerSize the CRC field. A chunk with
// empty data is exactly headerSize+trailerSize bytes.
const (
	headerSize  = 8
	trailerSize = 4
)

// Chunk is one PNG chunk. The length field is derived from the data and
// the CRC always covers type bytes followed by data; both invariants are
// maintained by construction and enforced on parse.
type Chunk struct {
	typ  Type
	data []byte
	crc  uint32
}

// New creates a chunk from application data, computing the CRC. The type
// may be invalid per Type.IsValid; construction never fails.
func New(t Type, data []byte) *Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Chunk{
		typ:  t,
		data: owned,
		crc:  Checksum(t, owned),
	}
}

// Checksum computes the CRC-32/IEEE over the type bytes followed by data,
// the value the chunk's CRC field must carry.
func Checksum(t Type, data []byte) uint32 {
	crc := crc32.NewIEEE()
	tb := t.Bytes()
	crc.Write(tb[:])
	crc.Write(data)
	return crc.Sum32()
}

// Decode parses one chunk from the front of buf and returns it together
// with the remaining bytes, supporting sequential parsing of a chunk
// stream. A CRC disagreement rejects the chunk outright; there is no
// partial recovery.
func Decode(buf []byte) (*Chunk, []byte, error) {
	if len(buf) < headerSize+trailerSize {
		return nil, nil, fmt.Errorf("%d bytes: %w", len(buf), ErrTooShort)
	}

	length := binary.BigEndian.Uint32(buf[0:4])
	typ := TypeFromBytes([4]byte(buf[4:8]))

	crcStart := headerSize + int(length)
	if crcStart+trailerSize > len(buf) {
		return nil, nil, fmt.Errorf("declared length %d overruns %d byte buffer: %w",
			length, len(buf), ErrTruncatedData)
	}

	data := make([]byte, length)
	copy(data, buf[headerSize:crcStart])

	provided := binary.BigEndian.Uint32(buf[crcStart : crcStart+trailerSize])
	computed := crc32.ChecksumIEEE(buf[4:crcStart])
	if provided != computed {
		return nil, nil, fmt.Errorf("chunk %q: computed %d, stored %d: %w",
			typ, computed, provided, ErrCRCMismatch)
	}

	c := &Chunk{
		typ:  typ,
		data: data,
		crc:  computed,
	}
	return c, buf[crcStart+trailerSize:], nil
}

// DecodeExact parses a buffer that must hold exactly one chunk; any bytes
// beyond the chunk's serialized region fail with ErrTrailingData.
func DecodeExact(buf []byte) (*Chunk, error) {
	c, rest, err := Decode(buf)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d extra bytes: %w", len(rest), ErrTrailingData)
	}
	return c, nil
}

// Bytes serializes the chunk: big-endian length, type, data, big-endian
// CRC. Decode(c.Bytes()) reproduces the chunk.
func (c *Chunk) Bytes() []byte {
	out := make([]byte, 0, headerSize+len(c.data)+trailerSize)
	out = binary.BigEndian.AppendUint32(out, uint32(len(c.data)))
	tb := c.typ.Bytes()
	out = append(out, tb[:]...)
	out = append(out, c.data...)
	out = binary.BigEndian.AppendUint32(out, c.crc)
	return out
}

// Length returns the byte count of the data field
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk's type code
func (c *Chunk) Type() Type {
	return c.typ
}

// Data returns the chunk's payload
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the chunk's checksum over type and data
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// DataAsString returns the payload as text for display of text-bearing
// chunks. Binary payloads fail with ErrEncoding without affecting the
// chunk's validity.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("chunk %q: %w", c.typ, ErrEncoding)
	}
	return string(c.data), nil
}
