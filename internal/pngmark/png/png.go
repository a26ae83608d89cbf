// Package png implements the PNG container: the 8-byte file signature
// followed by a sequence of chunks. It tracks chunk order and locates
// chunks by type; it does not validate structural rules such as mandatory
// chunk presence or ordering, and never touches pixel data.
package png

import (
	"errors"
	"fmt"
	"os"

	"github.com/systemshift/pngmark/internal/pngmark/chunk"
)

// Signature is the fixed 8-byte sequence opening every PNG datastream.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

var (
	// ErrBadSignature reports a file body that does not start with the
	// PNG signature.
	ErrBadSignature = errors.New("missing png signature")

	// ErrChunkNotFound reports a chunk type absent from the image.
	ErrChunkNotFound = errors.New("chunk not found")
)

// Image is an ordered list of chunks parsed from or destined for a PNG
// file body.
type Image struct {
	chunks []*chunk.Chunk
}

// FromChunks creates an image from an existing chunk list
func FromChunks(chunks []*chunk.Chunk) *Image {
	return &Image{chunks: chunks}
}

// Decode parses a full PNG file body: signature check, then sequential
// chunk decoding driven by the remainder until the body is exhausted.
func Decode(body []byte) (*Image, error) {
	if len(body) < len(Signature) || [8]byte(body[:8]) != Signature {
		return nil, ErrBadSignature
	}

	img := &Image{}
	rest := body[len(Signature):]
	for len(rest) > 0 {
		c, r, err := chunk.Decode(rest)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", len(img.chunks), err)
		}
		img.chunks = append(img.chunks, c)
		rest = r
	}
	return img, nil
}

// ReadFile reads and decodes a PNG file
func ReadFile(path string) (*Image, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading png: %w", err)
	}
	img, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Bytes serializes the image: signature followed by each chunk in order
func (img *Image) Bytes() []byte {
	out := make([]byte, 0, len(Signature))
	out = append(out, Signature[:]...)
	for _, c := range img.chunks {
		out = append(out, c.Bytes()...)
	}
	return out
}

// WriteFile serializes the image to a file
func (img *Image) WriteFile(path string) error {
	if err := os.WriteFile(path, img.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}

// Chunks returns the chunk list in file order
func (img *Image) Chunks() []*chunk.Chunk {
	return img.chunks
}

// ChunkByType returns the first chunk with the given type, or nil
func (img *Image) ChunkByType(t chunk.Type) *chunk.Chunk {
	for _, c := range img.chunks {
		if c.Type() == t {
			return c
		}
	}
	return nil
}

// TypeIEND identifies the image trailer chunk.
var TypeIEND = chunk.TypeFromBytes([4]byte{'I', 'E', 'N', 'D'})

// AppendChunk adds a chunk to the image. When the image ends with an IEND
// trailer the chunk is inserted before it so the result stays a
// well-terminated PNG; otherwise it is appended.
func (img *Image) AppendChunk(c *chunk.Chunk) {
	if n := len(img.chunks); n > 0 && img.chunks[n-1].Type() == TypeIEND {
		img.chunks = append(img.chunks[:n-1], c, img.chunks[n-1])
		return
	}
	img.chunks = append(img.chunks, c)
}

// RemoveChunk deletes the first chunk with the given type
func (img *Image) RemoveChunk(t chunk.Type) error {
	for i, c := range img.chunks {
		if c.Type() == t {
			img.chunks = append(img.chunks[:i], img.chunks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("chunk %q: %w", t, ErrChunkNotFound)
}
