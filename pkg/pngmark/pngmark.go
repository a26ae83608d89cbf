// Package pngmark is the public API over the chunk codec and PNG
// container. The CLI and the daemon drive everything through this package.
package pngmark

import (
	"fmt"

	"github.com/systemshift/pngmark/internal/pngmark/chunk"
	"github.com/systemshift/pngmark/internal/pngmark/payload"
	"github.com/systemshift/pngmark/internal/pngmark/png"
)

// File wraps a parsed PNG image together with the path it came from
type File struct {
	img  *png.Image
	path string
}

// Open reads and parses a PNG file
func Open(path string) (*File, error) {
	img, err := png.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{img: img, path: path}, nil
}

// FromBytes parses an in-memory PNG body
func FromBytes(body []byte) (*File, error) {
	img, err := png.Decode(body)
	if err != nil {
		return nil, err
	}
	return &File{img: img}, nil
}

// EmbedOptions controls how a message is stored
type EmbedOptions struct {
	// Compress stores the message LZMA-compressed.
	Compress bool
}

// Embed stores a message in a new chunk of the given type, inserted before
// the IEND trailer when one exists.
func (f *File) Embed(typeCode string, msg []byte, opts EmbedOptions) error {
	t, err := chunk.ParseType(typeCode)
	if err != nil {
		return err
	}

	data, err := payload.Pack(msg, opts.Compress)
	if err != nil {
		return fmt.Errorf("packing message: %w", err)
	}

	f.img.AppendChunk(chunk.New(t, data))
	return nil
}

// Extract returns the message carried by the first chunk of the given type
func (f *File) Extract(typeCode string, opts EmbedOptions) ([]byte, error) {
	t, err := chunk.ParseType(typeCode)
	if err != nil {
		return nil, err
	}

	c := f.img.ChunkByType(t)
	if c == nil {
		return nil, fmt.Errorf("chunk %q: %w", typeCode, png.ErrChunkNotFound)
	}

	msg, err := payload.Unpack(c.Data(), opts.Compress)
	if err != nil {
		return nil, fmt.Errorf("unpacking message: %w", err)
	}
	return msg, nil
}

// Remove deletes the first chunk of the given type
func (f *File) Remove(typeCode string) error {
	t, err := chunk.ParseType(typeCode)
	if err != nil {
		return err
	}
	return f.img.RemoveChunk(t)
}

// Chunks returns display projections of every chunk in file order
func (f *File) Chunks() []ChunkInfo {
	chunks := f.img.Chunks()
	infos := make([]ChunkInfo, 0, len(chunks))
	for _, c := range chunks {
		infos = append(infos, chunkInfo(c))
	}
	return infos
}

// Bytes serializes the image
func (f *File) Bytes() []byte {
	return f.img.Bytes()
}

// Save writes the image back to its source path
func (f *File) Save() error {
	if f.path == "" {
		return fmt.Errorf("no source path; use SaveAs")
	}
	return f.img.WriteFile(f.path)
}

// SaveAs writes the image to a new path
func (f *File) SaveAs(path string) error {
	return f.img.WriteFile(path)
}

func chunkInfo(c *chunk.Chunk) ChunkInfo {
	t := c.Type()
	return ChunkInfo{
		Type:       t.String(),
		Length:     c.Length(),
		CRC:        c.CRC(),
		Critical:   t.IsCritical(),
		Public:     t.IsPublic(),
		SafeToCopy: t.IsSafeToCopy(),
		Valid:      t.IsValid(),
	}
}
