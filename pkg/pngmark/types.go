package pngmark

// ChunkInfo is the display projection of a chunk used by the CLI table
// and the daemon's JSON responses.
type ChunkInfo struct {
	Type       string `json:"type"`
	Length     uint32 `json:"length"`
	CRC        uint32 `json:"crc"`
	Critical   bool   `json:"critical"`
	Public     bool   `json:"public"`
	SafeToCopy bool   `json:"safeToCopy"`
	Valid      bool   `json:"valid"`
}
