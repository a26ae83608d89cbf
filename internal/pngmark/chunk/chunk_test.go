package chunk

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

const testMessage = "This is where your secret message will be!"

const testCRC = 2882656334

// testChunkBytes builds the serialized form of a RuSt chunk carrying
// testMessage with the given CRC field.
func testChunkBytes(t *testing.T, crc uint32) []byte {
	t.Helper()

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(len(testMessage)))
	buf.WriteString("RuSt")
	buf.WriteString(testMessage)
	binary.Write(&buf, binary.BigEndian, crc)
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	c, rest, err := Decode(testChunkBytes(t, testCRC))
	if err != nil {
		t.Fatalf("decoding chunk: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remainder, got %d bytes", len(rest))
	}
	if c.Length() != 42 {
		t.Errorf("length = %d, want 42", c.Length())
	}
	if c.Type().String() != "RuSt" {
		t.Errorf("type = %s, want RuSt", c.Type())
	}
	if c.CRC() != testCRC {
		t.Errorf("crc = %d, want %d", c.CRC(), testCRC)
	}
	msg, err := c.DataAsString()
	if err != nil {
		t.Fatalf("reading data as string: %v", err)
	}
	if msg != testMessage {
		t.Errorf("message = %q, want %q", msg, testMessage)
	}
}

func TestDecodeRejectsBadCRC(t *testing.T) {
	if _, _, err := Decode(testChunkBytes(t, testCRC-1)); !errors.Is(err, ErrCRCMismatch) {
		t.Errorf("expected ErrCRCMismatch, got %v", err)
	}
	if _, err := DecodeExact(testChunkBytes(t, testCRC-1)); !errors.Is(err, ErrCRCMismatch) {
		t.Errorf("expected ErrCRCMismatch from DecodeExact, got %v", err)
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	for n := 0; n < 12; n++ {
		if _, _, err := Decode(make([]byte, n)); !errors.Is(err, ErrTooShort) {
			t.Errorf("%d bytes: expected ErrTooShort, got %v", n, err)
		}
	}
}

func TestDecodeRejectsTruncatedData(t *testing.T) {
	raw := testChunkBytes(t, testCRC)

	// Cutting the tail leaves a declared length the buffer cannot satisfy.
	if _, _, err := Decode(raw[:len(raw)-8]); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("expected ErrTruncatedData, got %v", err)
	}
}

func TestDecodeReturnsRemainder(t *testing.T) {
	trailer := []byte("next chunk bytes")
	raw := append(testChunkBytes(t, testCRC), trailer...)

	c, rest, err := Decode(raw)
	if err != nil {
		t.Fatalf("decoding chunk: %v", err)
	}
	if !bytes.Equal(rest, trailer) {
		t.Errorf("remainder = %q, want %q", rest, trailer)
	}
	if c.Length() != 42 {
		t.Errorf("length = %d, want 42", c.Length())
	}

	if _, err := DecodeExact(raw); !errors.Is(err, ErrTrailingData) {
		t.Errorf("expected ErrTrailingData, got %v", err)
	}
}

func TestNewComputesCRC(t *testing.T) {
	typ, err := ParseType("RuSt")
	if err != nil {
		t.Fatalf("parsing type: %v", err)
	}

	c := New(typ, []byte(testMessage))
	if c.CRC() != testCRC {
		t.Errorf("crc = %d, want %d", c.CRC(), testCRC)
	}
	if c.Length() != 42 {
		t.Errorf("length = %d, want 42", c.Length())
	}
	if !bytes.Equal(c.Bytes(), testChunkBytes(t, testCRC)) {
		t.Error("serialized chunk differs from reference bytes")
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		code string
		data []byte
	}{
		{"text", "teXt", []byte("hello png")},
		{"empty data", "IEND", nil},
		{"binary data", "IDAT", []byte{0, 1, 2, 0xff, 0xfe, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := ParseType(tt.code)
			if err != nil {
				t.Fatalf("parsing type: %v", err)
			}

			orig := New(typ, tt.data)
			parsed, err := DecodeExact(orig.Bytes())
			if err != nil {
				t.Fatalf("decoding serialized chunk: %v", err)
			}

			if parsed.Type() != orig.Type() {
				t.Errorf("type = %s, want %s", parsed.Type(), orig.Type())
			}
			if parsed.Length() != orig.Length() {
				t.Errorf("length = %d, want %d", parsed.Length(), orig.Length())
			}
			if !bytes.Equal(parsed.Data(), orig.Data()) {
				t.Errorf("data = %v, want %v", parsed.Data(), orig.Data())
			}
			if parsed.CRC() != orig.CRC() {
				t.Errorf("crc = %d, want %d", parsed.CRC(), orig.CRC())
			}
		})
	}
}

func TestCRCSensitivity(t *testing.T) {
	raw := testChunkBytes(t, testCRC)

	// Flipping any single bit of the type or data region must be caught.
	for i := 4; i < len(raw)-4; i++ {
		for bit := uint(0); bit < 8; bit++ {
			corrupted := make([]byte, len(raw))
			copy(corrupted, raw)
			corrupted[i] ^= 1 << bit

			if _, _, err := Decode(corrupted); !errors.Is(err, ErrCRCMismatch) {
				t.Fatalf("byte %d bit %d: expected ErrCRCMismatch, got %v", i, bit, err)
			}
		}
	}
}

func TestDataAsStringRejectsBinary(t *testing.T) {
	typ, err := ParseType("IDAT")
	if err != nil {
		t.Fatalf("parsing type: %v", err)
	}

	c := New(typ, []byte{0xff, 0xfe, 0xfd})
	if _, err := c.DataAsString(); !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}

	// The text view failing must not invalidate the chunk itself.
	if _, err := DecodeExact(c.Bytes()); err != nil {
		t.Errorf("chunk should still round-trip: %v", err)
	}
}

func TestChecksum(t *testing.T) {
	typ, err := ParseType("RuSt")
	if err != nil {
		t.Fatalf("parsing type: %v", err)
	}
	if got := Checksum(typ, []byte(testMessage)); got != testCRC {
		t.Errorf("checksum = %d, want %d", got, testCRC)
	}
}
