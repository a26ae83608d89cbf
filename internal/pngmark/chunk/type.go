package chunk

import "fmt"

// Type is a 4-byte PNG chunk type code. The case of each byte (bit 5)
// encodes one property flag, so the raw bytes are kept verbatim and the
// flags are derived on demand.
type Type [4]byte

// TypeFromBytes creates a Type from raw bytes. It never fails: non-alphabetic
// type codes stay representable so malformed files can still be inspected.
func TypeFromBytes(b [4]byte) Type {
	return Type(b)
}

// ParseType creates a Type from a human-authored string. Unlike
// TypeFromBytes it rejects anything that is not exactly 4 ASCII letters.
func ParseType(s string) (Type, error) {
	if len(s) != 4 {
		return Type{}, fmt.Errorf("type code %q: %w", s, ErrInvalidTypeCode)
	}
	var t Type
	for i := 0; i < 4; i++ {
		if !isAlpha(s[i]) {
			return Type{}, fmt.Errorf("type code %q: %w", s, ErrInvalidTypeCode)
		}
		t[i] = s[i]
	}
	return t, nil
}

// Bytes returns the raw 4-byte representation
func (t Type) Bytes() [4]byte {
	return [4]byte(t)
}

// String returns the type code as ASCII text
func (t Type) String() string {
	return string(t[:])
}

// IsValid reports whether all 4 bytes are ASCII letters and the reserved
// bit is clear (byte 2 uppercase), as required by the current PNG revision.
func (t Type) IsValid() bool {
	for _, b := range t {
		if !isAlpha(b) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

// IsCritical reports whether the chunk is critical (byte 0 uppercase)
func (t Type) IsCritical() bool {
	return t[0]&0x20 == 0
}

// IsPublic reports whether the chunk type is publicly registered
// (byte 1 uppercase)
func (t Type) IsPublic() bool {
	return t[1]&0x20 == 0
}

// IsReservedBitValid reports whether the reserved bit is clear
// (byte 2 uppercase)
func (t Type) IsReservedBitValid() bool {
	return t[2]&0x20 == 0
}

// IsSafeToCopy reports whether editors may copy the chunk without
// understanding it (byte 3 lowercase)
func (t Type) IsSafeToCopy() bool {
	return t[3]&0x20 != 0
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
