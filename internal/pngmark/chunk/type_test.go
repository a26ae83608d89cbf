package chunk

import (
	"errors"
	"testing"
)

func TestTypeFromBytes(t *testing.T) {
	typ := TypeFromBytes([4]byte{82, 117, 83, 116})
	if got := typ.Bytes(); got != [4]byte{82, 117, 83, 116} {
		t.Errorf("expected raw bytes back, got %v", got)
	}
	if typ.String() != "RuSt" {
		t.Errorf("expected RuSt, got %s", typ.String())
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("RuSt")
	if err != nil {
		t.Fatalf("parsing RuSt: %v", err)
	}
	if typ.Bytes() != [4]byte{82, 117, 83, 116} {
		t.Errorf("unexpected bytes: %v", typ.Bytes())
	}

	other := TypeFromBytes([4]byte{'R', 'u', 'S', 't'})
	if typ != other {
		t.Error("expected equal types for equal bytes")
	}
}

func TestParseTypeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"digit", "Ru1t"},
		{"too short", "RuS"},
		{"too long", "RuSty"},
		{"empty", ""},
		{"space", "Ru t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseType(tt.input); !errors.Is(err, ErrInvalidTypeCode) {
				t.Errorf("expected ErrInvalidTypeCode, got %v", err)
			}
		})
	}
}

func TestTypeProperties(t *testing.T) {
	tests := []struct {
		code       string
		critical   bool
		public     bool
		reserved   bool
		safeToCopy bool
	}{
		{"RuSt", true, false, true, true},
		{"ruSt", false, false, true, true},
		{"RUSt", true, true, true, true},
		{"RuST", true, false, false, false},
		{"rust", false, false, false, true},
		{"RUST", true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			typ, err := ParseType(tt.code)
			if err != nil {
				t.Fatalf("parsing %s: %v", tt.code, err)
			}
			if typ.IsCritical() != tt.critical {
				t.Errorf("IsCritical = %v, want %v", typ.IsCritical(), tt.critical)
			}
			if typ.IsPublic() != tt.public {
				t.Errorf("IsPublic = %v, want %v", typ.IsPublic(), tt.public)
			}
			if typ.IsReservedBitValid() != tt.reserved {
				t.Errorf("IsReservedBitValid = %v, want %v", typ.IsReservedBitValid(), tt.reserved)
			}
			if typ.IsSafeToCopy() != tt.safeToCopy {
				t.Errorf("IsSafeToCopy = %v, want %v", typ.IsSafeToCopy(), tt.safeToCopy)
			}
		})
	}
}

func TestTypeValidity(t *testing.T) {
	valid, err := ParseType("RuSt")
	if err != nil {
		t.Fatalf("parsing RuSt: %v", err)
	}
	if !valid.IsValid() {
		t.Error("RuSt should be valid")
	}

	// Reserved bit set (byte 2 lowercase) is representable but not valid.
	reserved, err := ParseType("RuST")
	if err != nil {
		t.Fatalf("parsing RuST: %v", err)
	}
	if reserved.IsValid() {
		t.Error("RuST should not be valid")
	}

	// Non-alphabetic bytes survive the byte constructor but fail validity.
	raw := TypeFromBytes([4]byte{'R', 'u', '1', 't'})
	if raw.IsValid() {
		t.Error("Ru1t should not be valid")
	}
	if raw.String() != "Ru1t" {
		t.Errorf("raw bytes should round-trip to text, got %s", raw.String())
	}
}
