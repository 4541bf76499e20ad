package region

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Region
		wantErr bool
	}{
		{"de", DE, false},
		{"PL", PL, false},
		{" uz ", UZ, false},
		{"fr", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknown) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknown", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlphabet(t *testing.T) {
	if got := len(DE.Alphabet()); got != 52 {
		t.Errorf("DE alphabet size = %d, want 52", got)
	}
	if string(DE.Alphabet()) != string(PL.Alphabet()) {
		t.Error("DE and PL should share the Latin alphabet")
	}

	uz := UZ.Alphabet()
	if len(uz) != 62 {
		t.Errorf("UZ alphabet size = %d, want 62", len(uz))
	}
	for _, r := range uz {
		if utf8.RuneLen(r) != 2 {
			t.Errorf("UZ alphabet rune %q is not a two-byte Cyrillic letter", r)
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	got := All()
	if len(got) != 3 {
		t.Fatalf("All() length = %d, want 3", len(got))
	}
	got[0].Label = "changed"
	if All()[0].Label != "Germany" {
		t.Error("All() should return a copy")
	}
}

func TestLabel(t *testing.T) {
	if UZ.Label() != "Uzbekistan" {
		t.Errorf("UZ.Label() = %q", UZ.Label())
	}
	if Region("xx").Label() != "xx" {
		t.Errorf("unknown Label() = %q", Region("xx").Label())
	}
}
