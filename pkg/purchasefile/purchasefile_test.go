package purchasefile

import (
	"bytes"
	"testing"
)

func TestObfuscateIsSelfInverse(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte{},
		[]byte("hats:1,2,3\nskins:\npets:9\n"),
		bytes.Repeat([]byte{0xAB}, 500), // longer than the 212-byte period
	}
	for _, raw := range cases {
		got := Obfuscate(Obfuscate(raw))
		if !bytes.Equal(got, raw) && !(len(got) == 0 && len(raw) == 0) {
			t.Errorf("Obfuscate(Obfuscate(%v)) = %v, want original", raw, got)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := Purchases{
		Hats:  []uint32{1, 4, 9},
		Skins: []uint32{0},
		Pets:  nil,
	}

	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !equalIDs(got.Hats, want.Hats) || !equalIDs(got.Skins, want.Skins) || len(got.Pets) != 0 {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestOwnsLookups(t *testing.T) {
	p := Purchases{Hats: []uint32{1, 2, 3}}
	if !p.OwnsHat(2) {
		t.Error("OwnsHat(2) = false, want true")
	}
	if p.OwnsHat(99) {
		t.Error("OwnsHat(99) = true, want false")
	}
}

func TestDecodeMalformedLine(t *testing.T) {
	if _, err := Decode(bytes.NewReader(Obfuscate([]byte("not a valid line")))); err == nil {
		t.Error("expected error for malformed line")
	}
}

func equalIDs(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
