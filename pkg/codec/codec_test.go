package codec

import (
	"bytes"
	"math"
	"testing"
)

func TestVarUint32(t *testing.T) {
	tests := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{math.MaxUint32, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WriteVarUint32(tt.value)
		if !bytes.Equal(w.Bytes(), tt.expected) {
			t.Errorf("WriteVarUint32(%d) = %v, want %v", tt.value, w.Bytes(), tt.expected)
		}
		if got := varUint32Size(tt.value); got != len(tt.expected) {
			t.Errorf("varUint32Size(%d) = %d, want %d", tt.value, got, len(tt.expected))
		}

		r := NewReader(tt.expected)
		got, err := r.ReadVarUint32()
		if err != nil {
			t.Fatalf("ReadVarUint32(%d) error: %v", tt.value, err)
		}
		if got != tt.value {
			t.Errorf("ReadVarUint32 = %d, want %d", got, tt.value)
		}
		if r.Remaining() != 0 {
			t.Errorf("ReadVarUint32 left %d bytes unread", r.Remaining())
		}
	}
}

func TestVarUint32Overflow(t *testing.T) {
	// Six continuation bytes: exceeds the 5-byte cap.
	r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	if _, err := r.ReadVarUint32(); err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}

func TestVarintRoundTripAllValues(t *testing.T) {
	// Spot-check across the u32 range rather than exhaustively (2^32 cases
	// is wasteful for a deterministic, involution-style encoding).
	samples := []uint32{0, 1, 126, 127, 128, 16383, 16384, 2097151, 2097152,
		268435455, 268435456, math.MaxUint32 / 2, math.MaxUint32 - 1, math.MaxUint32}
	for _, v := range samples {
		w := NewWriter()
		w.WriteVarUint32(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadVarUint32()
		if err != nil {
			t.Fatalf("roundtrip(%d) error: %v", v, err)
		}
		if got != v {
			t.Errorf("roundtrip(%d) = %d", v, got)
		}
	}
}

func TestString(t *testing.T) {
	tests := []string{"", "hi", "oregano", "日本語テスト"}
	for _, s := range tests {
		w := NewWriter()
		w.WriteString(s)
		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q) error: %v", s, err)
		}
		if got != s {
			t.Errorf("ReadString = %q, want %q", got, s)
		}
	}
}

func TestInvalidUTF8(t *testing.T) {
	w := NewWriter()
	w.WriteVarUint32(2)
	w.WriteBytes([]byte{0xFF, 0xFE})
	r := NewReader(w.Bytes())
	if _, err := r.ReadString(); err == nil {
		t.Fatal("expected invalid utf-8 error, got nil")
	}
}

func TestPrimitivesRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteByte(0x42)
	w.WriteUint16LE(0xBEEF)
	w.WriteUint16BE(0xBEEF)
	w.WriteInt32LE(-12345)
	w.WriteFloat32LE(3.5)

	r := NewReader(w.Bytes())
	if b, _ := r.ReadBool(); b != true {
		t.Errorf("ReadBool #1 = %v", b)
	}
	if b, _ := r.ReadBool(); b != false {
		t.Errorf("ReadBool #2 = %v", b)
	}
	if b, _ := r.ReadByte(); b != 0x42 {
		t.Errorf("ReadByte = %#x", b)
	}
	if v, _ := r.ReadUint16LE(); v != 0xBEEF {
		t.Errorf("ReadUint16LE = %#x", v)
	}
	if v, _ := r.ReadUint16BE(); v != 0xBEEF {
		t.Errorf("ReadUint16BE = %#x", v)
	}
	if v, _ := r.ReadInt32LE(); v != -12345 {
		t.Errorf("ReadInt32LE = %d", v)
	}
	if v, _ := r.ReadFloat32LE(); v != 3.5 {
		t.Errorf("ReadFloat32LE = %v", v)
	}
}

func TestEndiannessOfAckIDDiffersFromRestOfWire(t *testing.T) {
	// The transport's ack id is the single big-endian field on an
	// otherwise little-endian wire; confirm the two helpers disagree for
	// a value where endianness matters.
	w1 := NewWriter()
	w1.WriteUint16LE(0x0102)
	w2 := NewWriter()
	w2.WriteUint16BE(0x0102)
	if bytes.Equal(w1.Bytes(), w2.Bytes()) {
		t.Fatal("expected LE and BE encodings to differ for 0x0102")
	}
}

func TestNestedMessageFraming(t *testing.T) {
	w := NewWriter()
	w.StartMessage(5)
	w.WriteString("outer")
	w.StartMessage(9)
	w.WriteByte(1)
	if err := w.EndMessage(); err != nil {
		t.Fatalf("inner EndMessage: %v", err)
	}
	w.WriteByte(2)
	if err := w.EndMessage(); err != nil {
		t.Fatalf("outer EndMessage: %v", err)
	}
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	r := NewReader(buf)
	tag, outer, err := r.ReadMessage()
	if err != nil {
		t.Fatalf("outer ReadMessage: %v", err)
	}
	if tag != 5 {
		t.Errorf("outer tag = %d, want 5", tag)
	}
	s, err := outer.ReadString()
	if err != nil || s != "outer" {
		t.Fatalf("outer string = %q, err %v", s, err)
	}
	innerTag, inner, err := outer.ReadMessage()
	if err != nil {
		t.Fatalf("inner ReadMessage: %v", err)
	}
	if innerTag != 9 {
		t.Errorf("inner tag = %d, want 9", innerTag)
	}
	if b, _ := inner.ReadByte(); b != 1 {
		t.Errorf("inner byte = %d, want 1", b)
	}
	if b, _ := outer.ReadByte(); b != 2 {
		t.Errorf("trailing outer byte = %d, want 2", b)
	}
	if r.Remaining() != 0 {
		t.Errorf("top-level reader left %d bytes unread", r.Remaining())
	}
}

func TestEndMessageWithoutStartIsError(t *testing.T) {
	w := NewWriter()
	if err := w.EndMessage(); err == nil {
		t.Fatal("expected error ending a message that was never started")
	}
}

func TestFinishWithUnclosedMessageIsError(t *testing.T) {
	w := NewWriter()
	w.StartMessage(1)
	if _, err := w.Finish(); err == nil {
		t.Fatal("expected error finishing with an unclosed message frame")
	}
}

func TestReadAllAndReadVec(t *testing.T) {
	decodeByte := func(r *Reader) (byte, error) { return r.ReadByte() }

	w := NewWriter()
	w.WriteByte(1)
	w.WriteByte(2)
	w.WriteByte(3)
	got, err := ReadAll(NewReader(w.Bytes()), decodeByte)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("ReadAll = %v", got)
	}

	w2 := NewWriter()
	w2.WriteVarUint32(3)
	w2.WriteByte(4)
	w2.WriteByte(5)
	w2.WriteByte(6)
	got2, err := ReadVec(NewReader(w2.Bytes()), decodeByte)
	if err != nil {
		t.Fatalf("ReadVec error: %v", err)
	}
	if !bytes.Equal(got2, []byte{4, 5, 6}) {
		t.Errorf("ReadVec = %v", got2)
	}
}

func TestVector2RoundTrip(t *testing.T) {
	tests := []Vector2{
		{X: 0, Y: 0},
		{X: 40, Y: -40},
		{X: -40, Y: 40},
		{X: 12.5, Y: -7.25},
	}
	const tolerance = 80.0 / 65535.0
	for _, v := range tests {
		w := NewWriter()
		w.WriteVector2(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadVector2()
		if err != nil {
			t.Fatalf("ReadVector2 error: %v", err)
		}
		if math.Abs(float64(got.X-v.X)) > tolerance || math.Abs(float64(got.Y-v.Y)) > tolerance {
			t.Errorf("Vector2 roundtrip(%v) = %v, outside tolerance %v", v, got, tolerance)
		}
	}
}

func TestVector2ClampsOutOfRange(t *testing.T) {
	w := NewWriter()
	w.WriteVector2(Vector2{X: -1000, Y: 1000})
	r := NewReader(w.Bytes())
	got, err := r.ReadVector2()
	if err != nil {
		t.Fatalf("ReadVector2 error: %v", err)
	}
	if got.X != -40 {
		t.Errorf("clamped X = %v, want -40", got.X)
	}
	if got.Y != 40 {
		t.Errorf("clamped Y = %v, want 40", got.Y)
	}
}

func TestReadMessageShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x05, 0x00, 0x01})
	if _, _, err := r.ReadMessage(); err == nil {
		t.Fatal("expected short-read error for a message whose declared length exceeds the buffer")
	}
}
