package codec

// vector2Divisor maps the normalized [0,1] domain to the u16 wire value and
// back. The source writes with 65555 (almost certainly a typo for 65535,
// since the read path always divides by 65535) and the spec directs using
// 65535 on both sides for round-trip correctness; see DESIGN.md.
const vector2Divisor = 65535.0

// Vector2 is a 2D position or velocity, quantized over the wire as two u16
// fixed-point values spanning [-40, +40] on each axis.
type Vector2 struct {
	X float32
	Y float32
}

func quantizeAxis(v float32) uint16 {
	normalized := v/80 + 0.5
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return uint16(normalized * vector2Divisor)
}

func dequantizeAxis(raw uint16) float32 {
	normalized := float32(raw) / vector2Divisor
	return normalized*80 - 40
}

// WriteVector2 writes v as two quantized u16 axes.
func (w *Writer) WriteVector2(v Vector2) {
	w.WriteUint16LE(quantizeAxis(v.X))
	w.WriteUint16LE(quantizeAxis(v.Y))
}

// ReadVector2 reads a quantized Vector2.
func (r *Reader) ReadVector2() (Vector2, error) {
	x, err := r.ReadUint16LE()
	if err != nil {
		return Vector2{}, wrapErr("read_vector2", err)
	}
	y, err := r.ReadUint16LE()
	if err != nil {
		return Vector2{}, wrapErr("read_vector2", err)
	}
	return Vector2{X: dequantizeAxis(x), Y: dequantizeAxis(y)}, nil
}
