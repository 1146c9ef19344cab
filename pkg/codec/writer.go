package codec

import (
	"encoding/binary"
	"math"
)

// Writer accumulates a byte buffer in-memory and supports nested message
// framing via StartMessage/EndMessage, which reserve and later patch a
// placeholder length field.
type Writer struct {
	buf    []byte
	starts []int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated buffer. Callers must not retain it across
// further writes to w, since the backing array may be reallocated.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Finish returns the accumulated buffer, failing if any StartMessage call
// was never matched by EndMessage.
func (w *Writer) Finish() ([]byte, error) {
	if len(w.starts) != 0 {
		return nil, wrapErr("finish", errUnfinished)
	}
	return w.buf, nil
}

// WriteByte writes a single raw byte.
func (w *Writer) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

// WriteBool writes a boolean as a single 0x00/0x01 byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

// WriteUint16LE writes a little-endian unsigned 16-bit integer.
func (w *Writer) WriteUint16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint16BE writes a big-endian unsigned 16-bit integer. Only the
// transport ack id uses this; everything else is little-endian.
func (w *Writer) WriteUint16BE(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt16LE writes a little-endian signed 16-bit integer.
func (w *Writer) WriteInt16LE(v int16) {
	w.WriteUint16LE(uint16(v))
}

// WriteUint32LE writes a little-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt32LE writes a little-endian signed 32-bit integer.
func (w *Writer) WriteInt32LE(v int32) {
	w.WriteUint32LE(uint32(v))
}

// WriteFloat32LE writes a little-endian IEEE-754 single-precision float.
func (w *Writer) WriteFloat32LE(v float32) {
	w.WriteUint32LE(math.Float32bits(v))
}

// WriteVarUint32 writes a 7-bit varint.
func (w *Writer) WriteVarUint32(v uint32) {
	w.buf = putVarUint32(w.buf, v)
}

// WriteVarInt32 writes a varint-encoded signed 32-bit integer, using the
// raw bit pattern (not zig-zag) matching the source's i32_encoded.
func (w *Writer) WriteVarInt32(v int32) {
	w.WriteVarUint32(uint32(v))
}

// WriteString writes a varint-length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	b := []byte(s)
	w.WriteVarUint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteBytes writes raw bytes with no length prefix.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// StartMessage reserves a placeholder u16 length and writes the tag byte,
// pushing the placeholder's position so EndMessage can patch it later.
// StartMessage/EndMessage calls may nest but must be LIFO-balanced.
func (w *Writer) StartMessage(tag byte) {
	w.starts = append(w.starts, len(w.buf))
	w.WriteUint16LE(0) // placeholder, patched by EndMessage
	w.WriteByte(tag)
}

// EndMessage computes the byte length written since the matching
// StartMessage and patches the placeholder in place.
func (w *Writer) EndMessage() error {
	if len(w.starts) == 0 {
		return wrapErr("end_message", errUnbalancedStart)
	}
	n := len(w.starts) - 1
	start := w.starts[n]
	w.starts = w.starts[:n]

	dataLen := len(w.buf) - start - 3
	binary.LittleEndian.PutUint16(w.buf[start:start+2], uint16(dataLen))
	return nil
}
