package transport

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
)

// FrameType is the outermost discriminator of every UDP datagram this
// protocol exchanges, one level below the packet tags in pkg/wire.
type FrameType byte

const (
	FrameUnreliable  FrameType = 0
	FrameReliable    FrameType = 1
	FrameHello       FrameType = 8
	FrameDisconnect  FrameType = 9
	FrameAcknowledge FrameType = 10
	FrameKeepAlive   FrameType = 12
)

func (t FrameType) String() string {
	switch t {
	case FrameUnreliable:
		return "unreliable"
	case FrameReliable:
		return "reliable"
	case FrameHello:
		return "hello"
	case FrameDisconnect:
		return "disconnect"
	case FrameAcknowledge:
		return "acknowledge"
	case FrameKeepAlive:
		return "keepalive"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Frame is one decoded UDP datagram. AckID is meaningful for Reliable,
// Hello, Acknowledge, and KeepAlive; Data carries the nested wire.Packet
// payload for Unreliable, Reliable, and Hello.
type Frame struct {
	Type  FrameType
	AckID uint16
	Data  []byte
}

// EncodeFrame writes a Frame as a full UDP datagram payload. The ack id,
// where present, is big-endian — the one place on the wire that departs
// from the little-endian convention pkg/codec uses everywhere else.
func EncodeFrame(f Frame) []byte {
	w := codec.NewWriter()
	w.WriteByte(byte(f.Type))
	switch f.Type {
	case FrameUnreliable:
		w.WriteBytes(f.Data)
	case FrameReliable, FrameHello:
		w.WriteUint16BE(f.AckID)
		w.WriteBytes(f.Data)
	case FrameDisconnect:
		// no body
	case FrameAcknowledge:
		w.WriteUint16BE(f.AckID)
		w.WriteByte(0) // reserved, unused by either side
	case FrameKeepAlive:
		w.WriteUint16BE(f.AckID)
	}
	buf, _ := w.Finish()
	return buf
}

// DecodeFrame parses one received UDP datagram into a Frame.
func DecodeFrame(buf []byte) (Frame, error) {
	r := codec.NewReader(buf)
	tagByte, err := r.ReadByte()
	if err != nil {
		return Frame{}, fmt.Errorf("transport: decode frame: %w", err)
	}

	t := FrameType(tagByte)
	switch t {
	case FrameUnreliable:
		return Frame{Type: t, Data: r.RemainingBytes()}, nil
	case FrameReliable, FrameHello:
		ackID, err := r.ReadUint16BE()
		if err != nil {
			return Frame{}, fmt.Errorf("transport: decode frame: %w", err)
		}
		return Frame{Type: t, AckID: ackID, Data: r.RemainingBytes()}, nil
	case FrameDisconnect:
		return Frame{Type: t}, nil
	case FrameAcknowledge, FrameKeepAlive:
		ackID, err := r.ReadUint16BE()
		if err != nil {
			return Frame{}, fmt.Errorf("transport: decode frame: %w", err)
		}
		return Frame{Type: t, AckID: ackID}, nil
	default:
		return Frame{}, fmt.Errorf("transport: unknown frame type %d", tagByte)
	}
}
