package netobject

import "github.com/duskport/hazelclient/pkg/codec"

const rpcSnapTo uint8 = 0x15

// PlayerTransform replicates one player's movement: the last applied
// input sequence id, target position, and velocity.
type PlayerTransform struct {
	netID   uint32
	ownerID int32

	LastSeqID      uint16
	TargetPosition codec.Vector2
	Velocity       codec.Vector2
}

// NewPlayerTransform builds a PlayerTransform from a CreateFromPrefab
// child's initializer bytes.
func NewPlayerTransform(netID uint32, ownerID int32, r *codec.Reader) (*PlayerTransform, error) {
	t := &PlayerTransform{netID: netID, ownerID: ownerID}
	var err error
	if t.LastSeqID, err = r.ReadUint16LE(); err != nil {
		return nil, err
	}
	if t.TargetPosition, err = r.ReadVector2(); err != nil {
		return nil, err
	}
	if t.Velocity, err = r.ReadVector2(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *PlayerTransform) NetID() uint32  { return t.netID }
func (t *PlayerTransform) OwnerID() int32 { return t.ownerID }
func (t *PlayerTransform) Kind() Kind     { return KindPlayerTransform }

// UpdateData applies a GameInfo::UpdateData payload: seq id, target
// position, and velocity, in that order.
func (t *PlayerTransform) UpdateData(r *codec.Reader) error {
	var err error
	if t.LastSeqID, err = r.ReadUint16LE(); err != nil {
		return err
	}
	if t.TargetPosition, err = r.ReadVector2(); err != nil {
		return err
	}
	if t.Velocity, err = r.ReadVector2(); err != nil {
		return err
	}
	return nil
}

// HandleRPC handles SnapTo (0x15): a forced position with a fresh seq id
// and zeroed velocity.
func (t *PlayerTransform) HandleRPC(callID uint8, r *codec.Reader) (Outcome, error) {
	switch callID {
	case rpcSnapTo:
		pos, err := r.ReadVector2()
		if err != nil {
			return nil, err
		}
		seqID, err := r.ReadUint16LE()
		if err != nil {
			return nil, err
		}
		t.TargetPosition = pos
		t.LastSeqID = seqID
		t.Velocity = codec.Vector2{}
		return NoOutcome{}, nil
	default:
		return UnhandledRPCOutcome{CallID: callID, Payload: r.RemainingBytes()}, nil
	}
}

// SnapToRPC builds the payload for a SnapTo RPC: the new position
// followed by the next sequence id (five ahead of the last one seen, so
// an in-flight movement RPC isn't mistaken for a stale input).
func (t *PlayerTransform) SnapToRPC(newPos codec.Vector2) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteVector2(newPos)
	w.WriteUint16LE(t.LastSeqID + 5)
	return rpcSnapTo, w.Bytes()
}
