package netobject

import "github.com/duskport/hazelclient/pkg/codec"

const (
	rpcEnterVent uint8 = 0x13
	rpcExitVent  uint8 = 0x14
)

// PlayerPhysics carries no replicated fields of its own; every update
// and RPC it receives (EnterVent/ExitVent) is purely informational.
type PlayerPhysics struct {
	netID   uint32
	ownerID int32
}

// NewPlayerPhysics builds a PlayerPhysics from a CreateFromPrefab child.
// Its initializer reads nothing from the wire.
func NewPlayerPhysics(netID uint32, ownerID int32) *PlayerPhysics {
	return &PlayerPhysics{netID: netID, ownerID: ownerID}
}

func (p *PlayerPhysics) NetID() uint32  { return p.netID }
func (p *PlayerPhysics) OwnerID() int32 { return p.ownerID }
func (p *PlayerPhysics) Kind() Kind     { return KindPlayerPhysics }

// UpdateData is a no-op; PlayerPhysics has no replicated state.
func (p *PlayerPhysics) UpdateData(r *codec.Reader) error {
	return nil
}

// HandleRPC handles EnterVent/ExitVent, both carrying a single varint
// vent id, and round-trips anything else as unhandled.
func (p *PlayerPhysics) HandleRPC(callID uint8, r *codec.Reader) (Outcome, error) {
	switch callID {
	case rpcEnterVent, rpcExitVent:
		if _, err := r.ReadVarUint32(); err != nil {
			return nil, err
		}
		return NoOutcome{}, nil
	default:
		return UnhandledRPCOutcome{CallID: callID, Payload: r.RemainingBytes()}, nil
	}
}

// EnterVentRPC builds the payload for an EnterVent RPC.
func (p *PlayerPhysics) EnterVentRPC(ventID uint32) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteVarUint32(ventID)
	return rpcEnterVent, w.Bytes()
}

// ExitVentRPC builds the payload for an ExitVent RPC.
func (p *PlayerPhysics) ExitVentRPC(ventID uint32) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteVarUint32(ventID)
	return rpcExitVent, w.Bytes()
}
