package netobject

import "github.com/duskport/hazelclient/pkg/codec"

// VoteBanSystem's vote-tallying fields are never read by this client; it
// preserves the body as opaque bytes rather than parse a structure it
// never acts on (see DESIGN.md).
type VoteBanSystem struct {
	netID   uint32
	ownerID int32

	Raw []byte
}

// NewVoteBanSystem builds a VoteBanSystem from a CreateFromPrefab
// child's initializer bytes.
func NewVoteBanSystem(netID uint32, ownerID int32, r *codec.Reader) (*VoteBanSystem, error) {
	v := &VoteBanSystem{netID: netID, ownerID: ownerID}
	if err := v.UpdateData(r); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *VoteBanSystem) NetID() uint32  { return v.netID }
func (v *VoteBanSystem) OwnerID() int32 { return v.ownerID }
func (v *VoteBanSystem) Kind() Kind     { return KindVoteBanSystem }

// UpdateData stores the raw update bytes without interpreting them.
func (v *VoteBanSystem) UpdateData(r *codec.Reader) error {
	v.Raw = r.RemainingBytes()
	return nil
}

// HandleRPC round-trips every call id as unhandled; VoteBanSystem has no
// client-acted RPC.
func (v *VoteBanSystem) HandleRPC(callID uint8, r *codec.Reader) (Outcome, error) {
	return UnhandledRPCOutcome{CallID: callID, Payload: r.RemainingBytes()}, nil
}
