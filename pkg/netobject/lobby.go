package netobject

import "github.com/duskport/hazelclient/pkg/codec"

// Lobby has no subsystem fields known to this client; it round-trips
// its body as an opaque byte slice, the same policy as VoteBanSystem.
type Lobby struct {
	netID   uint32
	ownerID int32

	Raw []byte
}

// NewLobby builds a Lobby from a CreateFromPrefab child. Its initializer
// carries no fields.
func NewLobby(netID uint32, ownerID int32) *Lobby {
	return &Lobby{netID: netID, ownerID: ownerID}
}

func (l *Lobby) NetID() uint32  { return l.netID }
func (l *Lobby) OwnerID() int32 { return l.ownerID }
func (l *Lobby) Kind() Kind     { return KindLobby }

// UpdateData stores the raw update bytes without interpreting them.
func (l *Lobby) UpdateData(r *codec.Reader) error {
	l.Raw = r.RemainingBytes()
	return nil
}

// HandleRPC round-trips every call id as unhandled.
func (l *Lobby) HandleRPC(callID uint8, r *codec.Reader) (Outcome, error) {
	return UnhandledRPCOutcome{CallID: callID, Payload: r.RemainingBytes()}, nil
}
