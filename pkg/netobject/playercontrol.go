package netobject

import "github.com/duskport/hazelclient/pkg/codec"

// playerControlRPC enumerates every PlayerControl call id the original
// protocol defines, not just the ones this client acts on; unrecognized
// ids still need to parse cleanly so the rest of the frame keeps going.
type playerControlRPC uint8

const (
	rpcPlayAnimation   playerControlRPC = 0
	rpcCompleteTask    playerControlRPC = 1
	rpcSetGameOptions  playerControlRPC = 2
	rpcSetInfected     playerControlRPC = 3
	rpcExile           playerControlRPC = 4
	rpcCheckName       playerControlRPC = 5
	rpcSetName         playerControlRPC = 6
	rpcCheckColor      playerControlRPC = 7
	rpcSetColor        playerControlRPC = 8
	rpcSetHat          playerControlRPC = 9
	rpcSetSkin         playerControlRPC = 10
	rpcReportBody      playerControlRPC = 11
	rpcMurderPlayer    playerControlRPC = 12
	rpcSendChat        playerControlRPC = 13
	rpcMeetingCalled   playerControlRPC = 14
	rpcSetScanner      playerControlRPC = 15
	rpcAddChatNote     playerControlRPC = 16
	rpcSetPet          playerControlRPC = 17
	rpcSetStartCounter playerControlRPC = 18
)

// PlayerControl replicates one player's identity: player id, display
// name, and the RPCs that request a name/color/cosmetic change or send a
// chat message.
type PlayerControl struct {
	netID   uint32
	ownerID int32

	PlayerID uint8
	Name     string
}

// NewPlayerControl builds a PlayerControl from a CreateFromPrefab child's
// initializer bytes.
func NewPlayerControl(netID uint32, ownerID int32, r *codec.Reader) (*PlayerControl, error) {
	if _, err := r.ReadBool(); err != nil { // is_new, unused by this client
		return nil, err
	}
	playerID, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return &PlayerControl{netID: netID, ownerID: ownerID, PlayerID: playerID}, nil
}

func (p *PlayerControl) NetID() uint32  { return p.netID }
func (p *PlayerControl) OwnerID() int32 { return p.ownerID }
func (p *PlayerControl) Kind() Kind     { return KindPlayerControl }

// UpdateData applies a GameInfo::UpdateData payload: just the player id.
func (p *PlayerControl) UpdateData(r *codec.Reader) error {
	playerID, err := r.ReadByte()
	if err != nil {
		return err
	}
	p.PlayerID = playerID
	return nil
}

// HandleRPC applies one PlayerControl RPC call. Call ids this client has
// no local state for still parse their known argument shape when one is
// known (PlayAnimation, SetInfected); everything else, known or not,
// round-trips as UnhandledRPCOutcome.
func (p *PlayerControl) HandleRPC(callID uint8, r *codec.Reader) (Outcome, error) {
	switch playerControlRPC(callID) {
	case rpcPlayAnimation:
		if _, err := r.ReadByte(); err != nil {
			return nil, err
		}
		return NoOutcome{}, nil

	case rpcSetInfected:
		count, err := r.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < count; i++ {
			if _, err := r.ReadByte(); err != nil {
				return nil, err
			}
		}
		return NoOutcome{}, nil

	case rpcSendChat:
		message, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		return ChatMessageOutcome{Message: message}, nil

	case rpcSetName:
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		p.Name = name
		return NoOutcome{}, nil

	default:
		return UnhandledRPCOutcome{CallID: callID, Payload: r.RemainingBytes()}, nil
	}
}

// CheckNameRPC builds the payload for a CheckName RPC, sent to the host
// to request a display name.
func (p *PlayerControl) CheckNameRPC(name string) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteString(name)
	return uint8(rpcCheckName), w.Bytes()
}

// SetNameRPC builds the payload for a SetName RPC.
func (p *PlayerControl) SetNameRPC(name string) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteString(name)
	return uint8(rpcSetName), w.Bytes()
}

// ChatMessageRPC builds the payload for a SendChat RPC.
func (p *PlayerControl) ChatMessageRPC(message string) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteString(message)
	return uint8(rpcSendChat), w.Bytes()
}

// CheckColorRPC builds the payload for a CheckColor RPC.
func (p *PlayerControl) CheckColorRPC(colorIndex uint8) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteByte(colorIndex)
	return uint8(rpcCheckColor), w.Bytes()
}

// SetSkinRPC builds the payload for a SetSkin RPC.
func (p *PlayerControl) SetSkinRPC(skinIndex uint32) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteVarUint32(skinIndex)
	return uint8(rpcSetSkin), w.Bytes()
}

// SetHatRPC builds the payload for a SetHat RPC.
func (p *PlayerControl) SetHatRPC(hatIndex uint32) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteVarUint32(hatIndex)
	return uint8(rpcSetHat), w.Bytes()
}

// SetPetRPC builds the payload for a SetPet RPC.
func (p *PlayerControl) SetPetRPC(petIndex uint32) (uint8, []byte) {
	w := codec.NewWriter()
	w.WriteVarUint32(petIndex)
	return uint8(rpcSetPet), w.Bytes()
}
