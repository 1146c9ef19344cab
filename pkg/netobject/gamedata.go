package netobject

import (
	"github.com/duskport/hazelclient/pkg/codec"
	"github.com/duskport/hazelclient/pkg/wire"
)

const (
	rpcSetTasks         uint8 = 0x1d
	rpcUpdatePlayerInfo uint8 = 0x1e
)

// GameData replicates the roster: one wire.PlayerData per player id.
type GameData struct {
	netID   uint32
	ownerID int32

	Players map[uint8]wire.PlayerData
}

// NewGameData builds a GameData from a CreateFromPrefab child's
// initializer bytes: a count followed by that many (player id, PlayerData)
// pairs.
func NewGameData(netID uint32, ownerID int32, r *codec.Reader) (*GameData, error) {
	count, err := r.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	players := make(map[uint8]wire.PlayerData, count)
	for i := uint32(0); i < count; i++ {
		id, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		pd, err := wire.ReadPlayerData(r)
		if err != nil {
			return nil, err
		}
		players[id] = pd
	}
	return &GameData{netID: netID, ownerID: ownerID, Players: players}, nil
}

func (g *GameData) NetID() uint32  { return g.netID }
func (g *GameData) OwnerID() int32 { return g.ownerID }
func (g *GameData) Kind() Kind     { return KindGameData }

// UpdateData applies a GameInfo::UpdateData payload: a byte count
// followed by that many (player id, PlayerData) pairs, inserting or
// replacing.
func (g *GameData) UpdateData(r *codec.Reader) error {
	count, err := r.ReadByte()
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		playerID, err := r.ReadByte()
		if err != nil {
			return err
		}
		pd, err := wire.ReadPlayerData(r)
		if err != nil {
			return err
		}
		g.Players[playerID] = pd
	}
	return nil
}

// HandleRPC handles UpdatePlayerInfo (0x1e): nested tag=player_id
// messages, each a full PlayerData, consumed until the payload is
// exhausted. SetTasks and anything else round-trip as unhandled.
func (g *GameData) HandleRPC(callID uint8, r *codec.Reader) (Outcome, error) {
	switch callID {
	case rpcUpdatePlayerInfo:
		for r.Remaining() > 0 {
			tag, sub, err := r.ReadMessage()
			if err != nil {
				return nil, err
			}
			pd, err := wire.ReadPlayerData(sub)
			if err != nil {
				return nil, err
			}
			g.Players[tag] = pd
		}
		return NoOutcome{}, nil

	default:
		return UnhandledRPCOutcome{CallID: callID, Payload: r.RemainingBytes()}, nil
	}
}

// UpdatePlayerInfoRPC builds the payload for an UpdatePlayerInfo RPC,
// writing every player currently marked dirty as a nested
// tag=player_id message.
func (g *GameData) UpdatePlayerInfoRPC() (uint8, []byte) {
	w := codec.NewWriter()
	for id, pd := range g.Players {
		if !pd.Dirty {
			continue
		}
		w.StartMessage(id)
		wire.WritePlayerData(w, pd)
		w.EndMessage()
	}
	return rpcUpdatePlayerInfo, w.Bytes()
}
