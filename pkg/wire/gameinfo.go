package wire

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
)

// GameInfo is one replication event nested inside a GameInfo/GameInfoTo
// outer packet. Concrete types: GameInfoUpdateDataMsg, GameInfoRPCMsg,
// GameInfoDestroyMsg, GameInfoChangeSceneMsg, GameInfoClientReadyMsg,
// GameInfoCreateFromPrefabMsg, GameInfoUnknownMsg.
type GameInfo interface {
	gameInfo()
}

// GameInfoUpdateDataMsg carries a net object's replicated state. Data is
// the raw payload to the end of the inner message; the owning net-object
// variant parses it.
type GameInfoUpdateDataMsg struct {
	NetID uint32
	Data  []byte
}

func (GameInfoUpdateDataMsg) gameInfo() {}

// GameInfoRPCMsg invokes a remote procedure on a net object.
type GameInfoRPCMsg struct {
	NetID  uint32
	CallID uint8
	Data   []byte
}

func (GameInfoRPCMsg) gameInfo() {}

// GameInfoDestroyMsg removes a net object.
type GameInfoDestroyMsg struct {
	NetID uint32
}

func (GameInfoDestroyMsg) gameInfo() {}

// GameInfoChangeSceneMsg signals a client has moved to a named scene.
type GameInfoChangeSceneMsg struct {
	ClientID int32
	Scene    string
}

func (GameInfoChangeSceneMsg) gameInfo() {}

// GameInfoClientReadyMsg signals a client finished loading into the game.
type GameInfoClientReadyMsg struct {
	ClientID int32
}

func (GameInfoClientReadyMsg) gameInfo() {}

// PrefabChild is one net object spawned as part of a prefab: its assigned
// net id and the raw bytes of its nested tag=1 initializer message. The
// netobject package, which knows how each prefab type's children are
// shaped, decodes Raw further.
type PrefabChild struct {
	NetID uint32
	Raw   []byte
}

// GameInfoCreateFromPrefabMsg spawns one or more net objects as a bundle.
type GameInfoCreateFromPrefabMsg struct {
	SpawnFlags uint8
	PrefabID   PrefabType
	OwnerID    int32
	Children   []PrefabChild
}

func (GameInfoCreateFromPrefabMsg) gameInfo() {}

// GameInfoUnknownMsg is an unrecognized inner message tag, kept opaque so
// parsing of the rest of the outer frame can continue.
type GameInfoUnknownMsg struct {
	Tag byte
}

func (GameInfoUnknownMsg) gameInfo() {}

// DecodeGameInfo reads one nested GameInfo message.
func DecodeGameInfo(r *codec.Reader) (GameInfo, error) {
	tag, sub, err := r.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("wire: decode game info: %w", err)
	}

	switch GameInfoType(tag) {
	case GameInfoUpdateData:
		netID, err := sub.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		return GameInfoUpdateDataMsg{NetID: netID, Data: sub.RemainingBytes()}, nil

	case GameInfoRPC:
		netID, err := sub.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		callID, err := sub.ReadByte()
		if err != nil {
			return nil, err
		}
		return GameInfoRPCMsg{NetID: netID, CallID: callID, Data: sub.RemainingBytes()}, nil

	case GameInfoDestroy:
		netID, err := sub.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		return GameInfoDestroyMsg{NetID: netID}, nil

	case GameInfoChangeScene:
		clientID, err := sub.ReadVarInt32()
		if err != nil {
			return nil, err
		}
		scene, err := sub.ReadString()
		if err != nil {
			return nil, err
		}
		return GameInfoChangeSceneMsg{ClientID: clientID, Scene: scene}, nil

	case GameInfoClientReady:
		clientID, err := sub.ReadVarInt32()
		if err != nil {
			return nil, err
		}
		return GameInfoClientReadyMsg{ClientID: clientID}, nil

	case GameInfoCreateFromPrefab:
		prefabID, err := sub.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		ownerID, err := sub.ReadVarInt32()
		if err != nil {
			return nil, err
		}
		spawnFlags, err := sub.ReadByte()
		if err != nil {
			return nil, err
		}
		numChildren, err := sub.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		children := make([]PrefabChild, 0, numChildren)
		for i := uint32(0); i < numChildren; i++ {
			netID, err := sub.ReadVarUint32()
			if err != nil {
				return nil, err
			}
			childTag, childSub, err := sub.ReadMessage()
			if err != nil {
				return nil, err
			}
			if childTag != 1 {
				return nil, fmt.Errorf("wire: prefab child tag = %d, want 1", childTag)
			}
			children = append(children, PrefabChild{NetID: netID, Raw: childSub.RemainingBytes()})
		}
		return GameInfoCreateFromPrefabMsg{
			SpawnFlags: spawnFlags,
			PrefabID:   PrefabType(prefabID),
			OwnerID:    ownerID,
			Children:   children,
		}, nil

	default:
		return GameInfoUnknownMsg{Tag: tag}, nil
	}
}

// EncodeRPC writes a GameInfo::RPC message: the varint net id, the call
// id byte, then the raw payload.
func EncodeRPC(w *codec.Writer, netID uint32, callID uint8, payload []byte) {
	w.StartMessage(byte(GameInfoRPC))
	w.WriteVarUint32(netID)
	w.WriteByte(callID)
	w.WriteBytes(payload)
	w.EndMessage()
}

// EncodeDestroy writes a GameInfo::Destroy message.
func EncodeDestroy(w *codec.Writer, netID uint32) {
	w.StartMessage(byte(GameInfoDestroy))
	w.WriteVarUint32(netID)
	w.EndMessage()
}

// EncodeChangeScene writes a GameInfo::ChangeScene message.
func EncodeChangeScene(w *codec.Writer, clientID int32, scene string) {
	w.StartMessage(byte(GameInfoChangeScene))
	w.WriteVarInt32(clientID)
	w.WriteString(scene)
	w.EndMessage()
}

// EncodeClientReady writes a GameInfo::ClientReady message.
func EncodeClientReady(w *codec.Writer, clientID int32) {
	w.StartMessage(byte(GameInfoClientReady))
	w.WriteVarInt32(clientID)
	w.EndMessage()
}
