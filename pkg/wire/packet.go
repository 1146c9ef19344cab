package wire

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
)

// Packet is one top-level, tagged message inside a Reliable or Unreliable
// transport payload. Concrete types below; DecodePacket chooses one based
// on the outer message tag.
type Packet interface {
	packet()
}

type HostingGamePacket struct{ GameID GameId }

func (HostingGamePacket) packet() {}

type DisconnectedPacket struct{ Reason DisconnectReason }

func (DisconnectedPacket) packet() {}

type PlayerJoinedPacket struct {
	GameID   GameId
	PlayerID int32
	HostID   int32
}

func (PlayerJoinedPacket) packet() {}

type PlayerLeftPacket struct {
	GameID   GameId
	PlayerID int32
	HostID   int32
	Reason   *uint8
}

func (PlayerLeftPacket) packet() {}

type ClientJoinedGamePacket struct {
	GameID    GameId
	ClientID  int32
	HostID    int32
	PlayerIDs []int32
}

func (ClientJoinedGamePacket) packet() {}

type GameListPacket struct{ Games []GameListing }

func (GameListPacket) packet() {}

type ServerListPacket struct{ Servers []ServerInfo }

func (ServerListPacket) packet() {}

type GameAlteredPacket struct {
	GameID   GameId
	IsPublic bool
}

func (GameAlteredPacket) packet() {}

type GameStartedPacket struct{}

func (GameStartedPacket) packet() {}

type ChangeServerPacket struct{ Address Address }

func (ChangeServerPacket) packet() {}

type GameInfoPacket struct {
	GameID GameId
	Data   []GameInfo
}

func (GameInfoPacket) packet() {}

type GameInfoToPacket struct {
	GameID   GameId
	ClientID int32
	Data     []GameInfo
}

func (GameInfoToPacket) packet() {}

type KickPlayerPacket struct {
	GameID   GameId
	PlayerID int32
	Ban      bool
}

func (KickPlayerPacket) packet() {}

// NotImplementedPacket is a recognized but unhandled outer packet type.
type NotImplementedPacket struct{ Type PacketType }

func (NotImplementedPacket) packet() {}

// UnknownPacket is an outer packet whose tag has no known PacketType.
type UnknownPacket struct{ Tag byte }

func (UnknownPacket) packet() {}

// DecodePacket reads one top-level message and decodes it into a Packet.
func DecodePacket(r *codec.Reader) (Packet, error) {
	tag, sub, err := r.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("wire: decode packet: %w", err)
	}

	switch PacketType(tag) {
	case PacketHostingGame:
		gameID, err := ReadGameId(sub)
		if err != nil {
			return nil, err
		}
		return HostingGamePacket{GameID: gameID}, nil

	case PacketGameStarted:
		return GameStartedPacket{}, nil

	case PacketGameJoinDisconnect:
		return decodeJoinDisconnect(sub)

	case PacketPlayerLeft:
		gameID, err := ReadGameId(sub)
		if err != nil {
			return nil, err
		}
		playerID, err := sub.ReadInt32LE()
		if err != nil {
			return nil, err
		}
		hostID, err := sub.ReadInt32LE()
		if err != nil {
			return nil, err
		}
		var reason *uint8
		if sub.Remaining() > 0 {
			v, err := sub.ReadByte()
			if err != nil {
				return nil, err
			}
			reason = &v
		}
		return PlayerLeftPacket{GameID: gameID, PlayerID: playerID, HostID: hostID, Reason: reason}, nil

	case PacketJoinedGame:
		gameID, err := ReadGameId(sub)
		if err != nil {
			return nil, err
		}
		clientID, err := sub.ReadInt32LE()
		if err != nil {
			return nil, err
		}
		hostID, err := sub.ReadInt32LE()
		if err != nil {
			return nil, err
		}
		count, err := sub.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		ids := make([]int32, 0, count)
		for i := uint32(0); i < count; i++ {
			id, err := sub.ReadVarInt32()
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ClientJoinedGamePacket{GameID: gameID, ClientID: clientID, HostID: hostID, PlayerIDs: ids}, nil

	case PacketAlterGameInfo:
		gameID, err := ReadGameId(sub)
		if err != nil {
			return nil, err
		}
		toAlter, err := sub.ReadByte()
		if err != nil {
			return nil, err
		}
		if toAlter != 1 {
			return nil, fmt.Errorf("wire: alter game info selector = %d, want 1", toAlter)
		}
		isPublic, err := sub.ReadBool()
		if err != nil {
			return nil, err
		}
		return GameAlteredPacket{GameID: gameID, IsPublic: isPublic}, nil

	case PacketChangeServer:
		addr, err := ReadAddress(sub)
		if err != nil {
			return nil, err
		}
		return ChangeServerPacket{Address: addr}, nil

	case PacketServerList:
		return decodeServerList(sub)

	case PacketGameList:
		return decodeGameList(sub)

	case PacketGameInfoTo:
		gameID, err := ReadGameId(sub)
		if err != nil {
			return nil, err
		}
		clientID, err := sub.ReadVarInt32()
		if err != nil {
			return nil, err
		}
		data, err := codec.ReadAll(sub, DecodeGameInfo)
		if err != nil {
			return nil, err
		}
		return GameInfoToPacket{GameID: gameID, ClientID: clientID, Data: data}, nil

	case PacketGameInfo:
		gameID, err := ReadGameId(sub)
		if err != nil {
			return nil, err
		}
		data, err := codec.ReadAll(sub, DecodeGameInfo)
		if err != nil {
			return nil, err
		}
		return GameInfoPacket{GameID: gameID, Data: data}, nil

	case PacketKickPlayer:
		return NotImplementedPacket{Type: PacketType(tag)}, nil

	default:
		return UnknownPacket{Tag: tag}, nil
	}
}

// decodeJoinDisconnect implements the dual-use decode of GameJoinDisconnect
// (0x01): the packet type depends on the magnitude of the first i32 — a
// disconnect reason code if it falls in [0, 0xFF), otherwise a
// PlayerJoined event.
func decodeJoinDisconnect(sub *codec.Reader) (Packet, error) {
	value, err := sub.ReadInt32LE()
	if err != nil {
		return nil, err
	}
	if value >= 0 && value < 0xff {
		reason, err := DecodeDisconnectReason(value, sub)
		if err != nil {
			return nil, err
		}
		return DisconnectedPacket{Reason: reason}, nil
	}

	gameID := GameId{ID: value}
	playerID, err := sub.ReadInt32LE()
	if err != nil {
		return nil, err
	}
	hostID, err := sub.ReadInt32LE()
	if err != nil {
		return nil, err
	}
	return PlayerJoinedPacket{GameID: gameID, PlayerID: playerID, HostID: hostID}, nil
}

func decodeServerList(sub *codec.Reader) (Packet, error) {
	selector, err := sub.ReadByte()
	if err != nil {
		return nil, err
	}
	if selector != 1 {
		return nil, fmt.Errorf("wire: server list selector = %d, want 1", selector)
	}
	count, err := sub.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	servers := make([]ServerInfo, 0, count)
	for i := uint32(0); i < count; i++ {
		tag, inner, err := sub.ReadMessage()
		if err != nil {
			return nil, err
		}
		if tag != 0 {
			return nil, fmt.Errorf("wire: server list entry tag = %d, want 0", tag)
		}
		info, err := ReadServerInfo(inner)
		if err != nil {
			return nil, err
		}
		servers = append(servers, info)
	}
	return ServerListPacket{Servers: servers}, nil
}

func decodeGameList(sub *codec.Reader) (Packet, error) {
	tag, inner, err := sub.ReadMessage()
	if err != nil {
		return nil, err
	}
	if tag != 0 {
		return nil, fmt.Errorf("wire: game list outer tag = %d, want 0", tag)
	}
	var games []GameListing
	for inner.Remaining() > 0 {
		listTag, listData, err := inner.ReadMessage()
		if err != nil {
			return nil, err
		}
		if listTag != 0 {
			return nil, fmt.Errorf("wire: game list entry tag = %d, want 0", listTag)
		}
		listing, err := ReadGameListing(listData)
		if err != nil {
			return nil, err
		}
		games = append(games, listing)
	}
	return GameListPacket{Games: games}, nil
}

// EncodeJoinGame writes the GameJoinDisconnect/JoinGame outer packet used
// to join an existing game.
func EncodeJoinGame(w *codec.Writer, payload JoinGamePayload) {
	w.StartMessage(byte(PacketGameJoinDisconnect))
	WriteJoinGamePayload(w, payload)
	w.EndMessage()
}

// EncodeGameInfo writes a GameInfo outer packet wrapping the given
// already-built GameInfo message bytes (produced by the wire.Encode*
// helpers into a scratch Writer and copied in via Bytes()).
func EncodeGameInfo(w *codec.Writer, gameID GameId, messages []byte) {
	w.StartMessage(byte(PacketGameInfo))
	WriteGameId(w, gameID)
	w.WriteBytes(messages)
	w.EndMessage()
}

// EncodeGameInfoTo writes a GameInfoTo outer packet addressed to a single
// client id (used for host-addressed identity RPCs).
func EncodeGameInfoTo(w *codec.Writer, gameID GameId, clientID int32, messages []byte) {
	w.StartMessage(byte(PacketGameInfoTo))
	WriteGameId(w, gameID)
	w.WriteVarInt32(clientID)
	w.WriteBytes(messages)
	w.EndMessage()
}

// EncodeRequestGameList writes a RequestGameList outer packet: a u8
// selector, the varint byte-length of the encoded GameOptions, then the
// options themselves.
func EncodeRequestGameList(w *codec.Writer, options GameOptions) {
	inner := codec.NewWriter()
	WriteGameOptions(inner, options)
	body, _ := inner.Finish()

	w.StartMessage(byte(PacketGameList))
	w.WriteByte(0)
	w.WriteVarUint32(uint32(len(body)))
	w.WriteBytes(body)
	w.EndMessage()
}
