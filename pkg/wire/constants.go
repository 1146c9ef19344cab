// Package wire implements the typed packet, game-info, and game-data
// structures layered on top of pkg/codec: the outer packet envelope, the
// matchmaker request/response shapes, and the per-object replication
// payloads exchanged once inside a game.
package wire

// PacketType is the outer message tag carried by every top-level frame
// inside a Reliable/Unreliable transport payload.
type PacketType byte

const (
	PacketHostingGame        PacketType = 0x00
	PacketGameJoinDisconnect PacketType = 0x01
	PacketGameStarted        PacketType = 0x02
	PacketPlayerLeft         PacketType = 0x04
	PacketGameInfo           PacketType = 0x05
	PacketGameInfoTo         PacketType = 0x06
	PacketJoinedGame         PacketType = 0x07
	PacketAlterGameInfo      PacketType = 0x0a
	PacketKickPlayer         PacketType = 0x0b
	PacketChangeServer       PacketType = 0x0d
	PacketServerList         PacketType = 0x0e
	PacketGameList           PacketType = 0x10
)

// GameInfoType is the inner message tag carried within a GameInfo/GameInfoTo
// outer packet's nested messages.
type GameInfoType byte

const (
	GameInfoUpdateData       GameInfoType = 1
	GameInfoRPC              GameInfoType = 2
	GameInfoCreateFromPrefab GameInfoType = 4
	GameInfoDestroy          GameInfoType = 5
	GameInfoChangeScene      GameInfoType = 6
	GameInfoClientReady      GameInfoType = 7
)

// PrefabType identifies a pre-registered bundle of networked objects spawned
// together by CreateFromPrefab.
type PrefabType uint32

const (
	PrefabWorld        PrefabType = 0x00
	PrefabMeetingHub   PrefabType = 0x01
	PrefabLobby        PrefabType = 0x02
	PrefabGameData     PrefabType = 0x03
	PrefabPlayer       PrefabType = 0x04
	PrefabHeadQuarters PrefabType = 0x05
)

// DefaultPort is the UDP port every hard-coded region address listens on.
const DefaultPort uint16 = 22023

// ProtocolVersion is the decimal-packed major/minor/patch build number this
// client presents in its Hello payload.
const ProtocolVersion uint32 = 50516550

// RegionServer is one hard-coded matchmaker/game server this client can
// dial without a config file.
type RegionServer struct {
	Name string
	Host string
}

// RegionServers are the three stock region addresses, all on DefaultPort.
var RegionServers = []RegionServer{
	{Name: "europe", Host: "172.105.251.170"},
	{Name: "north-america", Host: "66.175.220.120"},
	{Name: "asia", Host: "139.162.111.196"},
}
