package wire

import (
	"bytes"
	"testing"

	"github.com/duskport/hazelclient/pkg/codec"
)

func TestGameIdFromCharsSixCharCode(t *testing.T) {
	id, err := FromChars("AQNKQQ")
	if err != nil {
		t.Fatalf("FromChars error: %v", err)
	}
	w := codec.NewWriter()
	WriteGameId(w, id)
	want := []byte{0x19, 0xdc, 0x06, 0x80}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("GameId bytes = %#v, want %#v", w.Bytes(), want)
	}
	if got := id.String(); got != "AQNKQQ" {
		t.Errorf("GameId.String() = %q, want AQNKQQ", got)
	}
}

func TestGameIdFourCharCode(t *testing.T) {
	id, err := FromChars("ABCD")
	if err != nil {
		t.Fatalf("FromChars error: %v", err)
	}
	if id.ID < 0 {
		t.Fatalf("four-char code produced negative id %d", id.ID)
	}
	if got := id.String(); got != "ABCD" {
		t.Errorf("GameId.String() = %q, want ABCD", got)
	}
}

func TestGameIdRoundTripSample(t *testing.T) {
	codes := []string{"AAAAAA", "ZZZZZZ", "QWXRTY", "PESDFG"}
	for _, code := range codes {
		id, err := FromChars(code)
		if err != nil {
			t.Fatalf("FromChars(%q) error: %v", code, err)
		}
		if got := id.String(); got != code {
			t.Errorf("roundtrip(%q) = %q", code, got)
		}
	}
}

func TestJoinGamePayloadWireBytes(t *testing.T) {
	id, err := FromChars("AQNKQQ")
	if err != nil {
		t.Fatalf("FromChars error: %v", err)
	}
	w := codec.NewWriter()
	WriteJoinGamePayload(w, JoinGamePayload{GameID: id, MapsOwned: 7})
	want := []byte{0x19, 0xdc, 0x06, 0x80, 0x07}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("JoinGamePayload = %#v, want %#v", w.Bytes(), want)
	}
}

func TestHelloPayloadWireBytes(t *testing.T) {
	w := codec.NewWriter()
	WriteHelloPayload(w, HelloPayload{Version: 50516550, Username: "oregano"})
	want := []byte{
		0x00,                   // reserved
		0x46, 0xD2, 0x02, 0x03, // version LE
		0x07,                                     // varint string length
		0x6F, 0x72, 0x65, 0x67, 0x61, 0x6E, 0x6F, // "oregano"
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("HelloPayload = %#v, want %#v", w.Bytes(), want)
	}
}

func TestGameOptionsRoundTrip(t *testing.T) {
	opts := DefaultGameOptions()
	w := codec.NewWriter()
	WriteGameOptions(w, opts)
	got, err := ReadGameOptions(codec.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadGameOptions error: %v", err)
	}
	if got != opts {
		t.Errorf("GameOptions roundtrip = %+v, want %+v", got, opts)
	}
}

func TestGameListingRoundTrip(t *testing.T) {
	id, _ := FromChars("AQNKQQ")
	listing := GameListing{
		Address:      Address{IP: [4]byte{1, 2, 3, 4}, Port: 22023},
		ID:           id,
		HostUsername: "host",
		PlayerCount:  5,
		AgeSeconds:   120,
		MapID:        MapMiraHQ,
		NumImposters: 2,
		MaxPlayers:   10,
	}
	w := codec.NewWriter()
	WriteGameListing(w, listing)
	got, err := ReadGameListing(codec.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadGameListing error: %v", err)
	}
	if got != listing {
		t.Errorf("GameListing roundtrip = %+v, want %+v", got, listing)
	}
}

func TestServerInfoRoundTrip(t *testing.T) {
	info := ServerInfo{Name: "eu", IP: [4]byte{172, 105, 251, 170}, Port: 22023, ConnectionFailures: 3}
	w := codec.NewWriter()
	WriteServerInfo(w, info)
	got, err := ReadServerInfo(codec.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadServerInfo error: %v", err)
	}
	if got != info {
		t.Errorf("ServerInfo roundtrip = %+v, want %+v", got, info)
	}
}

func TestPlayerDataRoundTrip(t *testing.T) {
	pd := PlayerData{
		Name: "client", Color: 3, HatID: 10, SkinID: 2, PetID: 0,
		Disconnected: false, IsImposter: true, IsDead: false,
		Tasks: []TaskInfo{{ID: 1, Complete: true}, {ID: 2, Complete: false}},
	}
	w := codec.NewWriter()
	WritePlayerData(w, pd)
	got, err := ReadPlayerData(codec.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("ReadPlayerData error: %v", err)
	}
	pd.Dirty = false
	if got.Name != pd.Name || got.Color != pd.Color || got.HatID != pd.HatID ||
		got.SkinID != pd.SkinID || got.PetID != pd.PetID || got.Disconnected != pd.Disconnected ||
		got.IsImposter != pd.IsImposter || got.IsDead != pd.IsDead || len(got.Tasks) != len(pd.Tasks) {
		t.Errorf("PlayerData roundtrip = %+v, want %+v", got, pd)
	}
}

func TestDecodeJoinDisconnectRoutesByMagnitude(t *testing.T) {
	// A reason code (< 0xff) decodes as Disconnected.
	w := codec.NewWriter()
	w.StartMessage(byte(PacketGameJoinDisconnect))
	w.WriteInt32LE(6) // Banned
	w.EndMessage()
	buf, _ := w.Finish()

	pkt, err := DecodePacket(codec.NewReader(buf))
	if err != nil {
		t.Fatalf("DecodePacket error: %v", err)
	}
	d, ok := pkt.(DisconnectedPacket)
	if !ok {
		t.Fatalf("got %T, want DisconnectedPacket", pkt)
	}
	if d.Reason.Kind != DisconnectBanned {
		t.Errorf("reason kind = %v, want DisconnectBanned", d.Reason.Kind)
	}

	// A value >= 0xff decodes as PlayerJoined.
	w2 := codec.NewWriter()
	w2.StartMessage(byte(PacketGameJoinDisconnect))
	id, _ := FromChars("AQNKQQ")
	w2.WriteInt32LE(id.ID)
	w2.WriteInt32LE(42)
	w2.WriteInt32LE(1)
	w2.EndMessage()
	buf2, _ := w2.Finish()

	pkt2, err := DecodePacket(codec.NewReader(buf2))
	if err != nil {
		t.Fatalf("DecodePacket error: %v", err)
	}
	pj, ok := pkt2.(PlayerJoinedPacket)
	if !ok {
		t.Fatalf("got %T, want PlayerJoinedPacket", pkt2)
	}
	if pj.PlayerID != 42 || pj.HostID != 1 {
		t.Errorf("PlayerJoinedPacket = %+v", pj)
	}
}

func TestDecodeCustomDisconnectReadsMessage(t *testing.T) {
	w := codec.NewWriter()
	w.StartMessage(byte(PacketGameJoinDisconnect))
	w.WriteInt32LE(8) // Custom
	w.WriteString("server full")
	w.EndMessage()
	buf, _ := w.Finish()

	pkt, err := DecodePacket(codec.NewReader(buf))
	if err != nil {
		t.Fatalf("DecodePacket error: %v", err)
	}
	d := pkt.(DisconnectedPacket)
	if d.Reason.Kind != DisconnectCustom || d.Reason.Message != "server full" {
		t.Errorf("got %+v", d.Reason)
	}
}

func TestDecodeGameInfoRPC(t *testing.T) {
	inner := codec.NewWriter()
	EncodeRPC(inner, 7, 13, []byte{0x02, 'h', 'i'})
	buf, _ := inner.Finish()

	info, err := DecodeGameInfo(codec.NewReader(buf))
	if err != nil {
		t.Fatalf("DecodeGameInfo error: %v", err)
	}
	rpc, ok := info.(GameInfoRPCMsg)
	if !ok {
		t.Fatalf("got %T, want GameInfoRPCMsg", info)
	}
	if rpc.NetID != 7 || rpc.CallID != 13 || !bytes.Equal(rpc.Data, []byte{0x02, 'h', 'i'}) {
		t.Errorf("GameInfoRPCMsg = %+v", rpc)
	}
}

func TestDecodeUnknownGameInfoTagIsOpaque(t *testing.T) {
	w := codec.NewWriter()
	w.StartMessage(0xEE)
	w.WriteByte(1)
	w.EndMessage()
	buf, _ := w.Finish()

	info, err := DecodeGameInfo(codec.NewReader(buf))
	if err != nil {
		t.Fatalf("DecodeGameInfo error: %v", err)
	}
	if u, ok := info.(GameInfoUnknownMsg); !ok || u.Tag != 0xEE {
		t.Errorf("got %+v, want GameInfoUnknownMsg{Tag: 0xEE}", info)
	}
}
