package wire

import "github.com/duskport/hazelclient/pkg/codec"

// HelloPayload is the application data carried inside the transport's Hello
// frame: a reserved byte, the decimal-packed game version, and the
// connecting username.
type HelloPayload struct {
	Version  uint32
	Username string
}

// WriteHelloPayload writes the reserved byte, version, and username.
func WriteHelloPayload(w *codec.Writer, h HelloPayload) {
	w.WriteByte(0) // reserved
	w.WriteUint32LE(h.Version)
	w.WriteString(h.Username)
}

// JoinGamePayload is the body of a GameJoinDisconnect request asking to
// join an existing game.
type JoinGamePayload struct {
	GameID    GameId
	MapsOwned uint8
}

// WriteJoinGamePayload writes a JoinGamePayload.
func WriteJoinGamePayload(w *codec.Writer, j JoinGamePayload) {
	WriteGameId(w, j.GameID)
	w.WriteByte(j.MapsOwned)
}
