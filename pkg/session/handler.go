package session

import (
	"time"

	"github.com/duskport/hazelclient/pkg/wire"
)

// Handler receives every event a Session produces. All methods default to
// no-op via the embeddable NoopHandler; implementations only override what
// they care about.
type Handler interface {
	// OnDisconnectReason fires when the server sends a disconnect reason;
	// the session keeps running afterwards. It also fires, with a Custom
	// reason, when rejoin attempts are exhausted.
	OnDisconnectReason(reason wire.DisconnectReason)

	// OnJoinedGame fires once the local client's own player has been
	// spawned from a CreateFromPrefab and its initial identity RPCs sent.
	OnJoinedGame()

	// OnPacketReceived fires before every inbound frame is dispatched.
	// Returning true requests that the session disconnect.
	OnPacketReceived() bool

	// OnServerInfo fires on a ServerList reply (matchmaker handshake).
	OnServerInfo(servers wire.ServerListPacket)

	// OnChatMessage fires when a PlayerControl SendChat RPC is handled.
	OnChatMessage(playerID int32, message string)

	// OnUnhandledRPC fires for any RPC call id a net object has no typed
	// behavior for, carrying its raw payload.
	OnUnhandledRPC(netID uint32, callID uint8, payload []byte)

	// OnRejoinAttempt fires before each bounded-backoff rejoin attempt.
	OnRejoinAttempt(attempt int, wait time.Duration)
}

// NoopHandler implements every Handler method as a no-op. Embed it and
// override only the events an application cares about.
type NoopHandler struct{}

func (NoopHandler) OnDisconnectReason(wire.DisconnectReason) {}
func (NoopHandler) OnJoinedGame()                            {}
func (NoopHandler) OnPacketReceived() bool                   { return false }
func (NoopHandler) OnServerInfo(wire.ServerListPacket)       {}
func (NoopHandler) OnChatMessage(int32, string)              {}
func (NoopHandler) OnUnhandledRPC(uint32, uint8, []byte)     {}
func (NoopHandler) OnRejoinAttempt(int, time.Duration)       {}
