package session

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/duskport/hazelclient/pkg/codec"
	"github.com/duskport/hazelclient/pkg/logging"
	"github.com/duskport/hazelclient/pkg/metrics"
	"github.com/duskport/hazelclient/pkg/netobject"
	"github.com/duskport/hazelclient/pkg/transport"
	"github.com/duskport/hazelclient/pkg/wire"
)

const (
	rejoinBase          = 500 * time.Millisecond
	rejoinFactor        = 2
	rejoinCap           = 30 * time.Second
	maxRejoinAttempts   = 5
	rejoinExhaustedNote = "rejoin attempts exhausted"
)

// Settings configures a Session's handshake and a few behavioral knobs the
// original client hard-codes per build.
type Settings struct {
	Username  string
	Version   uint32
	MapsOwned uint8
	SendScene bool
	SceneName string

	// Initial identity, applied once this client's own player spawns.
	ColorIndex uint8
	SkinIndex  uint32
	HatIndex   uint32
	PetIndex   uint32
}

// DefaultSettings fills in the stock protocol version, "owns every map"
// bitmask, and the game's default (first) color/skin/hat/pet indices,
// leaving only the username to supply.
func DefaultSettings(username string) Settings {
	return Settings{
		Username:  username,
		Version:   wire.ProtocolVersion,
		MapsOwned: 0x07,
		SendScene: true,
		SceneName: "OnlineGame",
	}
}

// Session drives one connection's handshake, join, and in-game frame
// dispatch against a single transport, tracking game membership and the
// live net-object registry.
type Session struct {
	settings Settings
	handler  Handler
	log      *logging.Logger
	id       uuid.UUID

	transport *transport.Transport

	state  State
	gameID wire.GameId

	clientID  int32
	hostID    int32
	playerIDs map[int32]struct{}
	isPublic  bool

	objects *netobject.Registry

	shouldDisconnect bool
	rejoinAttempts   int

	done chan struct{}
}

// New dials addr and returns a Session ready for Join. It does not send
// any frames itself.
func New(addr *net.UDPAddr, settings Settings, handler Handler) (*Session, error) {
	if handler == nil {
		handler = NoopHandler{}
	}

	t, err := transport.Dial(addr)
	if err != nil {
		return nil, wrapErr("new", err)
	}

	id := uuid.New()
	s := &Session{
		settings:  settings,
		handler:   handler,
		id:        id,
		log:       logging.For("session").WithField("session_id", id.String()),
		transport: t,
		state:     StateConnecting,
		playerIDs: make(map[int32]struct{}),
		objects:   netobject.NewRegistry(),
		done:      make(chan struct{}),
	}
	return s, nil
}

// ID returns the session's correlation id, also attached to every log
// line this session emits.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// IsHost reports whether this client is the current game's host. Every
// identity-setting method below refuses to run when this is true: the
// original client never implements host-side application of its own
// identity RPCs, and neither does this one (see DESIGN.md).
func (s *Session) IsHost() bool { return s.clientID == s.hostID }

// Objects returns the session's live net-object registry.
func (s *Session) Objects() *netobject.Registry { return s.objects }

func (s *Session) setState(st State) {
	s.log.WithField("state", st.String()).Debug("state transition")
	s.state = st
}

// Join sends the handshake (Hello then JoinGame) for gameID and
// transitions to Joining. Call Run afterward to drive the session loop.
func (s *Session) Join(gameID wire.GameId) error {
	s.gameID = gameID
	if err := s.sendHandshake(); err != nil {
		return wrapErr("join", err)
	}
	s.setState(StateJoining)
	return nil
}

func (s *Session) sendHandshake() error {
	hw := codec.NewWriter()
	wire.WriteHelloPayload(hw, wire.HelloPayload{Version: s.settings.Version, Username: s.settings.Username})
	helloBody, err := hw.Finish()
	if err != nil {
		return wrapErr("send_handshake", err)
	}
	if _, err := s.transport.SendHello(helloBody); err != nil {
		return wrapErr("send_handshake", err)
	}

	jw := codec.NewWriter()
	wire.EncodeJoinGame(jw, wire.JoinGamePayload{GameID: s.gameID, MapsOwned: s.settings.MapsOwned})
	joinBody, err := jw.Finish()
	if err != nil {
		return wrapErr("send_handshake", err)
	}
	if _, err := s.transport.SendReliable(joinBody); err != nil {
		return wrapErr("send_handshake", err)
	}
	return nil
}

// Disconnect requests that the session stop on its next loop iteration and
// closes its transport.
func (s *Session) Disconnect() error {
	s.shouldDisconnect = true
	return s.close()
}

func (s *Session) close() error {
	var err error
	select {
	case <-s.done:
	default:
		close(s.done)
		err = s.transport.Close()
	}
	return err
}

// Run drives the session's frame-dispatch loop until the transport closes,
// a rejoin exhausts its attempts, or Disconnect is called. It blocks the
// calling goroutine; run it in its own goroutine for a non-blocking
// client.
func (s *Session) Run() error {
	for {
		select {
		case <-s.done:
			s.setState(StateTerminated)
			return nil

		case frame, ok := <-s.transport.Receive():
			if !ok {
				s.setState(StateTerminated)
				return nil
			}
			if err := s.dispatchFrame(frame); err != nil {
				if errors.Is(err, errRejoinExhausted) {
					return err
				}
				s.log.WithError(err).Warn("dropping frame after dispatch error")
			}
			if s.shouldDisconnect {
				s.close()
				s.setState(StateTerminated)
				return nil
			}
		}
	}
}

func (s *Session) dispatchFrame(frame transport.Frame) error {
	if s.handler.OnPacketReceived() {
		s.shouldDisconnect = true
	}

	if frame.Type == transport.FrameDisconnect {
		return s.handleTransportDisconnect()
	}

	r := codec.NewReader(frame.Data)
	for r.Remaining() > 0 {
		pkt, err := wire.DecodePacket(r)
		if err != nil {
			return wrapErr("dispatch_frame", err)
		}
		if err := s.dispatchPacket(pkt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) dispatchPacket(pkt wire.Packet) error {
	switch p := pkt.(type) {
	case wire.DisconnectedPacket:
		s.handler.OnDisconnectReason(p.Reason)
		return nil

	case wire.ServerListPacket:
		s.handler.OnServerInfo(p)
		return nil

	case wire.GameListPacket:
		return nil // ignored in session mode; matchmaker handles listings

	case wire.ChangeServerPacket:
		return s.changeServer(p.Address)

	case wire.ClientJoinedGamePacket:
		if p.GameID != s.gameID {
			return nil
		}
		s.clientID = p.ClientID
		s.hostID = p.HostID
		s.playerIDs = make(map[int32]struct{}, len(p.PlayerIDs))
		for _, id := range p.PlayerIDs {
			s.playerIDs[id] = struct{}{}
		}
		if s.rejoinAttempts > 0 {
			metrics.SessionRejoinAttempts.WithLabelValues("succeeded").Inc()
		}
		s.rejoinAttempts = 0
		s.setState(StateInGame)
		if s.settings.SendScene {
			return s.sendChangeScene()
		}
		return nil

	case wire.PlayerJoinedPacket:
		if p.GameID != s.gameID {
			return nil
		}
		s.playerIDs[p.PlayerID] = struct{}{}
		s.hostID = p.HostID
		return nil

	case wire.PlayerLeftPacket:
		if p.GameID != s.gameID {
			return nil
		}
		delete(s.playerIDs, p.PlayerID)
		s.hostID = p.HostID
		return nil

	case wire.GameStartedPacket:
		if !s.IsHost() {
			return s.sendClientReady()
		}
		return nil

	case wire.GameInfoPacket:
		return s.dispatchGameInfo(p.GameID, nil, p.Data)

	case wire.GameInfoToPacket:
		clientID := p.ClientID
		return s.dispatchGameInfo(p.GameID, &clientID, p.Data)

	case wire.GameAlteredPacket:
		if p.GameID == s.gameID {
			s.isPublic = p.IsPublic
		}
		return nil

	case wire.HostingGamePacket, wire.KickPlayerPacket, wire.NotImplementedPacket, wire.UnknownPacket:
		return nil // not actionable by a non-host client

	default:
		return nil
	}
}

func (s *Session) dispatchGameInfo(gameID wire.GameId, clientIDFilter *int32, data []wire.GameInfo) error {
	if gameID != s.gameID {
		return nil
	}
	if clientIDFilter != nil && *clientIDFilter != s.clientID {
		return nil
	}

	for _, msg := range data {
		if err := s.dispatchGameInfoMessage(msg); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) dispatchGameInfoMessage(msg wire.GameInfo) error {
	switch m := msg.(type) {
	case wire.GameInfoUpdateDataMsg:
		if err := s.objects.UpdateData(m.NetID, m.Data); err != nil {
			s.log.WithError(err).WithField("net_id", m.NetID).Debug("update_data for unknown net object")
		}
		return nil

	case wire.GameInfoRPCMsg:
		outcome, err := s.objects.HandleRPC(m.NetID, m.CallID, m.Data)
		if err != nil {
			s.log.WithError(err).WithField("net_id", m.NetID).Debug("rpc for unknown net object")
			return nil
		}
		s.applyOutcome(m.NetID, outcome)
		return nil

	case wire.GameInfoDestroyMsg:
		s.objects.Remove(m.NetID)
		return nil

	case wire.GameInfoCreateFromPrefabMsg:
		spawned, err := netobject.Spawn(m)
		if err != nil {
			return wrapErr("dispatch_game_info", err)
		}
		for _, o := range spawned {
			s.objects.Add(o)
		}
		if self := netobject.SelfPlayerControl(spawned); self != nil && self.OwnerID() == s.clientID {
			if err := s.sendInitialIdentity(self); err != nil {
				s.log.WithError(err).Warn("failed to send initial identity")
			}
			s.handler.OnJoinedGame()
		}
		return nil

	case wire.GameInfoChangeSceneMsg, wire.GameInfoClientReadyMsg, wire.GameInfoUnknownMsg:
		return nil

	default:
		return nil
	}
}

func (s *Session) applyOutcome(netID uint32, outcome netobject.Outcome) {
	switch o := outcome.(type) {
	case netobject.ChatMessageOutcome:
		if obj, ok := s.objects.Get(netID); ok {
			if pc, ok := obj.(*netobject.PlayerControl); ok {
				s.handler.OnChatMessage(int32(pc.PlayerID), o.Message)
				return
			}
		}
		s.handler.OnChatMessage(-1, o.Message)

	case netobject.UnhandledRPCOutcome:
		s.handler.OnUnhandledRPC(netID, o.CallID, o.Payload)

	case netobject.NoOutcome:
		// nothing to surface
	}
}

func (s *Session) changeServer(addr wire.Address) error {
	s.log.WithField("new_addr", addr.String()).Info("server requested redirect, reconnecting")
	s.transport.Close()

	t, err := transport.Dial(addr.UDPAddr())
	if err != nil {
		return wrapErr("change_server", err)
	}
	s.transport = t
	return s.sendHandshake()
}

// handleTransportDisconnect implements the auto-rejoin behavior, bounded
// by an exponential backoff (see DESIGN.md for the rationale behind
// departing from the original's unconditional immediate retry).
func (s *Session) handleTransportDisconnect() error {
	if s.shouldDisconnect {
		s.setState(StateTerminated)
		return nil
	}
	return s.rejoin()
}

func (s *Session) rejoin() error {
	s.setState(StateRejoining)

	for s.rejoinAttempts < maxRejoinAttempts {
		s.rejoinAttempts++
		wait := rejoinBackoff(s.rejoinAttempts)
		s.handler.OnRejoinAttempt(s.rejoinAttempts, wait)

		if err := s.waitBackoff(wait); err != nil {
			return wrapErr("rejoin", err)
		}

		metrics.SessionRejoinAttempts.WithLabelValues("retry").Inc()
		if err := s.sendHandshake(); err != nil {
			s.log.WithError(err).WithField("attempt", s.rejoinAttempts).Warn("rejoin attempt failed")
			continue
		}
		s.setState(StateJoining)
		return nil
	}

	metrics.SessionRejoinAttempts.WithLabelValues("exhausted").Inc()
	s.setState(StateTerminated)
	s.handler.OnDisconnectReason(wire.DisconnectReason{Kind: wire.DisconnectCustom, Message: rejoinExhaustedNote})
	return wrapErr("rejoin", errRejoinExhausted)
}

// rejoinBackoff computes the wait before the nth (1-indexed) rejoin
// attempt: 500ms, 1s, 2s, 4s, 8s, capped at 30s.
func rejoinBackoff(attempt int) time.Duration {
	d := rejoinBase
	for i := 1; i < attempt; i++ {
		d *= rejoinFactor
		if d >= rejoinCap {
			return rejoinCap
		}
	}
	if d > rejoinCap {
		d = rejoinCap
	}
	return d
}

// waitBackoff sleeps for d, gated through a single-use rate.Limiter reservation
// rather than a bare time.Sleep, so the same pacing primitive the matchmaker
// uses for request throttling also governs rejoin pacing. Returns early if
// the session is closed while waiting.
func (s *Session) waitBackoff(d time.Duration) error {
	if d <= 0 {
		return nil
	}
	lim := rate.NewLimiter(rate.Every(d), 1)
	lim.Allow() // drain the initial burst token so the reservation below actually waits
	delay := lim.Reserve().Delay()

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-s.done:
		return fmt.Errorf("session closed while waiting to rejoin")
	}
}
