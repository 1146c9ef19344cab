package session

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
	"github.com/duskport/hazelclient/pkg/netobject"
	"github.com/duskport/hazelclient/pkg/wire"
)

func (s *Session) sendGameInfo(build func(w *codec.Writer)) error {
	w := codec.NewWriter()
	build(w)
	msgs, err := w.Finish()
	if err != nil {
		return wrapErr("send_game_info", err)
	}

	out := codec.NewWriter()
	wire.EncodeGameInfo(out, s.gameID, msgs)
	body, err := out.Finish()
	if err != nil {
		return wrapErr("send_game_info", err)
	}
	_, err = s.transport.SendReliable(body)
	return wrapErr("send_game_info", err)
}

func (s *Session) sendGameInfoToHost(build func(w *codec.Writer)) error {
	w := codec.NewWriter()
	build(w)
	msgs, err := w.Finish()
	if err != nil {
		return wrapErr("send_game_info_to_host", err)
	}

	out := codec.NewWriter()
	wire.EncodeGameInfoTo(out, s.gameID, s.hostID, msgs)
	body, err := out.Finish()
	if err != nil {
		return wrapErr("send_game_info_to_host", err)
	}
	_, err = s.transport.SendReliable(body)
	return wrapErr("send_game_info_to_host", err)
}

func (s *Session) sendRPCToHost(netID uint32, callID uint8, payload []byte) error {
	return s.sendGameInfoToHost(func(w *codec.Writer) { wire.EncodeRPC(w, netID, callID, payload) })
}

func (s *Session) sendRPCBroadcast(netID uint32, callID uint8, payload []byte) error {
	return s.sendGameInfo(func(w *codec.Writer) { wire.EncodeRPC(w, netID, callID, payload) })
}

func (s *Session) sendChangeScene() error {
	return s.sendGameInfo(func(w *codec.Writer) { wire.EncodeChangeScene(w, s.clientID, s.settings.SceneName) })
}

func (s *Session) sendClientReady() error {
	return s.sendGameInfo(func(w *codec.Writer) { wire.EncodeClientReady(w, s.clientID) })
}

// self returns this client's own PlayerControl, failing if it has not
// been spawned yet (a CreateFromPrefab for a Player owned by our own
// client id has not arrived).
func (s *Session) self() (*netobject.PlayerControl, error) {
	if s.state != StateInGame {
		return nil, wrapErr("self", errNotInGame)
	}
	pc, ok := s.objects.GetPlayerControl(s.clientID)
	if !ok {
		return nil, wrapErr("self", errSelfNotSpawned)
	}
	return pc, nil
}

// sendInitialIdentity fires the name/color/skin/hat/pet RPCs new clients
// send once their own player has spawned, using the preferences supplied
// in Settings. It logs but does not abort on the first failure, so a
// rejected name (for instance) does not stop the skin/hat/pet requests.
func (s *Session) sendInitialIdentity(self *netobject.PlayerControl) error {
	var firstErr error
	record := func(op string, err error) {
		if err == nil {
			return
		}
		s.log.WithError(err).WithField("op", op).Warn("initial identity RPC failed")
		if firstErr == nil {
			firstErr = err
		}
	}

	record("set_name", s.SetName(s.settings.Username))
	record("set_color", s.SetColor(s.settings.ColorIndex))
	record("set_skin", s.SetSkin(s.settings.SkinIndex))
	record("set_hat", s.SetHat(s.settings.HatIndex))
	record("set_pet", s.SetPet(s.settings.PetIndex))
	return firstErr
}

// SetName requests a display name, sent as a CheckName RPC for the host
// to validate and propagate; a non-host client never applies it locally.
func (s *Session) SetName(name string) error {
	pc, err := s.self()
	if err != nil {
		return err
	}
	if s.IsHost() {
		return wrapErr("set_name", errHostOperation)
	}
	callID, payload := pc.CheckNameRPC(name)
	return s.sendRPCToHost(pc.NetID(), callID, payload)
}

// SetColor requests a player color, sent as a CheckColor RPC.
func (s *Session) SetColor(colorIndex uint8) error {
	if s.IsHost() {
		return wrapErr("set_color", errHostOperation)
	}
	pc, err := s.self()
	if err != nil {
		return err
	}
	callID, payload := pc.CheckColorRPC(colorIndex)
	return s.sendRPCToHost(pc.NetID(), callID, payload)
}

// SetSkin requests a player skin; unlike name/color, skins have no host
// uniqueness check, so this goes straight to SetSkin.
func (s *Session) SetSkin(skinIndex uint32) error {
	if s.IsHost() {
		return wrapErr("set_skin", errHostOperation)
	}
	pc, err := s.self()
	if err != nil {
		return err
	}
	callID, payload := pc.SetSkinRPC(skinIndex)
	return s.sendRPCToHost(pc.NetID(), callID, payload)
}

// SetHat requests a player hat.
func (s *Session) SetHat(hatIndex uint32) error {
	if s.IsHost() {
		return wrapErr("set_hat", errHostOperation)
	}
	pc, err := s.self()
	if err != nil {
		return err
	}
	callID, payload := pc.SetHatRPC(hatIndex)
	return s.sendRPCToHost(pc.NetID(), callID, payload)
}

// SetPet requests a player pet.
func (s *Session) SetPet(petIndex uint32) error {
	if s.IsHost() {
		return wrapErr("set_pet", errHostOperation)
	}
	pc, err := s.self()
	if err != nil {
		return err
	}
	callID, payload := pc.SetPetRPC(petIndex)
	return s.sendRPCToHost(pc.NetID(), callID, payload)
}

// SendChat broadcasts a chat message as this client's own player.
func (s *Session) SendChat(message string) error {
	if s.IsHost() {
		return wrapErr("send_chat", errHostOperation)
	}
	pc, err := s.self()
	if err != nil {
		return err
	}
	callID, payload := pc.ChatMessageRPC(message)
	return s.sendRPCBroadcast(pc.NetID(), callID, payload)
}

// EnterVent broadcasts that this client's player entered the given vent.
func (s *Session) EnterVent(ventID uint32) error {
	if s.IsHost() {
		return wrapErr("enter_vent", errHostOperation)
	}
	phys, ok := s.objects.GetPlayerPhysics(s.clientID)
	if !ok {
		return wrapErr("enter_vent", errSelfNotSpawned)
	}
	callID, payload := phys.EnterVentRPC(ventID)
	return s.sendRPCBroadcast(phys.NetID(), callID, payload)
}

// ExitVent broadcasts that this client's player left the given vent.
func (s *Session) ExitVent(ventID uint32) error {
	if s.IsHost() {
		return wrapErr("exit_vent", errHostOperation)
	}
	phys, ok := s.objects.GetPlayerPhysics(s.clientID)
	if !ok {
		return wrapErr("exit_vent", errSelfNotSpawned)
	}
	callID, payload := phys.ExitVentRPC(ventID)
	return s.sendRPCBroadcast(phys.NetID(), callID, payload)
}

// SetPosition requests a forced position snap for this client's player.
func (s *Session) SetPosition(pos codec.Vector2) error {
	if s.IsHost() {
		return wrapErr("set_position", errHostOperation)
	}
	t, ok := s.objects.GetPlayerTransform(s.clientID)
	if !ok {
		return wrapErr("set_position", errSelfNotSpawned)
	}
	callID, payload := t.SnapToRPC(pos)
	return s.sendRPCToHost(t.NetID(), callID, payload)
}

// DeleteNetObject broadcasts a Destroy for netID and removes it from the
// local registry.
func (s *Session) DeleteNetObject(netID uint32) error {
	if err := s.sendGameInfo(func(w *codec.Writer) { wire.EncodeDestroy(w, netID) }); err != nil {
		return err
	}
	s.objects.Remove(netID)
	return nil
}

// UpdateGameData broadcasts an UpdatePlayerInfo RPC for every player
// currently marked dirty in the game's roster.
func (s *Session) UpdateGameData() error {
	gd, ok := s.objects.GameData()
	if !ok {
		return wrapErr("update_game_data", errSelfNotSpawned)
	}
	callID, payload := gd.UpdatePlayerInfoRPC()
	return s.sendRPCBroadcast(gd.NetID(), callID, payload)
}

// KickPlayer always fails. The original client panics here with a literal
// warning that kicking players this way risks an official-server ban; this
// client declines the action instead of crashing the process over it.
func (s *Session) KickPlayer(playerID int32, ban bool) error {
	return wrapErr("kick_player", fmt.Errorf("kicking players through this client risks an official-server ban, refusing"))
}
