// Package netobject implements the replicated net-object registry: the
// live collection of PlayerControl/PlayerPhysics/PlayerTransform/World/
// GameData/VoteBanSystem/Lobby instances a session tracks once inside a
// game, along with their UpdateData and RPC payload semantics.
package netobject

import (
	"sync"

	"github.com/duskport/hazelclient/pkg/codec"
)

// Kind identifies a net object's concrete variant.
type Kind byte

const (
	KindPlayerControl Kind = iota
	KindPlayerPhysics
	KindPlayerTransform
	KindWorld
	KindGameData
	KindVoteBanSystem
	KindLobby
)

func (k Kind) String() string {
	switch k {
	case KindPlayerControl:
		return "PlayerControl"
	case KindPlayerPhysics:
		return "PlayerPhysics"
	case KindPlayerTransform:
		return "PlayerTransform"
	case KindWorld:
		return "World"
	case KindGameData:
		return "GameData"
	case KindVoteBanSystem:
		return "VoteBanSystem"
	case KindLobby:
		return "Lobby"
	default:
		return "Unknown"
	}
}

// Object is the polymorphic handle the registry dispatches UpdateData and
// RPC calls through, regardless of concrete variant.
type Object interface {
	NetID() uint32
	OwnerID() int32
	Kind() Kind
	UpdateData(r *codec.Reader) error
	HandleRPC(callID uint8, r *codec.Reader) (Outcome, error)
}

// Outcome is what handling one RPC call produced: nothing of interest to
// the application, a chat message to surface, or an RPC call id this
// client has no typed handler for.
type Outcome interface {
	outcome()
}

// NoOutcome means the RPC was fully handled internally.
type NoOutcome struct{}

func (NoOutcome) outcome() {}

// ChatMessageOutcome surfaces a PlayerControl SendChat RPC to the caller.
type ChatMessageOutcome struct {
	Message string
}

func (ChatMessageOutcome) outcome() {}

// UnhandledRPCOutcome is returned for a recognized-but-unimplemented or
// entirely unknown call id, carrying the call id and the remaining
// payload bytes so the caller can still observe it without the parse
// getting stuck or corrupting the rest of the frame.
type UnhandledRPCOutcome struct {
	CallID  uint8
	Payload []byte
}

func (UnhandledRPCOutcome) outcome() {}

// Registry holds one bucket of live net objects per variant. Lookup by
// net id is a linear scan across every bucket; object counts within a
// single game are small (dozens), so this never needs an index.
type Registry struct {
	mu sync.RWMutex

	playerControls   []*PlayerControl
	playerPhysics    []*PlayerPhysics
	playerTransforms []*PlayerTransform
	worlds           []*World
	gameDatas        []*GameData
	voteBanSystems   []*VoteBanSystem
	lobbies          []*Lobby
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add inserts o into its variant's bucket, replacing any existing object
// with the same net id.
func (reg *Registry) Add(o Object) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	switch v := o.(type) {
	case *PlayerControl:
		reg.playerControls = addOrReplace(reg.playerControls, v)
	case *PlayerPhysics:
		reg.playerPhysics = addOrReplace(reg.playerPhysics, v)
	case *PlayerTransform:
		reg.playerTransforms = addOrReplace(reg.playerTransforms, v)
	case *World:
		reg.worlds = addOrReplace(reg.worlds, v)
	case *GameData:
		reg.gameDatas = addOrReplace(reg.gameDatas, v)
	case *VoteBanSystem:
		reg.voteBanSystems = addOrReplace(reg.voteBanSystems, v)
	case *Lobby:
		reg.lobbies = addOrReplace(reg.lobbies, v)
	}
}

func addOrReplace[T Object](bucket []T, o T) []T {
	for i, existing := range bucket {
		if existing.NetID() == o.NetID() {
			bucket[i] = o
			return bucket
		}
	}
	return append(bucket, o)
}

// Remove deletes the object with the given net id from whichever bucket
// holds it, reporting whether anything was removed.
func (reg *Registry) Remove(netID uint32) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var removed bool
	reg.playerControls, removed = removeByNetID(reg.playerControls, netID)
	if removed {
		return true
	}
	reg.playerPhysics, removed = removeByNetID(reg.playerPhysics, netID)
	if removed {
		return true
	}
	reg.playerTransforms, removed = removeByNetID(reg.playerTransforms, netID)
	if removed {
		return true
	}
	reg.worlds, removed = removeByNetID(reg.worlds, netID)
	if removed {
		return true
	}
	reg.gameDatas, removed = removeByNetID(reg.gameDatas, netID)
	if removed {
		return true
	}
	reg.voteBanSystems, removed = removeByNetID(reg.voteBanSystems, netID)
	if removed {
		return true
	}
	reg.lobbies, removed = removeByNetID(reg.lobbies, netID)
	return removed
}

func removeByNetID[T Object](bucket []T, netID uint32) ([]T, bool) {
	for i, o := range bucket {
		if o.NetID() == netID {
			return append(bucket[:i], bucket[i+1:]...), true
		}
	}
	return bucket, false
}

// Get returns a generic handle to the object with the given net id,
// searching linearly across every variant bucket.
func (reg *Registry) Get(netID uint32) (Object, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for _, o := range reg.playerControls {
		if o.NetID() == netID {
			return o, true
		}
	}
	for _, o := range reg.playerPhysics {
		if o.NetID() == netID {
			return o, true
		}
	}
	for _, o := range reg.playerTransforms {
		if o.NetID() == netID {
			return o, true
		}
	}
	for _, o := range reg.worlds {
		if o.NetID() == netID {
			return o, true
		}
	}
	for _, o := range reg.gameDatas {
		if o.NetID() == netID {
			return o, true
		}
	}
	for _, o := range reg.voteBanSystems {
		if o.NetID() == netID {
			return o, true
		}
	}
	for _, o := range reg.lobbies {
		if o.NetID() == netID {
			return o, true
		}
	}
	return nil, false
}

// GetPlayerControl returns the PlayerControl owned by ownerID, if any.
func (reg *Registry) GetPlayerControl(ownerID int32) (*PlayerControl, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, o := range reg.playerControls {
		if o.OwnerID() == ownerID {
			return o, true
		}
	}
	return nil, false
}

// GetPlayerPhysics returns the PlayerPhysics owned by ownerID, if any.
func (reg *Registry) GetPlayerPhysics(ownerID int32) (*PlayerPhysics, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, o := range reg.playerPhysics {
		if o.OwnerID() == ownerID {
			return o, true
		}
	}
	return nil, false
}

// GetPlayerTransform returns the PlayerTransform owned by ownerID, if any.
func (reg *Registry) GetPlayerTransform(ownerID int32) (*PlayerTransform, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, o := range reg.playerTransforms {
		if o.OwnerID() == ownerID {
			return o, true
		}
	}
	return nil, false
}

// GameData returns the single GameData object, if one has been spawned.
func (reg *Registry) GameData() (*GameData, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if len(reg.gameDatas) == 0 {
		return nil, false
	}
	return reg.gameDatas[0], true
}

// World returns the single World object, if one has been spawned.
func (reg *Registry) World() (*World, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if len(reg.worlds) == 0 {
		return nil, false
	}
	return reg.worlds[0], true
}

// UpdateData applies a GameInfo::UpdateData payload to the addressed
// object.
func (reg *Registry) UpdateData(netID uint32, data []byte) error {
	o, ok := reg.Get(netID)
	if !ok {
		return wrapErr("update_data", errUnknownNetID)
	}
	return o.UpdateData(codec.NewReader(data))
}

// HandleRPC dispatches a GameInfo::RPC payload to the addressed object.
func (reg *Registry) HandleRPC(netID uint32, callID uint8, data []byte) (Outcome, error) {
	o, ok := reg.Get(netID)
	if !ok {
		return nil, wrapErr("handle_rpc", errUnknownNetID)
	}
	return o.HandleRPC(callID, codec.NewReader(data))
}
