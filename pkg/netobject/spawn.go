package netobject

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
	"github.com/duskport/hazelclient/pkg/wire"
)

// Spawn interprets a GameInfo::CreateFromPrefab message's children
// according to its PrefabID, returning the concrete net objects it
// contains in the fixed order the protocol lays them out in. An
// unrecognized prefab id returns (nil, nil): there is nothing to add,
// and nothing has gone wrong either — this is how the wire layer stays
// forward-compatible with prefab kinds this client doesn't model
// (MeetingHub, HeadQuarters).
func Spawn(msg wire.GameInfoCreateFromPrefabMsg) ([]Object, error) {
	switch msg.PrefabID {
	case wire.PrefabWorld:
		if err := expectChildren(msg, 1); err != nil {
			return nil, err
		}
		world, err := NewWorld(msg.Children[0].NetID, msg.OwnerID, codec.NewReader(msg.Children[0].Raw))
		if err != nil {
			return nil, wrapErr("spawn_world", err)
		}
		return []Object{world}, nil

	case wire.PrefabPlayer:
		if err := expectChildren(msg, 3); err != nil {
			return nil, err
		}
		control, err := NewPlayerControl(msg.Children[0].NetID, msg.OwnerID, codec.NewReader(msg.Children[0].Raw))
		if err != nil {
			return nil, wrapErr("spawn_player_control", err)
		}
		physics := NewPlayerPhysics(msg.Children[1].NetID, msg.OwnerID)
		transform, err := NewPlayerTransform(msg.Children[2].NetID, msg.OwnerID, codec.NewReader(msg.Children[2].Raw))
		if err != nil {
			return nil, wrapErr("spawn_player_transform", err)
		}
		return []Object{control, physics, transform}, nil

	case wire.PrefabLobby:
		if err := expectChildren(msg, 1); err != nil {
			return nil, err
		}
		lobby := NewLobby(msg.Children[0].NetID, msg.OwnerID)
		return []Object{lobby}, nil

	case wire.PrefabGameData:
		if err := expectChildren(msg, 2); err != nil {
			return nil, err
		}
		gameData, err := NewGameData(msg.Children[0].NetID, msg.OwnerID, codec.NewReader(msg.Children[0].Raw))
		if err != nil {
			return nil, wrapErr("spawn_game_data", err)
		}
		voteBan, err := NewVoteBanSystem(msg.Children[1].NetID, msg.OwnerID, codec.NewReader(msg.Children[1].Raw))
		if err != nil {
			return nil, wrapErr("spawn_vote_ban", err)
		}
		return []Object{gameData, voteBan}, nil

	default:
		return nil, nil
	}
}

func expectChildren(msg wire.GameInfoCreateFromPrefabMsg, want int) error {
	if len(msg.Children) != want {
		return wrapErr("spawn", fmt.Errorf("prefab %v has %d children, want %d", msg.PrefabID, len(msg.Children), want))
	}
	return nil
}

// SelfPlayerControl returns the PlayerControl among spawned objects, or
// nil if spawned did not come from a Player prefab. Used to detect
// whether a CreateFromPrefab spawned the local client's own player.
func SelfPlayerControl(spawned []Object) *PlayerControl {
	for _, o := range spawned {
		if pc, ok := o.(*PlayerControl); ok {
			return pc
		}
	}
	return nil
}
