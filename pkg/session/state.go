package session

import "fmt"

// State is where a Session sits in its connection lifecycle.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateJoining
	StateInGame
	StateRejoining
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateJoining:
		return "joining"
	case StateInGame:
		return "in_game"
	case StateRejoining:
		return "rejoining"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
