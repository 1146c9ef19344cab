package wire

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
)

// DisconnectKind enumerates the reasons a server (or local decision) can
// end a session.
type DisconnectKind int

const (
	DisconnectExitGame DisconnectKind = iota
	DisconnectGameFull
	DisconnectGameStarted
	DisconnectGameNotFound
	DisconnectIncorrectVersion
	DisconnectBanned
	DisconnectKicked
	DisconnectCustom
	DisconnectDestroy
	DisconnectError
	DisconnectIncorrectGame
	DisconnectServerRequest
	DisconnectServerFull
	DisconnectFocusLostBackground
	DisconnectIntentionalLeaving
	DisconnectFocusLost
	DisconnectNewConnection
	DisconnectUnknown
)

// DisconnectReason is a decoded GameJoinDisconnect reason. Message is only
// populated for DisconnectCustom.
type DisconnectReason struct {
	Kind    DisconnectKind
	Message string
}

func (d DisconnectReason) String() string {
	if d.Kind == DisconnectCustom {
		return fmt.Sprintf("Custom(%q)", d.Message)
	}
	return fmt.Sprintf("Kind(%d)", d.Kind)
}

// DecodeDisconnectReason maps the leading i32 value of a GameJoinDisconnect
// body to a reason, reading a trailing string only when the code is
// DisconnectCustom (8).
func DecodeDisconnectReason(value int32, r *codec.Reader) (DisconnectReason, error) {
	switch value {
	case 0:
		return DisconnectReason{Kind: DisconnectExitGame}, nil
	case 1:
		return DisconnectReason{Kind: DisconnectGameFull}, nil
	case 2:
		return DisconnectReason{Kind: DisconnectGameStarted}, nil
	case 3:
		return DisconnectReason{Kind: DisconnectGameNotFound}, nil
	case 5:
		return DisconnectReason{Kind: DisconnectIncorrectVersion}, nil
	case 6:
		return DisconnectReason{Kind: DisconnectBanned}, nil
	case 7:
		return DisconnectReason{Kind: DisconnectKicked}, nil
	case 8:
		msg, err := r.ReadString()
		if err != nil {
			return DisconnectReason{}, err
		}
		return DisconnectReason{Kind: DisconnectCustom, Message: msg}, nil
	case 16:
		return DisconnectReason{Kind: DisconnectDestroy}, nil
	case 17:
		return DisconnectReason{Kind: DisconnectError}, nil
	case 18:
		return DisconnectReason{Kind: DisconnectIncorrectGame}, nil
	case 19:
		return DisconnectReason{Kind: DisconnectServerRequest}, nil
	case 20:
		return DisconnectReason{Kind: DisconnectServerFull}, nil
	case 207:
		return DisconnectReason{Kind: DisconnectFocusLostBackground}, nil
	case 208:
		return DisconnectReason{Kind: DisconnectIntentionalLeaving}, nil
	case 209:
		return DisconnectReason{Kind: DisconnectFocusLost}, nil
	case 210:
		return DisconnectReason{Kind: DisconnectNewConnection}, nil
	default:
		return DisconnectReason{Kind: DisconnectUnknown}, nil
	}
}
