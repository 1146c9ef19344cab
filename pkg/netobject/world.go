package netobject

import "github.com/duskport/hazelclient/pkg/codec"

// Bit positions within the UpdateData bitmask selecting which World
// subsystems follow in the payload.
const (
	worldBitReactor  = 1 << 3
	worldBitSwitch   = 1 << 7
	worldBitLifeSupp = 1 << 8
	worldBitMedScan  = 1 << 0xa
	worldBitCamera   = 1 << 0xb
	worldBitComms    = 1 << 0xe
	worldBitDoors    = 1 << 0x10
	worldBitSabotage = 1 << 0x11
)

const doorCount = 13

// ConsolePair is one (user id, console id) pairing tracked by the
// reactor subsystem.
type ConsolePair struct {
	UserID    uint8
	ConsoleID uint8
}

// World replicates the ship/map state: reactor, switches, life support,
// med scan, security camera, comms, doors, and sabotage timer. Also
// known as ShipStatus in the original protocol.
type World struct {
	netID   uint32
	ownerID int32

	ReactorCountdown float32
	UserConsolePairs []ConsolePair

	ExpectedSwitches uint8
	ActualSwitches   uint8
	ElecValue        uint8

	LifeSuppCountdown float32
	CompletedConsoles []uint32

	MedUserList []int8

	CameraInUse bool

	CommsActive bool

	DoorOpen [doorCount]bool

	SabotageTimer float32
}

// NewWorld builds a World from a CreateFromPrefab child's initializer
// bytes, which lay out every subsystem unconditionally and in order.
func NewWorld(netID uint32, ownerID int32, r *codec.Reader) (*World, error) {
	w := &World{netID: netID, ownerID: ownerID}
	var err error

	if w.ReactorCountdown, err = r.ReadFloat32LE(); err != nil {
		return nil, err
	}
	if w.UserConsolePairs, err = readConsolePairs(r); err != nil {
		return nil, err
	}

	if w.ExpectedSwitches, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if w.ActualSwitches, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if w.ElecValue, err = r.ReadByte(); err != nil {
		return nil, err
	}

	if w.LifeSuppCountdown, err = r.ReadFloat32LE(); err != nil {
		return nil, err
	}
	if w.CompletedConsoles, err = readVarUint32List(r); err != nil {
		return nil, err
	}

	if w.MedUserList, err = readInt8List(r); err != nil {
		return nil, err
	}

	if w.CameraInUse, err = r.ReadBool(); err != nil {
		return nil, err
	}

	if w.CommsActive, err = r.ReadBool(); err != nil {
		return nil, err
	}

	for i := 0; i < doorCount; i++ {
		if w.DoorOpen[i], err = r.ReadBool(); err != nil {
			return nil, err
		}
	}

	if w.SabotageTimer, err = r.ReadFloat32LE(); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *World) NetID() uint32  { return w.netID }
func (w *World) OwnerID() int32 { return w.ownerID }
func (w *World) Kind() Kind     { return KindWorld }

func readConsolePairs(r *codec.Reader) ([]ConsolePair, error) {
	count, err := r.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	pairs := make([]ConsolePair, 0, count)
	for i := uint32(0); i < count; i++ {
		userID, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		consoleID, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ConsolePair{UserID: userID, ConsoleID: consoleID})
	}
	return pairs, nil
}

func readVarUint32List(r *codec.Reader) ([]uint32, error) {
	count, err := r.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := r.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readInt8List(r *codec.Reader) ([]int8, error) {
	count, err := r.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	out := make([]int8, 0, count)
	for i := uint32(0); i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		out = append(out, int8(b))
	}
	return out, nil
}

// UpdateData applies a partial update: a leading varint bitmask selects
// which subsystems follow, in ascending bit order.
func (w *World) UpdateData(r *codec.Reader) error {
	mask, err := r.ReadVarUint32()
	if err != nil {
		return err
	}

	if mask&worldBitReactor != 0 {
		if w.ReactorCountdown, err = r.ReadFloat32LE(); err != nil {
			return err
		}
		if w.UserConsolePairs, err = readConsolePairs(r); err != nil {
			return err
		}
	}

	if mask&worldBitSwitch != 0 {
		if w.ExpectedSwitches, err = r.ReadByte(); err != nil {
			return err
		}
		if w.ActualSwitches, err = r.ReadByte(); err != nil {
			return err
		}
		if w.ElecValue, err = r.ReadByte(); err != nil {
			return err
		}
	}

	if mask&worldBitLifeSupp != 0 {
		if w.LifeSuppCountdown, err = r.ReadFloat32LE(); err != nil {
			return err
		}
		if w.CompletedConsoles, err = readVarUint32List(r); err != nil {
			return err
		}
	}

	if mask&worldBitMedScan != 0 {
		if w.MedUserList, err = readInt8List(r); err != nil {
			return err
		}
	}

	if mask&worldBitCamera != 0 {
		if w.CameraInUse, err = r.ReadBool(); err != nil {
			return err
		}
	}

	if mask&worldBitComms != 0 {
		if w.CommsActive, err = r.ReadBool(); err != nil {
			return err
		}
	}

	if mask&worldBitDoors != 0 {
		doorFlags, err := r.ReadVarUint32()
		if err != nil {
			return err
		}
		for i := 0; i < doorCount; i++ {
			if doorFlags&(1<<uint(i)) != 0 {
				if w.DoorOpen[i], err = r.ReadBool(); err != nil {
					return err
				}
			}
		}
	}

	if mask&worldBitSabotage != 0 {
		if w.SabotageTimer, err = r.ReadFloat32LE(); err != nil {
			return err
		}
	}

	return nil
}

// HandleRPC handles the two World RPCs this client observes passively
// (door close, system repair) with no local state change.
func (w *World) HandleRPC(callID uint8, r *codec.Reader) (Outcome, error) {
	switch callID {
	case 0: // close door
		if _, err := r.ReadByte(); err != nil { // room type
			return nil, err
		}
		return NoOutcome{}, nil

	case 1: // repair system
		if _, err := r.ReadByte(); err != nil { // system type
			return nil, err
		}
		if _, err := r.ReadVarUint32(); err != nil { // player net id
			return nil, err
		}
		if _, err := r.ReadByte(); err != nil { // amount
			return nil, err
		}
		return NoOutcome{}, nil

	default:
		return UnhandledRPCOutcome{CallID: callID, Payload: r.RemainingBytes()}, nil
	}
}
