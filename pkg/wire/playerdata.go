package wire

import "github.com/duskport/hazelclient/pkg/codec"

// TaskInfo is one task assignment for a player.
type TaskInfo struct {
	ID       uint32
	Complete bool
}

// ReadTaskInfo reads a TaskInfo.
func ReadTaskInfo(r *codec.Reader) (TaskInfo, error) {
	var t TaskInfo
	var err error
	if t.ID, err = r.ReadVarUint32(); err != nil {
		return TaskInfo{}, err
	}
	if t.Complete, err = r.ReadBool(); err != nil {
		return TaskInfo{}, err
	}
	return t, nil
}

// WriteTaskInfo writes a TaskInfo.
func WriteTaskInfo(w *codec.Writer, t TaskInfo) {
	w.WriteVarUint32(t.ID)
	w.WriteBool(t.Complete)
}

const (
	playerFlagDisconnected = 1 << 0
	playerFlagImposter     = 1 << 1
	playerFlagDead         = 1 << 2
)

// PlayerData is the replicated record GameData keeps per player_id.
// Dirty is local bookkeeping only; it is never read from or written to
// the wire.
type PlayerData struct {
	Name         string
	Color        uint8
	HatID        uint32
	SkinID       uint32
	PetID        uint32
	Disconnected bool
	IsImposter   bool
	IsDead       bool
	Tasks        []TaskInfo
	Dirty        bool
}

// ReadPlayerData reads a PlayerData.
func ReadPlayerData(r *codec.Reader) (PlayerData, error) {
	var p PlayerData
	var err error
	if p.Name, err = r.ReadString(); err != nil {
		return PlayerData{}, err
	}
	if p.Color, err = r.ReadByte(); err != nil {
		return PlayerData{}, err
	}
	if p.HatID, err = r.ReadVarUint32(); err != nil {
		return PlayerData{}, err
	}
	if p.SkinID, err = r.ReadVarUint32(); err != nil {
		return PlayerData{}, err
	}
	if p.PetID, err = r.ReadVarUint32(); err != nil {
		return PlayerData{}, err
	}
	flags, err := r.ReadByte()
	if err != nil {
		return PlayerData{}, err
	}
	p.Disconnected = flags&playerFlagDisconnected != 0
	p.IsImposter = flags&playerFlagImposter != 0
	p.IsDead = flags&playerFlagDead != 0

	count, err := r.ReadByte()
	if err != nil {
		return PlayerData{}, err
	}
	p.Tasks = make([]TaskInfo, 0, count)
	for i := 0; i < int(count); i++ {
		t, err := ReadTaskInfo(r)
		if err != nil {
			return PlayerData{}, err
		}
		p.Tasks = append(p.Tasks, t)
	}
	return p, nil
}

// WritePlayerData writes a PlayerData. Dirty is never serialized.
func WritePlayerData(w *codec.Writer, p PlayerData) {
	w.WriteString(p.Name)
	w.WriteByte(p.Color)
	w.WriteVarUint32(p.HatID)
	w.WriteVarUint32(p.SkinID)
	w.WriteVarUint32(p.PetID)

	var flags uint8
	if p.Disconnected {
		flags |= playerFlagDisconnected
	}
	if p.IsImposter {
		flags |= playerFlagImposter
	}
	if p.IsDead {
		flags |= playerFlagDead
	}
	w.WriteByte(flags)

	w.WriteByte(uint8(len(p.Tasks)))
	for _, t := range p.Tasks {
		WriteTaskInfo(w, t)
	}
}
