package wire

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
)

// Languages is a bitset of game languages accepted when filtering the
// matchmaker or describing a game's configured language.
type Languages uint32

const (
	LanguageAll        Languages = 0x0
	LanguageOther      Languages = 0x1
	LanguageSpanish    Languages = 0x2
	LanguageKorean     Languages = 0x4
	LanguageRussian    Languages = 0x8
	LanguagePortuguese Languages = 0x10
	LanguageArabic     Languages = 0x20
	LanguageFilipino   Languages = 0x40
	LanguagePolish     Languages = 0x80
	LanguageEnglish    Languages = 0x100
)

// Maps is a bitset of map selections.
type Maps uint8

const (
	MapSkeld  Maps = 0x0
	MapPorus  Maps = 0x1
	MapMiraHQ Maps = 0x2
)

// GameOptions is the 18-field game configuration used both as a matchmaker
// filter (RequestGameList) and as the lobby's public settings blob. Field
// order is load-bearing: it is written and read positionally, with no tags.
type GameOptions struct {
	GameSettingsVersion  uint8
	MaxPlayers           uint8
	Language             Languages
	MapID                uint8
	PlayerSpeed          float32
	CrewLight            float32
	ImposterLight        float32
	KillCooldown         float32
	NumCommonTasks       uint8
	NumLongTasks         uint8
	NumShortTasks        uint8
	NumEmergencyMeetings int32
	NumImposters         int8
	KillDistance         int8
	DiscussionTime       int32
	VotingTime           int32
	IsDefaults           uint8
	EmergencyCooldown    uint8
}

// DefaultGameOptions matches the original client's stock lobby defaults.
func DefaultGameOptions() GameOptions {
	return GameOptions{
		GameSettingsVersion:  2,
		MaxPlayers:           10,
		Language:             LanguageEnglish,
		MapID:                0,
		PlayerSpeed:          1,
		CrewLight:            1,
		ImposterLight:        1.5,
		KillCooldown:         15,
		NumCommonTasks:       1,
		NumShortTasks:        1,
		NumLongTasks:         2,
		NumEmergencyMeetings: 1,
		NumImposters:         0, // any
		KillDistance:         1,
		DiscussionTime:       15,
		VotingTime:           120,
		IsDefaults:           1,
		EmergencyCooldown:    15,
	}
}

// WriteGameOptions writes every field in wire order. Note that Language is
// a raw u32, not varint-encoded, despite most other numeric ids in the
// protocol being varints.
func WriteGameOptions(w *codec.Writer, o GameOptions) {
	w.WriteByte(o.GameSettingsVersion)
	w.WriteByte(o.MaxPlayers)
	w.WriteUint32LE(uint32(o.Language))
	w.WriteByte(o.MapID)
	w.WriteFloat32LE(o.PlayerSpeed)
	w.WriteFloat32LE(o.CrewLight)
	w.WriteFloat32LE(o.ImposterLight)
	w.WriteFloat32LE(o.KillCooldown)
	w.WriteByte(o.NumCommonTasks)
	w.WriteByte(o.NumLongTasks)
	w.WriteByte(o.NumShortTasks)
	w.WriteInt32LE(o.NumEmergencyMeetings)
	w.WriteByte(uint8(o.NumImposters))
	w.WriteByte(uint8(o.KillDistance))
	w.WriteInt32LE(o.DiscussionTime)
	w.WriteInt32LE(o.VotingTime)
	w.WriteByte(o.IsDefaults)
	w.WriteByte(o.EmergencyCooldown)
}

// ReadGameOptions reads a GameOptions in wire order.
func ReadGameOptions(r *codec.Reader) (GameOptions, error) {
	var o GameOptions
	var err error
	readByte := func() uint8 {
		if err != nil {
			return 0
		}
		var b byte
		b, err = r.ReadByte()
		return b
	}
	readF32 := func() float32 {
		if err != nil {
			return 0
		}
		var v float32
		v, err = r.ReadFloat32LE()
		return v
	}
	readI32 := func() int32 {
		if err != nil {
			return 0
		}
		var v int32
		v, err = r.ReadInt32LE()
		return v
	}

	o.GameSettingsVersion = readByte()
	o.MaxPlayers = readByte()
	if err == nil {
		var lang uint32
		lang, err = r.ReadUint32LE()
		o.Language = Languages(lang)
	}
	o.MapID = readByte()
	o.PlayerSpeed = readF32()
	o.CrewLight = readF32()
	o.ImposterLight = readF32()
	o.KillCooldown = readF32()
	o.NumCommonTasks = readByte()
	o.NumLongTasks = readByte()
	o.NumShortTasks = readByte()
	o.NumEmergencyMeetings = readI32()
	o.NumImposters = int8(readByte())
	o.KillDistance = int8(readByte())
	o.DiscussionTime = readI32()
	o.VotingTime = readI32()
	o.IsDefaults = readByte()
	o.EmergencyCooldown = readByte()

	if err != nil {
		return GameOptions{}, fmt.Errorf("wire: read game options: %w", err)
	}
	return o, nil
}
