package wire

import (
	"fmt"

	"github.com/duskport/hazelclient/pkg/codec"
)

// GameListing is one public game returned by a GameList response.
type GameListing struct {
	Address      Address
	ID           GameId
	HostUsername string
	PlayerCount  uint8
	AgeSeconds   uint32
	MapID        Maps
	NumImposters uint8
	MaxPlayers   uint8
}

// ReadGameListing reads a GameListing. AgeSeconds is varint-encoded in the
// original, despite the spec's prose not calling that out explicitly.
func ReadGameListing(r *codec.Reader) (GameListing, error) {
	var l GameListing
	var err error
	if l.Address, err = ReadAddress(r); err != nil {
		return GameListing{}, err
	}
	if l.ID, err = ReadGameId(r); err != nil {
		return GameListing{}, err
	}
	if l.HostUsername, err = r.ReadString(); err != nil {
		return GameListing{}, err
	}
	if l.PlayerCount, err = r.ReadByte(); err != nil {
		return GameListing{}, err
	}
	if l.AgeSeconds, err = r.ReadVarUint32(); err != nil {
		return GameListing{}, err
	}
	mapBits, err := r.ReadByte()
	if err != nil {
		return GameListing{}, err
	}
	if mapBits&^0x3 != 0 {
		return GameListing{}, fmt.Errorf("wire: invalid map bits %#x", mapBits)
	}
	l.MapID = Maps(mapBits)
	if l.NumImposters, err = r.ReadByte(); err != nil {
		return GameListing{}, err
	}
	if l.MaxPlayers, err = r.ReadByte(); err != nil {
		return GameListing{}, err
	}
	return l, nil
}

// WriteGameListing writes a GameListing in wire order.
func WriteGameListing(w *codec.Writer, l GameListing) {
	WriteAddress(w, l.Address)
	WriteGameId(w, l.ID)
	w.WriteString(l.HostUsername)
	w.WriteByte(l.PlayerCount)
	w.WriteVarUint32(l.AgeSeconds)
	w.WriteByte(uint8(l.MapID))
	w.WriteByte(l.NumImposters)
	w.WriteByte(l.MaxPlayers)
}
