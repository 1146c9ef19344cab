package wire

import (
	"fmt"
	"strings"

	"github.com/duskport/hazelclient/pkg/codec"
)

// gameCodeAlphabet is the ordered 26-letter alphabet used to pack 6-char
// game codes into a signed 32-bit integer.
const gameCodeAlphabet = "QWXRTYLPESDFGHUJKZOCVBINMA"

// GameId is either a 4-character code (non-negative, one ASCII byte per
// character) or a 6-character code (negative, bits packed against
// gameCodeAlphabet).
type GameId struct {
	ID int32
}

// FromChars parses a 4- or 6-character game code into its packed form.
func FromChars(code string) (GameId, error) {
	switch len(code) {
	case 4:
		b := []byte(strings.ToUpper(code))
		v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return GameId{ID: int32(v)}, nil
	case 6:
		idx := make([]int32, 6)
		code = strings.ToUpper(code)
		for i, c := range code {
			pos := strings.IndexRune(gameCodeAlphabet, c)
			if pos < 0 {
				return GameId{}, fmt.Errorf("wire: invalid game code character %q", c)
			}
			idx[i] = int32(pos)
		}
		lower := idx[1]*26 + idx[0]
		upper := ((idx[5]*26+idx[4])*26+idx[3])*26 + idx[2]
		v := lower | (upper << 10) | int32(-0x80000000)
		return GameId{ID: v}, nil
	default:
		return GameId{}, fmt.Errorf("wire: game code must be 4 or 6 characters, got %d", len(code))
	}
}

// String decodes the packed id back into its 4- or 6-character textual
// form, choosing the branch by sign: negative values are 6-character
// codes, non-negative values are 4-character codes.
func (g GameId) String() string {
	if g.ID >= 0 {
		v := uint32(g.ID)
		b := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
		return string(b)
	}

	v := uint32(g.ID) &^ 0x80000000
	lower := v & 0x3FF
	upper := v >> 10

	i0 := lower % 26
	i1 := lower / 26
	i2 := upper % 26
	upper /= 26
	i3 := upper % 26
	upper /= 26
	i4 := upper % 26
	upper /= 26
	i5 := upper % 26

	letters := []byte{
		gameCodeAlphabet[i0], gameCodeAlphabet[i1], gameCodeAlphabet[i2],
		gameCodeAlphabet[i3], gameCodeAlphabet[i4], gameCodeAlphabet[i5],
	}
	return string(letters)
}

// WriteGameId writes the packed id as a little-endian i32.
func WriteGameId(w *codec.Writer, g GameId) {
	w.WriteInt32LE(g.ID)
}

// ReadGameId reads a packed id as a little-endian i32.
func ReadGameId(r *codec.Reader) (GameId, error) {
	v, err := r.ReadInt32LE()
	if err != nil {
		return GameId{}, err
	}
	return GameId{ID: v}, nil
}
