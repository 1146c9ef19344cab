package wire

import (
	"fmt"
	"net"

	"github.com/duskport/hazelclient/pkg/codec"
)

// Address is an IPv4 endpoint: 4 raw bytes plus a little-endian port. This
// port is unrelated to the transport's big-endian ack id field.
type Address struct {
	IP   [4]byte
	Port uint16
}

// UDPAddr converts to a net.UDPAddr suitable for dialing.
func (a Address) UDPAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4(a.IP[0], a.IP[1], a.IP[2], a.IP[3]), Port: int(a.Port)}
}

func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", a.IP[0], a.IP[1], a.IP[2], a.IP[3], a.Port)
}

// WriteAddress writes the 4 raw IP bytes followed by a little-endian port.
func WriteAddress(w *codec.Writer, a Address) {
	w.WriteBytes(a.IP[:])
	w.WriteUint16LE(a.Port)
}

// ReadAddress reads an Address.
func ReadAddress(r *codec.Reader) (Address, error) {
	raw, err := r.ReadBytes(4)
	if err != nil {
		return Address{}, err
	}
	var a Address
	copy(a.IP[:], raw)
	a.Port, err = r.ReadUint16LE()
	if err != nil {
		return Address{}, err
	}
	return a, nil
}
