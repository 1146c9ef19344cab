package wire

import "github.com/duskport/hazelclient/pkg/codec"

// ServerInfo describes a region server returned by a ServerList response.
type ServerInfo struct {
	Name               string
	IP                 [4]byte
	Port               uint16
	ConnectionFailures uint32
}

// ReadServerInfo reads a ServerInfo.
func ReadServerInfo(r *codec.Reader) (ServerInfo, error) {
	var s ServerInfo
	var err error
	if s.Name, err = r.ReadString(); err != nil {
		return ServerInfo{}, err
	}
	raw, err := r.ReadBytes(4)
	if err != nil {
		return ServerInfo{}, err
	}
	copy(s.IP[:], raw)
	if s.Port, err = r.ReadUint16LE(); err != nil {
		return ServerInfo{}, err
	}
	if s.ConnectionFailures, err = r.ReadVarUint32(); err != nil {
		return ServerInfo{}, err
	}
	return s, nil
}

// WriteServerInfo writes a ServerInfo.
func WriteServerInfo(w *codec.Writer, s ServerInfo) {
	w.WriteString(s.Name)
	w.WriteBytes(s.IP[:])
	w.WriteUint16LE(s.Port)
	w.WriteVarUint32(s.ConnectionFailures)
}
