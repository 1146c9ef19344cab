//go:build !(linux || darwin)

package sockopts

import "net"

// TuneBuffers is a no-op on platforms without golang.org/x/sys/unix socket
// option support; the transport falls back to OS default buffer sizes.
func TuneBuffers(conn *net.UDPConn, rcvBuf, sndBuf int) error {
	return nil
}
