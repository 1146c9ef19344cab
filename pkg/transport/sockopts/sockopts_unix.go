//go:build linux || darwin

// Package sockopts raises a UDP socket's kernel send/receive buffers above
// the OS default. A matchmaker scan or a reconnect storm can burst far more
// datagrams than the default buffer holds, and a full buffer silently drops
// packets rather than blocking.
package sockopts

import (
	"net"

	"golang.org/x/sys/unix"
)

// TuneBuffers raises SO_RCVBUF and SO_SNDBUF on conn to at least the given
// sizes. It is best-effort: failures are returned but callers may choose to
// log and continue rather than fail socket setup over this.
func TuneBuffers(conn *net.UDPConn, rcvBuf, sndBuf int) error {
	rawConn, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var setErr error
	err = rawConn.Control(func(fd uintptr) {
		if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, rcvBuf); e != nil {
			setErr = e
			return
		}
		if e := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, sndBuf); e != nil {
			setErr = e
			return
		}
	})
	if err != nil {
		return err
	}
	if setErr != nil {
		return setErr
	}
	return nil
}
