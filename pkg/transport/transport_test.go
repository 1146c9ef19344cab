package transport

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	cases := []Frame{
		{Type: FrameUnreliable, Data: []byte{1, 2, 3}},
		{Type: FrameReliable, AckID: 7, Data: []byte{9, 9}},
		{Type: FrameHello, AckID: 1, Data: []byte("hello")},
		{Type: FrameDisconnect},
		{Type: FrameAcknowledge, AckID: 42},
		{Type: FrameKeepAlive, AckID: 5},
	}
	for _, want := range cases {
		buf := EncodeFrame(want)
		got, err := DecodeFrame(buf)
		if err != nil {
			t.Fatalf("DecodeFrame(%v) error: %v", want, err)
		}
		sameData := bytes.Equal(got.Data, want.Data) || (len(got.Data) == 0 && len(want.Data) == 0)
		if got.Type != want.Type || got.AckID != want.AckID || !sameData {
			t.Errorf("roundtrip %v -> %v", want, got)
		}
	}
}

func TestEncodeFrameAckIDIsBigEndian(t *testing.T) {
	buf := EncodeFrame(Frame{Type: FrameReliable, AckID: 0x0102, Data: nil})
	if buf[1] != 0x01 || buf[2] != 0x02 {
		t.Errorf("ack id bytes = %#v, want big-endian [0x01, 0x02]", buf[1:3])
	}
}

func TestDecodeFrameUnknownTypeIsError(t *testing.T) {
	if _, err := DecodeFrame([]byte{0xFF}); err == nil {
		t.Error("expected error for unknown frame type")
	}
}

func newLoopbackPair(t *testing.T) (*Transport, *Transport) {
	t.Helper()
	serverConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	client, err := Dial(serverConn.LocalAddr().(*net.UDPAddr))
	if err != nil {
		serverConn.Close()
		t.Fatalf("dial: %v", err)
	}

	buf := make([]byte, 2048)
	n, clientAddr, err := serverConn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("server initial read: %v", err)
	}
	_ = n

	serverConn.Close()
	serverSide, err := net.DialUDP("udp", nil, clientAddr)
	if err != nil {
		t.Fatalf("server dial back: %v", err)
	}
	server := &Transport{
		conn:        serverSide,
		log:         client.log,
		unconfirmed: make(map[uint16]pendingFrame),
		incoming:    make(chan Frame, 64),
		outgoing:    make(chan Frame, 64),
		done:        make(chan struct{}),
	}
	go server.sendLoop()
	go server.recvLoop()

	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	return client, server
}

func TestReliableSendIsAcknowledgedAndDelivered(t *testing.T) {
	client, server := newLoopbackPair(t)

	if _, err := client.SendReliable([]byte("payload")); err != nil {
		t.Fatalf("SendReliable: %v", err)
	}

	select {
	case f := <-server.Receive():
		if f.Type != FrameReliable || string(f.Data) != "payload" {
			t.Errorf("server received %+v", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server to receive reliable frame")
	}

	deadline := time.After(2 * time.Second)
	for {
		client.mu.RLock()
		n := len(client.unconfirmed)
		client.mu.RUnlock()
		if n == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for ack to clear unconfirmed map")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestUnreliableSendIsNotTrackedForRetransmission(t *testing.T) {
	client, server := newLoopbackPair(t)

	if err := client.SendUnreliable([]byte("fire and forget")); err != nil {
		t.Fatalf("SendUnreliable: %v", err)
	}

	select {
	case f := <-server.Receive():
		if f.Type != FrameUnreliable {
			t.Errorf("got %+v, want Unreliable", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for unreliable frame")
	}

	client.mu.RLock()
	n := len(client.unconfirmed)
	client.mu.RUnlock()
	if n != 0 {
		t.Errorf("unconfirmed map has %d entries, want 0 for an unreliable send", n)
	}
}
