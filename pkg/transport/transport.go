// Package transport implements the reliable-UDP layer underneath the wire
// protocol: framing, ack-id assignment, retransmission of unacknowledged
// reliable frames, and receive-side acknowledgement.
package transport

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/duskport/hazelclient/pkg/logging"
	"github.com/duskport/hazelclient/pkg/metrics"
	"github.com/duskport/hazelclient/pkg/transport/sockopts"
)

const (
	maxDatagramSize = 65507
	resendInterval  = 50 * time.Millisecond
	unconfirmedAge  = 1000 * time.Millisecond
	defaultRcvBuf   = 1 << 20
	defaultSndBuf   = 1 << 20
)

type pendingFrame struct {
	sentAt time.Time
	raw    []byte
}

// Transport owns one UDP socket implementing the frame-level reliability
// discipline. Callers read delivered frames from Receive() and send via
// SendUnreliable/SendReliable/SendHello; Acknowledge and KeepAlive handling
// is internal.
type Transport struct {
	conn *net.UDPConn
	log  *logging.Logger

	ackCounter uint32

	mu          sync.RWMutex
	unconfirmed map[uint16]pendingFrame
	ackWaiters  map[uint16]chan struct{}

	incoming  chan Frame
	outgoing  chan Frame
	done      chan struct{}
	closeOnce sync.Once
}

// Dial opens a UDP socket to addr and starts the send/receive workers.
func Dial(addr *net.UDPAddr) (*Transport, error) {
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, wrapErr("dial", err)
	}

	log := logging.For("transport").WithField("remote_addr", addr.String())

	if err := sockopts.TuneBuffers(conn, defaultRcvBuf, defaultSndBuf); err != nil {
		log.WithError(err).Debug("could not raise socket buffer sizes, using OS defaults")
	}

	t := &Transport{
		conn:        conn,
		log:         log,
		unconfirmed: make(map[uint16]pendingFrame),
		ackWaiters:  make(map[uint16]chan struct{}),
		incoming:    make(chan Frame, 64),
		outgoing:    make(chan Frame, 64),
		done:        make(chan struct{}),
	}

	go t.sendLoop()
	go t.recvLoop()
	return t, nil
}

// Receive returns the channel of frames delivered to the application layer
// (Unreliable, Reliable, Hello payloads, and Disconnect notifications).
// Acknowledge and self-handled KeepAlive frames never appear here.
func (t *Transport) Receive() <-chan Frame {
	return t.incoming
}

// SendUnreliable enqueues data with no retransmission guarantee.
func (t *Transport) SendUnreliable(data []byte) error {
	return t.enqueue(Frame{Type: FrameUnreliable, Data: data})
}

// SendReliable enqueues data for retransmission until acknowledged and
// returns the ack id assigned to it.
func (t *Transport) SendReliable(data []byte) (uint16, error) {
	ackID := t.nextAckID()
	return ackID, t.enqueue(Frame{Type: FrameReliable, AckID: ackID, Data: data})
}

// SendHello enqueues the initial handshake payload, retransmitted exactly
// like a Reliable frame until acknowledged.
func (t *Transport) SendHello(data []byte) (uint16, error) {
	ackID := t.nextAckID()
	return ackID, t.enqueue(Frame{Type: FrameHello, AckID: ackID, Data: data})
}

// Close sends a best-effort Disconnect frame and tears down the socket and
// workers. Safe to call more than once.
func (t *Transport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		t.conn.Write(EncodeFrame(Frame{Type: FrameDisconnect}))
		err = t.conn.Close()
	})
	return err
}

func (t *Transport) nextAckID() uint16 {
	return uint16(atomic.AddUint32(&t.ackCounter, 1))
}

func (t *Transport) enqueue(f Frame) error {
	select {
	case t.outgoing <- f:
		return nil
	case <-t.done:
		return wrapErr("send", net.ErrClosed)
	}
}

func (t *Transport) sendLoop() {
	ticker := time.NewTicker(resendInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return

		case f := <-t.outgoing:
			raw := EncodeFrame(f)
			if _, err := t.conn.Write(raw); err != nil {
				t.log.WithError(err).WithField("frame", f.Type.String()).Warn("frame write failed")
				continue
			}
			metrics.FramesSent.WithLabelValues(f.Type.String()).Inc()

			switch f.Type {
			case FrameReliable, FrameHello, FrameKeepAlive:
				t.mu.Lock()
				t.unconfirmed[f.AckID] = pendingFrame{sentAt: time.Now(), raw: raw}
				metrics.UnconfirmedCount.Set(float64(len(t.unconfirmed)))
				t.mu.Unlock()
			}

		case <-ticker.C:
			t.resendStale()
		}
	}
}

func (t *Transport) resendStale() {
	now := time.Now()
	var toResend [][]byte

	t.mu.Lock()
	for ackID, pf := range t.unconfirmed {
		if now.Sub(pf.sentAt) >= unconfirmedAge {
			pf.sentAt = now
			t.unconfirmed[ackID] = pf
			toResend = append(toResend, pf.raw)
		}
	}
	metrics.UnconfirmedCount.Set(float64(len(t.unconfirmed)))
	t.mu.Unlock()

	for _, raw := range toResend {
		if _, err := t.conn.Write(raw); err != nil {
			t.log.WithError(err).Warn("retransmit failed")
			continue
		}
		metrics.FramesRetransmitted.Inc()
	}
}

func (t *Transport) recvLoop() {
	buf := make([]byte, maxDatagramSize)
	for {
		n, err := t.conn.Read(buf)
		if err != nil {
			select {
			case <-t.done:
				return
			default:
			}
			t.log.WithError(err).Warn("socket read failed, closing transport")
			close(t.incoming)
			return
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])

		frame, err := DecodeFrame(payload)
		if err != nil {
			t.log.WithError(err).Debug("dropping malformed datagram")
			continue
		}
		metrics.FramesReceived.WithLabelValues(frame.Type.String()).Inc()

		switch frame.Type {
		case FrameReliable, FrameHello:
			t.sendAck(frame.AckID)
			t.deliver(frame)
		case FrameKeepAlive:
			t.sendAck(frame.AckID)
		case FrameAcknowledge:
			t.confirmAck(frame.AckID)
		case FrameUnreliable, FrameDisconnect:
			t.deliver(frame)
		}
	}
}

func (t *Transport) sendAck(ackID uint16) {
	select {
	case t.outgoing <- Frame{Type: FrameAcknowledge, AckID: ackID}:
	case <-t.done:
	}
}

func (t *Transport) confirmAck(ackID uint16) {
	t.mu.Lock()
	if pf, ok := t.unconfirmed[ackID]; ok {
		metrics.AckRoundTrip.Observe(time.Since(pf.sentAt).Seconds())
		delete(t.unconfirmed, ackID)
	}
	metrics.UnconfirmedCount.Set(float64(len(t.unconfirmed)))
	if waiter, ok := t.ackWaiters[ackID]; ok {
		close(waiter)
		delete(t.ackWaiters, ackID)
	}
	t.mu.Unlock()
}

// Acked returns a channel closed once ackID is confirmed by the peer. Used
// by callers (the matchmaker scan loop) that need to know their Hello was
// acknowledged before they start issuing follow-up requests, since
// Acknowledge frames themselves are handled internally and never appear on
// Receive(). Register interest immediately after the corresponding Send*
// call returns its ack id; confirmAck closes the channel whenever it
// eventually arrives.
func (t *Transport) Acked(ackID uint16) <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ch, ok := t.ackWaiters[ackID]; ok {
		return ch
	}
	ch := make(chan struct{})
	t.ackWaiters[ackID] = ch
	return ch
}

func (t *Transport) deliver(f Frame) {
	select {
	case t.incoming <- f:
	case <-t.done:
	}
}
