// Package matchmaker drives the public-game scan loop: it sends a Hello
// handshake, then paces RequestGameList frames against a target listing
// cache size and delivers accumulated results to a caller callback on a
// fixed cadence, independent of pkg/session's join/replication loop.
package matchmaker

import (
	"context"
	"fmt"
	"math"
	"net"
	"time"

	"github.com/rs/xid"
	"golang.org/x/time/rate"

	"github.com/duskport/hazelclient/pkg/codec"
	"github.com/duskport/hazelclient/pkg/logging"
	"github.com/duskport/hazelclient/pkg/metrics"
	"github.com/duskport/hazelclient/pkg/transport"
	"github.com/duskport/hazelclient/pkg/wire"
)

const (
	listingsPerReply = 10
	deliveryCadence  = 200 * time.Millisecond
)

// Settings configures one matchmaker scan run.
type Settings struct {
	Username string
	Version  uint32

	// Filter is sent with every RequestGameList call.
	Filter wire.GameOptions

	// MaxRequests bounds the total number of RequestGameList frames this
	// scan will ever issue, matching spec.md §4.F's "max_requests -
	// already_sent" formula literally (a lifetime budget, not a
	// concurrently-in-flight cap, despite the informal "in-flight" name
	// the spec's Inputs list uses for it).
	MaxRequests int

	// TargetCacheSize is the listing count the missing-count formula tries
	// to keep buffered (pending*10 + buffered) at.
	TargetCacheSize int

	// RequestRate optionally paces issuance below "as fast as the
	// missing-count formula allows"; rate.Inf (the zero value behavior)
	// disables this extra throttle.
	RequestRate rate.Limit
}

// DefaultSettings mirrors the stock client's scan tuning.
func DefaultSettings(username string) Settings {
	return Settings{
		Username:        username,
		Version:         wire.ProtocolVersion,
		Filter:          wire.DefaultGameOptions(),
		MaxRequests:     5,
		TargetCacheSize: 200,
		RequestRate:     rate.Inf,
	}
}

// Callback receives each batch of newly buffered listings at the ~200ms
// delivery cadence. Returning true stops the scan.
type Callback func(listings []wire.GameListing) (stop bool)

// Scan drives one request/response loop against a single region server.
type Scan struct {
	settings Settings
	t        *transport.Transport
	log      *logging.Logger
	id       xid.ID
	limiter  *rate.Limiter

	helloAcked   bool
	pending      int
	requestsSent int
	buffered     []wire.GameListing
}

// New dials addr and prepares a Scan. Call Run to drive the handshake and
// request loop; it blocks until the callback stops it, ctx is canceled, or
// the transport closes.
func New(addr *net.UDPAddr, settings Settings) (*Scan, error) {
	t, err := transport.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("matchmaker: new: %w", err)
	}

	lim := settings.RequestRate
	if lim == 0 {
		lim = rate.Inf
	}
	id := xid.New()

	return &Scan{
		settings: settings,
		t:        t,
		log:      logging.For("matchmaker").WithField("scan_id", id.String()),
		id:       id,
		limiter:  rate.NewLimiter(lim, max(1, settings.MaxRequests)),
	}, nil
}

// ID returns the scan's short correlation id, distinct from a session's
// uuid — a scan is not a session — so overlapping concurrent scans (the
// CLI's scan command re-run against multiple regions) are distinguishable
// in logs and metrics.
func (s *Scan) ID() xid.ID { return s.id }

// Close tears down the scan's transport.
func (s *Scan) Close() error { return s.t.Close() }

func (s *Scan) sendHello() (uint16, error) {
	w := codec.NewWriter()
	wire.WriteHelloPayload(w, wire.HelloPayload{Version: s.settings.Version, Username: s.settings.Username})
	body, err := w.Finish()
	if err != nil {
		return 0, fmt.Errorf("matchmaker: send hello: %w", err)
	}
	ackID, err := s.t.SendHello(body)
	if err != nil {
		return 0, fmt.Errorf("matchmaker: send hello: %w", err)
	}
	return ackID, nil
}

// Run drives the scan loop. See the package doc and spec.md §4.F for the
// request-pacing policy.
func (s *Scan) Run(ctx context.Context, cb Callback) error {
	ackID, err := s.sendHello()
	if err != nil {
		return err
	}
	helloAck := s.t.Acked(ackID)

	ticker := time.NewTicker(deliveryCadence)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-helloAck:
			helloAck = nil // one-shot; disable this case once it fires
			s.helloAcked = true
			s.log.Debug("hello answered, beginning matchmaker scan requests")
			s.issueRequests()

		case frame, ok := <-s.t.Receive():
			if !ok {
				return fmt.Errorf("matchmaker: transport closed")
			}
			if frame.Type == transport.FrameDisconnect {
				return fmt.Errorf("matchmaker: server disconnected scan")
			}
			if err := s.handleFrame(frame); err != nil {
				s.log.WithError(err).Debug("dropping malformed scan reply")
				continue
			}
			if !s.helloAcked {
				// A reply necessarily implies the hello got through even if
				// the Acked() signal hasn't fired yet (e.g. a duplicate ack
				// lost a race); treat it the same way.
				s.helloAcked = true
			}
			s.issueRequests()

		case <-ticker.C:
			if len(s.buffered) == 0 {
				continue
			}
			batch := s.buffered
			s.buffered = nil
			metrics.MatchmakerListingsBuffered.Set(0)
			if cb(batch) {
				return nil
			}
		}
	}
}

func (s *Scan) handleFrame(frame transport.Frame) error {
	r := codec.NewReader(frame.Data)
	for r.Remaining() > 0 {
		pkt, err := wire.DecodePacket(r)
		if err != nil {
			return err
		}
		switch p := pkt.(type) {
		case wire.GameListPacket:
			if s.pending > 0 {
				s.pending--
			}
			s.buffered = append(s.buffered, p.Games...)
			metrics.MatchmakerListingsBuffered.Set(float64(len(s.buffered)))
			metrics.MatchmakerRequestsInFlight.Set(float64(s.pending))
		case wire.ServerListPacket:
			// Region list replies are not this loop's concern; pkg/session
			// surfaces these via Handler.OnServerInfo instead.
		default:
			// anything else arriving on a scan connection is unexpected but
			// harmless to ignore
		}
	}
	return nil
}

// issueRequests applies the missing-count formula from spec.md §4.F:
// missing = target - (pending*10 + buffered); issue ceil(missing/10) new
// requests, bounded above by MaxRequests - requestsSent.
func (s *Scan) issueRequests() {
	if !s.helloAcked {
		return
	}

	missing := s.settings.TargetCacheSize - (s.pending*listingsPerReply + len(s.buffered))
	if missing <= 0 {
		return
	}
	want := int(math.Ceil(float64(missing) / float64(listingsPerReply)))

	budget := s.settings.MaxRequests - s.requestsSent
	if budget <= 0 {
		return
	}
	if want > budget {
		want = budget
	}

	for i := 0; i < want; i++ {
		if !s.limiter.Allow() {
			break
		}
		if err := s.sendRequestGameList(); err != nil {
			s.log.WithError(err).Warn("request_game_list send failed")
			break
		}
		s.pending++
		s.requestsSent++
	}
	metrics.MatchmakerRequestsInFlight.Set(float64(s.pending))
}

func (s *Scan) sendRequestGameList() error {
	w := codec.NewWriter()
	wire.EncodeRequestGameList(w, s.settings.Filter)
	body, err := w.Finish()
	if err != nil {
		return err
	}
	_, err = s.t.SendReliable(body)
	return err
}
