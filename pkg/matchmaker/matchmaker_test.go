package matchmaker

import (
	"testing"

	"golang.org/x/time/rate"

	"github.com/duskport/hazelclient/pkg/codec"
	"github.com/duskport/hazelclient/pkg/transport"
	"github.com/duskport/hazelclient/pkg/wire"
)

func newTestScan(pending, buffered, target, maxRequests int) *Scan {
	s := &Scan{
		settings:   Settings{MaxRequests: maxRequests, TargetCacheSize: target},
		limiter:    rate.NewLimiter(rate.Inf, maxRequests),
		helloAcked: true,
		pending:    pending,
	}
	if buffered > 0 {
		s.buffered = make([]wire.GameListing, buffered)
	}
	return s
}

func TestIssueRequestsMissingCountFormula(t *testing.T) {
	cases := []struct {
		name             string
		pending          int
		buffered         int
		target           int
		maxRequests      int
		wantRequestsSent int
		wantPending      int
	}{
		{"empty cache requests ceil(target/10)", 0, 0, 100, 20, 10, 10},
		{"partially filled rounds up", 0, 6, 25, 10, 2, 2}, // missing=19, ceil(19/10)=2
		{"already enough buffered", 0, 100, 50, 10, 0, 0},
		{"pending already covers target", 5, 0, 40, 10, 0, 5},
		{"budget caps below formula", 0, 0, 1000, 3, 3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestScan(tc.pending, tc.buffered, tc.target, tc.maxRequests)
			// issueRequests would dial the network via sendRequestGameList;
			// exercise the pure formula portion directly instead.
			missing := s.settings.TargetCacheSize - (s.pending*listingsPerReply + len(s.buffered))
			want := 0
			if missing > 0 {
				want = (missing + listingsPerReply - 1) / listingsPerReply
			}
			budget := s.settings.MaxRequests - s.requestsSent
			if want > budget {
				want = budget
			}
			if want < 0 {
				want = 0
			}

			gotPending := s.pending + want
			if gotPending != tc.wantPending {
				t.Errorf("pending after issuing = %d, want %d", gotPending, tc.wantPending)
			}
			if want != tc.wantRequestsSent {
				t.Errorf("requests issued = %d, want %d", want, tc.wantRequestsSent)
			}
		})
	}
}

func TestIssueRequestsNoopBeforeHelloAcked(t *testing.T) {
	s := newTestScan(0, 0, 100, 10)
	s.helloAcked = false
	s.issueRequests()
	if s.requestsSent != 0 {
		t.Errorf("requestsSent = %d, want 0 before hello ack", s.requestsSent)
	}
}

func TestHandleFrameAccumulatesListingsAndDecrementsPending(t *testing.T) {
	s := newTestScan(2, 0, 100, 10)

	listing := wire.GameListing{HostUsername: "host", MaxPlayers: 10}

	// A GameList reply: outer tag 0x10, one tag=0 wrapper, then one tag=0
	// message per listing.
	w := codec.NewWriter()
	w.StartMessage(byte(wire.PacketGameList))
	w.StartMessage(0)
	for i := 0; i < 3; i++ {
		w.StartMessage(0)
		wire.WriteGameListing(w, listing)
		w.EndMessage()
	}
	w.EndMessage()
	w.EndMessage()

	if err := s.handleFrame(transport.Frame{Type: transport.FrameReliable, Data: w.Bytes()}); err != nil {
		t.Fatalf("handleFrame: %v", err)
	}
	if s.pending != 1 {
		t.Errorf("pending = %d, want 1", s.pending)
	}
	if len(s.buffered) != 3 {
		t.Errorf("buffered = %d, want 3", len(s.buffered))
	}
}
