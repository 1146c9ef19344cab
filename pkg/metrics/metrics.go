// Package metrics holds the Prometheus collectors shared across the
// transport, session, and matchmaker packages. Callers register this
// package's Registry with a promhttp handler (see cmd/client) to expose
// them; the collectors themselves are safe to use even if nothing ever
// scrapes them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry is the registry every collector in this package is registered
// against. It is separate from prometheus.DefaultRegisterer so embedding
// this module into a larger program never collides with that program's own
// metric names.
var Registry = prometheus.NewRegistry()

var (
	// FramesSent counts outbound transport frames by frame kind.
	FramesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hazelclient_transport_frames_sent_total",
		Help: "Transport frames sent, by frame kind.",
	}, []string{"kind"})

	// FramesReceived counts inbound transport frames by frame kind.
	FramesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hazelclient_transport_frames_received_total",
		Help: "Transport frames received, by frame kind.",
	}, []string{"kind"})

	// FramesRetransmitted counts reliable frames resent after the age
	// threshold elapsed without an acknowledgement.
	FramesRetransmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hazelclient_transport_frames_retransmitted_total",
		Help: "Reliable frames retransmitted after ack timeout.",
	})

	// UnconfirmedCount is the current size of a transport's unconfirmed map.
	UnconfirmedCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hazelclient_transport_unconfirmed",
		Help: "Number of reliable frames awaiting acknowledgement.",
	})

	// AckRoundTrip observes the time between sending a reliable frame and
	// receiving its acknowledgement.
	AckRoundTrip = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hazelclient_transport_ack_round_trip_seconds",
		Help:    "Round trip time between a reliable send and its ack.",
		Buckets: prometheus.DefBuckets,
	})

	// MatchmakerListingsBuffered is the number of listings a scan run has
	// received but not yet delivered to its callback.
	MatchmakerListingsBuffered = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hazelclient_matchmaker_listings_buffered",
		Help: "Game listings buffered by an in-progress matchmaker scan.",
	})

	// MatchmakerRequestsInFlight counts outstanding RequestGameList calls
	// not yet answered.
	MatchmakerRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hazelclient_matchmaker_requests_in_flight",
		Help: "RequestGameList calls sent but not yet answered.",
	})

	// SessionRejoinAttempts counts rejoin attempts by outcome.
	SessionRejoinAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hazelclient_session_rejoin_attempts_total",
		Help: "Session rejoin attempts, by outcome (retry, exhausted, succeeded).",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		FramesSent,
		FramesReceived,
		FramesRetransmitted,
		UnconfirmedCount,
		AckRoundTrip,
		MatchmakerListingsBuffered,
		MatchmakerRequestsInFlight,
		SessionRejoinAttempts,
	)
}
