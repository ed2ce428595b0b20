package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks feed assembly. Construct once per process; the aggregator
// nil-guards so unit tests can pass nil.
type Metrics struct {
	requests  *prometheus.CounterVec
	feedSize  prometheus.Histogram
	fetchTime prometheus.Histogram
}

// New creates and registers listing metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "teamup_feed_requests_total",
			Help: "Aggregated feed requests by scope",
		}, []string{"scope"}),
		feedSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "teamup_feed_size",
			Help:    "Number of items in assembled feeds",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500},
		}),
		fetchTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "teamup_feed_fetch_duration_seconds",
			Help:    "Latency of the two-collection snapshot fetch",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveFeed records one assembled feed.
func (m *Metrics) ObserveFeed(scope string, size int, fetchDuration time.Duration) {
	m.requests.WithLabelValues(scope).Inc()
	m.feedSize.Observe(float64(size))
	m.fetchTime.Observe(fetchDuration.Seconds())
}
