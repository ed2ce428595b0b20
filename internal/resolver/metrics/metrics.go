package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks resolution outcomes. Construct once per process; services
// nil-guard so unit tests can pass nil.
type Metrics struct {
	resolutions *prometheus.CounterVec
}

// New creates and registers resolver metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "teamup_resolutions_total",
			Help: "Phone-to-post resolutions by match mode and outcome",
		}, []string{"mode", "outcome"}),
	}
}

// IncResolution records one resolution result.
func (m *Metrics) IncResolution(mode, outcome string) {
	m.resolutions.WithLabelValues(mode, outcome).Inc()
}
