package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks post lifecycle mutations. Construct once per process;
// services nil-guard so unit tests can pass nil.
type Metrics struct {
	mutations *prometheus.CounterVec
}

// New creates and registers post metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "teamup_post_mutations_total",
			Help: "Post lifecycle mutations by kind and action",
		}, []string{"kind", "action"}),
	}
}

// IncMutation records one applied mutation.
func (m *Metrics) IncMutation(kind, action string) {
	m.mutations.WithLabelValues(kind, action).Inc()
}
