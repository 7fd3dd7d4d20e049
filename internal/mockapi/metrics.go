package mockapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks mock backend traffic on a private registry
type Metrics struct {
	Registry       *prometheus.Registry
	Requests       *prometheus.CounterVec
	InjectedFaults prometheus.Counter
	ActiveSessions prometheus.Gauge
	StoredSnippets prometheus.GaugeFunc
}

// NewMetrics creates the metrics and registers them on a fresh registry.
// size reports the current number of stored snippets.
func NewMetrics(size func() int) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snipboard",
			Subsystem: "mockapi",
			Name:      "requests_total",
			Help:      "Requests served by route and status code.",
		}, []string{"route", "code"}),
		InjectedFaults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "snipboard",
			Subsystem: "mockapi",
			Name:      "injected_faults_total",
			Help:      "Requests answered with an injected failure.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "snipboard",
			Subsystem: "mockapi",
			Name:      "active_sessions",
			Help:      "Issued tokens that have not expired yet.",
		}),
		StoredSnippets: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "snipboard",
			Subsystem: "mockapi",
			Name:      "stored_snippets",
			Help:      "Snippets currently stored.",
		}, func() float64 { return float64(size()) }),
	}
}
