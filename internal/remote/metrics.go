package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "snipboard"
	metricsSubsystem = "remote"
)

// Metrics counts remote adapter traffic
type Metrics struct {
	// Requests counts attempts by operation and outcome (ok, retry, auth, error)
	Requests *prometheus.CounterVec

	// Retries counts backoff waits
	Retries prometheus.Counter

	// AuthFailures counts responses that invalidated the session
	AuthFailures prometheus.Counter
}

// NewMetrics creates the adapter metrics on reg. A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Remote backend request attempts by operation and outcome.",
		}, []string{"op", "outcome"}),
		Retries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "retries_total",
			Help:      "Backoff waits before retrying a remote request.",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "auth_failures_total",
			Help:      "Remote requests rejected with 401 or 403.",
		}),
	}
}
