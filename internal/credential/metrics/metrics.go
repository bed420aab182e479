package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for credential operations.
type Metrics struct {
	CredentialsIssued  *prometheus.CounterVec
	CredentialsRevoked prometheus.Counter
	IssueRejected      *prometheus.CounterVec
	VerifyChecks       *prometheus.CounterVec
	IssueLatency       prometheus.Histogram
}

// New registers and returns credential metrics collectors.
func New() *Metrics {
	return &Metrics{
		CredentialsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_credentials_issued_total",
			Help: "Total number of credentials issued, labeled by credential type",
		}, []string{"type"}),
		CredentialsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "haven_credentials_revoked_total",
			Help: "Total number of credentials revoked",
		}),
		IssueRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_credential_issue_rejected_total",
			Help: "Total number of rejected credential issuances, labeled by error code",
		}, []string{"code"}),
		VerifyChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_credential_verify_checks_total",
			Help: "Total number of credential verify checks, labeled by outcome",
		}, []string{"outcome"}),
		IssueLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "haven_credential_issue_latency_seconds",
			Help:    "Latency of credential issuance in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementIssued(credType string) {
	m.CredentialsIssued.WithLabelValues(credType).Inc()
}

func (m *Metrics) IncrementRevoked() {
	m.CredentialsRevoked.Inc()
}

func (m *Metrics) IncrementRejected(code string) {
	m.IssueRejected.WithLabelValues(code).Inc()
}

func (m *Metrics) IncrementVerifyCheck(outcome string) {
	m.VerifyChecks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveIssueLatency(seconds float64) {
	m.IssueLatency.Observe(seconds)
}
