package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for proof operations.
type Metrics struct {
	ProofsIssued    *prometheus.CounterVec
	ProofsRevoked   prometheus.Counter
	IssueRejected   *prometheus.CounterVec
	OwnershipChecks *prometheus.CounterVec
	IssueLatency    prometheus.Histogram
}

// New registers and returns proof metrics collectors.
func New() *Metrics {
	return &Metrics{
		ProofsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_proofs_issued_total",
			Help: "Total number of proofs issued, labeled by proof type",
		}, []string{"type"}),
		ProofsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "haven_proofs_revoked_total",
			Help: "Total number of proofs revoked",
		}),
		IssueRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_proof_issue_rejected_total",
			Help: "Total number of rejected proof issuances, labeled by error code",
		}, []string{"code"}),
		OwnershipChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_proof_ownership_checks_total",
			Help: "Total number of ownership checks, labeled by outcome",
		}, []string{"outcome"}),
		IssueLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "haven_proof_issue_latency_seconds",
			Help:    "Latency of proof issuance in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementIssued(proofType string) {
	m.ProofsIssued.WithLabelValues(proofType).Inc()
}

func (m *Metrics) IncrementRevoked() {
	m.ProofsRevoked.Inc()
}

func (m *Metrics) IncrementRejected(code string) {
	m.IssueRejected.WithLabelValues(code).Inc()
}

func (m *Metrics) IncrementOwnershipCheck(outcome string) {
	m.OwnershipChecks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveIssueLatency(seconds float64) {
	m.IssueLatency.Observe(seconds)
}
