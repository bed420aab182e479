package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for course and enrollment operations.
type Metrics struct {
	CoursesCreated prometheus.Counter
	CoursesClosed  prometheus.Counter
	Enrollments    prometheus.Counter
	Cancellations  prometheus.Counter
	EnrollRejected *prometheus.CounterVec
	EnrollLatency  prometheus.Histogram
}

// New registers and returns enrollment metrics collectors.
func New() *Metrics {
	return &Metrics{
		CoursesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "haven_courses_created_total",
			Help: "Total number of courses created",
		}),
		CoursesClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "haven_courses_closed_total",
			Help: "Total number of courses closed to further enrollment",
		}),
		Enrollments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "haven_enrollments_total",
			Help: "Total number of successful enrollments",
		}),
		Cancellations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "haven_enrollment_cancellations_total",
			Help: "Total number of enrollment cancellations",
		}),
		EnrollRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_enroll_rejected_total",
			Help: "Total number of rejected enrollments, labeled by error code",
		}, []string{"code"}),
		EnrollLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "haven_enroll_latency_seconds",
			Help:    "Latency of enrollment in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementCoursesCreated() {
	m.CoursesCreated.Inc()
}

func (m *Metrics) IncrementCoursesClosed() {
	m.CoursesClosed.Inc()
}

func (m *Metrics) IncrementEnrollments() {
	m.Enrollments.Inc()
}

func (m *Metrics) IncrementCancellations() {
	m.Cancellations.Inc()
}

func (m *Metrics) IncrementRejected(code string) {
	m.EnrollRejected.WithLabelValues(code).Inc()
}

func (m *Metrics) ObserveEnrollLatency(seconds float64) {
	m.EnrollLatency.Observe(seconds)
}
