package reviewer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReviewMetricsRecorder records review-call metrics. The interface
// exists so unit tests can inject a mock instead of Prometheus.
type ReviewMetricsRecorder interface {
	// RecordReview records one completed model call for the given
	// artifact ("summary" or "suggestion") and whether it succeeded.
	RecordReview(artifact string, success bool)

	// RecordDuration records how long one model call took.
	RecordDuration(duration time.Duration)
}

// PrometheusReviewMetrics implements ReviewMetricsRecorder on the
// default Prometheus registry.
type PrometheusReviewMetrics struct {
	reviewsTotal      *prometheus.CounterVec
	durationHistogram prometheus.Histogram
}

var (
	reviewMetricsInstance *PrometheusReviewMetrics
	reviewMetricsOnce     sync.Once
)

// NewPrometheusReviewMetrics returns the process-wide review metrics
// recorder. Both reviewer backends share one set of collectors; the
// singleton avoids duplicate registration when more than one backend
// is constructed.
func NewPrometheusReviewMetrics() *PrometheusReviewMetrics {
	reviewMetricsOnce.Do(func() {
		reviewMetricsInstance = &PrometheusReviewMetrics{
			reviewsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "watcher_reviews_total",
				Help: "Total number of AI review calls by artifact and status",
			}, []string{"artifact", "status"}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "watcher_review_duration_seconds",
				Help:    "Duration of AI review calls in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120},
			}),
		}
	})
	return reviewMetricsInstance
}

// RecordReview implements ReviewMetricsRecorder.
func (m *PrometheusReviewMetrics) RecordReview(artifact string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.reviewsTotal.WithLabelValues(artifact, status).Inc()
}

// RecordDuration implements ReviewMetricsRecorder.
func (m *PrometheusReviewMetrics) RecordDuration(duration time.Duration) {
	m.durationHistogram.Observe(duration.Seconds())
}

// NoOpReviewMetrics is a recorder that discards everything. Useful in
// tests that do not care about metrics.
type NoOpReviewMetrics struct{}

func (NoOpReviewMetrics) RecordReview(string, bool)    {}
func (NoOpReviewMetrics) RecordDuration(time.Duration) {}
