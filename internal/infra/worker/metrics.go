package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pubwatch/internal/pkg/config"
)

// Metrics provides Prometheus metrics for the watcher worker. It embeds
// the shared configuration metrics and adds job-level counters covering
// each watch run.
//
// Configuration metrics (embedded, "watcher" prefix):
//   - watcher_config_load_timestamp
//   - watcher_config_validation_errors_total{field}
//   - watcher_config_fallbacks_total{field}
//   - watcher_config_fallback_active
//
// Job metrics:
//   - watcher_job_runs_total{status}: Runs by outcome (started/success/failure)
//   - watcher_job_duration_seconds: Histogram of run durations
//   - watcher_job_publications_total: New publications processed across runs
//   - watcher_job_mails_sent_total: Notification emails delivered across runs
//   - watcher_job_last_success_timestamp: Unix time of the last clean run
type Metrics struct {
	*config.Metrics

	JobRunsTotal            *prometheus.CounterVec
	JobDurationSeconds      prometheus.Histogram
	JobPublicationsTotal    prometheus.Counter
	JobMailsSentTotal       prometheus.Counter
	JobLastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates and registers the watcher worker metrics. Metrics go
// to the default Prometheus registry via promauto, so only one instance
// may exist per process.
func NewMetrics() *Metrics {
	return &Metrics{
		Metrics: config.NewMetrics("watcher"),

		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "watcher_job_runs_total",
			Help: "Total number of watch runs by status (started/success/failure)",
		}, []string{"status"}),

		JobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "watcher_job_duration_seconds",
			Help:    "Duration of watch runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		JobPublicationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "watcher_job_publications_total",
			Help: "Total number of new publications processed across all watch runs",
		}),

		JobMailsSentTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "watcher_job_mails_sent_total",
			Help: "Total number of notification emails sent across all watch runs",
		}),

		JobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "watcher_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful watch run",
		}),
	}
}

// RecordJobRun increments the run counter for the given status
// ("started", "success", or "failure").
func (m *Metrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of a watch run in seconds.
func (m *Metrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

// RecordPublications adds the number of new publications handled by a run.
func (m *Metrics) RecordPublications(count int) {
	m.JobPublicationsTotal.Add(float64(count))
}

// RecordMailsSent adds the number of notification emails delivered by a run.
func (m *Metrics) RecordMailsSent(count int) {
	m.JobMailsSentTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *Metrics) RecordLastSuccess() {
	m.JobLastSuccessTimestamp.SetToCurrentTime()
}
