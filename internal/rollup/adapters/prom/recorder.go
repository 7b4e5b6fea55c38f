package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/ports"
)

// Recorder exports rollup run outcomes as Prometheus counters.
type Recorder struct {
	processed prometheus.Counter
	failed    prometheus.Counter
	written   *prometheus.CounterVec
}

var _ ports.RunRecorder = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		processed: f.NewCounter(prometheus.CounterOpts{
			Name: "rollup_accounts_processed_total",
			Help: "Accounts whose daily buckets were rolled up successfully",
		}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Name: "rollup_accounts_failed_total",
			Help: "Accounts skipped because their rollup failed",
		}),
		written: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rollup_buckets_written_total",
			Help: "Daily buckets written, by write mode",
		}, []string{"mode"}),
	}
}

func (r *Recorder) AccountProcessed() { r.processed.Inc() }

func (r *Recorder) AccountFailed() { r.failed.Inc() }

func (r *Recorder) BucketsWritten(mode domain.WriteMode, n int) {
	r.written.WithLabelValues(string(mode)).Add(float64(n))
}
