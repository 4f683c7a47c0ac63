// Package metrics exposes Prometheus collectors for the verification module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	saves        *prometheus.CounterVec
	saveDuration *prometheus.HistogramVec
	rejections   *prometheus.CounterVec
	verified     *prometheus.CounterVec
}

// New registers the module's collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		saves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_verification_saves_total",
			Help: "Verification record saves by write path and outcome.",
		}, []string{"path", "outcome"}),
		saveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vouch_verification_save_duration_seconds",
			Help:    "Latency of verification record saves.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_verification_attachment_rejections_total",
			Help: "Attachment references rejected during save, by reason.",
		}, []string{"reason"}),
		verified: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_verification_flag_changes_total",
			Help: "Verified flag transitions applied by editors.",
		}, []string{"to"}),
	}
}

func (m *Metrics) ObserveSave(path, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(path, outcome).Inc()
	m.saveDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

func (m *Metrics) AttachmentRejected(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) VerifiedChanged(to string) {
	if m == nil {
		return
	}
	m.verified.WithLabelValues(to).Inc()
}
