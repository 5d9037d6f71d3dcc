package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/newtron-network/mistconv/pkg/pipeline"
)

// metrics holds the conversion counters exposed on /metrics.
type metrics struct {
	conversions *prometheus.CounterVec
	files       *prometheus.CounterVec
	failures    *prometheus.CounterVec
	profiles    prometheus.Histogram
	duration    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mistconv_conversions_total",
			Help: "Conversion requests by result.",
		}, []string{"result"}),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mistconv_files_total",
			Help: "Configuration files processed by detected format.",
		}, []string{"format"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mistconv_file_failures_total",
			Help: "Files that failed a conversion stage.",
		}, []string{"stage"}),
		profiles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mistconv_port_profiles",
			Help:    "Port profiles generated per conversion.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mistconv_conversion_duration_seconds",
			Help:    "Time spent converting a request.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.conversions, m.files, m.failures, m.profiles, m.duration)
	return m
}

func (m *metrics) observe(res *pipeline.Result, elapsed time.Duration) {
	m.duration.Observe(elapsed.Seconds())
	for _, f := range res.Files {
		m.files.WithLabelValues(f.Format.String()).Inc()
		switch {
		case !f.SuccessVlan:
			m.failures.WithLabelValues(string(pipeline.StageVlans)).Inc()
		case !f.SuccessConfig:
			m.failures.WithLabelValues(string(pipeline.StageConfig)).Inc()
		}
	}
	if res.Template != nil {
		m.profiles.Observe(float64(len(res.Template.PortUsages)))
	}
}
