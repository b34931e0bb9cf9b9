package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"schoolku_backend/internals/helpers/apperror"
)

type Metrics struct {
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics mendaftarkan collector ke registry yang diberikan.
// reg nil => metrics tidak diekspor (tetap aman dipanggil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "report_generations_total",
			Help: "Report generation attempts by type and outcome.",
		}, []string{"type", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "report_generation_duration_seconds",
			Help:    "End-to-end report generation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type"}),
	}
	if reg != nil {
		reg.MustRegister(m.generations, m.duration)
	}
	return m
}

func (m *Metrics) observe(reportType string, started time.Time, err error) {
	if m == nil {
		return
	}
	if reportType == "" {
		reportType = "unknown"
	}
	m.generations.WithLabelValues(reportType, outcomeOf(err)).Inc()
	m.duration.WithLabelValues(reportType).Observe(time.Since(started).Seconds())
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	kind, ok := apperror.KindOf(err)
	if !ok {
		return "error"
	}
	switch kind {
	case apperror.KindValidation:
		return "validation"
	case apperror.KindNotFound:
		return "not_found"
	case apperror.KindConflict:
		return "conflict"
	case apperror.KindAggregation:
		return "aggregation"
	case apperror.KindDataAccess:
		return "data_access"
	}
	return "error"
}
