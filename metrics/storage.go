// Package metrics exposes Prometheus collectors for an s3fs.FileSystem.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics implements s3fs.Observer on top of Prometheus collectors.
type StorageMetrics struct {
	bytes    *prometheus.CounterVec
	ops      *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	orphans  prometheus.Counter
	inflight prometheus.Gauge
}

// NewStorageMetrics registers storage metrics on reg. Registering twice on
// the same registry reuses the collectors registered first.
func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	bytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "s3fs",
		Subsystem: "storage",
		Name:      "bytes_total",
		Help:      "Total bytes processed by storage operations.",
	}, []string{"op"})
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "s3fs",
		Subsystem: "storage",
		Name:      "ops_total",
		Help:      "Total number of storage operations by result.",
	}, []string{"op", "result"}) // result = "ok" | "error"
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "s3fs",
		Subsystem: "storage",
		Name:      "op_duration_seconds",
		Help:      "Histogram of storage operation durations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
	orphans := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "s3fs",
		Subsystem: "storage",
		Name:      "orphaned_temp_files_removed_total",
		Help:      "Temp files of crashed writers removed at startup.",
	})
	inflight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "s3fs",
		Subsystem: "storage",
		Name:      "inflight_writes",
		Help:      "Number of atomic writes opened but not yet committed or abandoned.",
	})

	return &StorageMetrics{
		bytes:    register(reg, bytes),
		ops:      register(reg, ops),
		latency:  register(reg, latency),
		orphans:  register(reg, orphans),
		inflight: register(reg, inflight),
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) T {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}

	return collector
}

// Observe records a storage operation with optional bytes and error.
// dur must be the total time spent in the operation.
func (m *StorageMetrics) Observe(op string, bytes int64, err error, dur time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	if bytes > 0 {
		m.bytes.WithLabelValues(op).Add(float64(bytes))
	}
	m.ops.WithLabelValues(op, result).Inc()
	m.latency.WithLabelValues(op).Observe(dur.Seconds())
}

func (m *StorageMetrics) ObserveOrphans(removed int) {
	if removed > 0 {
		m.orphans.Add(float64(removed))
	}
}

func (m *StorageMetrics) ObserveInFlight(writers int) {
	m.inflight.Set(float64(writers))
}
