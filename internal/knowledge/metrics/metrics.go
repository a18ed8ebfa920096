package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the knowledge engine.
type Metrics struct {
	// Links per derived status in the last computed summary
	LinkStatus *prometheus.GaugeVec

	// Links excluded for a missing person or item
	DanglingLinks prometheus.Gauge

	// Duration of engine operations by name
	OperationLatency *prometheus.HistogramVec

	// Memo lookups by operation and result ("hit", "miss", "shared")
	MemoLookups *prometheus.CounterVec

	// Snapshot records rejected or repaired at the boundary
	SnapshotWarnings prometheus.Counter
}

// New registers the knowledge metrics with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		LinkStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "knowledge_links",
			Help: "Links per derived status in the last computed summary",
		}, []string{"status"}),

		DanglingLinks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "knowledge_dangling_links",
			Help: "Links referencing a missing person or item in the last computed summary",
		}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "knowledge_operation_duration_seconds",
			Help:    "Duration of engine operations including snapshot retrieval",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		MemoLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_memo_lookups_total",
			Help: "Memo lookups by operation and result",
		}, []string{"operation", "result"}),

		SnapshotWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "knowledge_snapshot_warnings_total",
			Help: "Snapshot fields dropped as malformed during conversion",
		}),
	}
}

// SetLinkStatus records the count of links carrying status.
func (m *Metrics) SetLinkStatus(status string, n int) {
	if m != nil {
		m.LinkStatus.WithLabelValues(status).Set(float64(n))
	}
}

// SetDanglingLinks records the dangling link count.
func (m *Metrics) SetDanglingLinks(n int) {
	if m != nil {
		m.DanglingLinks.Set(float64(n))
	}
}

// ObserveOperation records the duration of an engine operation.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementMemo records a memo lookup result.
func (m *Metrics) IncrementMemo(operation, result string) {
	if m != nil {
		m.MemoLookups.WithLabelValues(operation, result).Inc()
	}
}

// AddSnapshotWarnings records dropped snapshot fields.
func (m *Metrics) AddSnapshotWarnings(n int) {
	if m != nil && n > 0 {
		m.SnapshotWarnings.Add(float64(n))
	}
}
