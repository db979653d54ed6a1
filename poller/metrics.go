package poller

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nano_telemetry"

// Metrics are the poller's prometheus collectors
type Metrics struct {
	devices   *prometheus.CounterVec
	records   *prometheus.CounterVec
	unmatched prometheus.Counter
	duration  *prometheus.HistogramVec
	lastRun   prometheus.Gauge
}

// NewMetrics registers the poller collectors on reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		devices: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poller",
			Name:      "devices_total",
			Help:      "Device pipelines run, by vendor, kind and outcome category.",
		}, []string{"vendor", "kind", "category"}),
		records: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poller",
			Name:      "records_total",
			Help:      "Records delivered to the sink, by kind and record part.",
		}, []string{"kind", "part"}),
		unmatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poller",
			Name:      "unmatched_interfaces_total",
			Help:      "Parsed interfaces with no inventoried interface of the same name.",
		}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "poller",
			Name:      "device_duration_seconds",
			Help:      "Duration of one device pipeline.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 90, 180, 300},
		}, []string{"vendor", "kind"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "poller",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last poll run finished.",
		}),
	}
}

func (m *Metrics) observe(o Outcome) {
	if m == nil {
		return
	}

	category := string(o.Category)
	if category == "" {
		category = "ok"
	}
	vendor := string(o.Target.Vendor)
	kind := string(o.Kind)

	m.devices.WithLabelValues(vendor, kind, category).Inc()
	m.duration.WithLabelValues(vendor, kind).Observe(o.Duration.Seconds())
	m.records.WithLabelValues(kind, "status").Add(float64(o.Counts.Status))
	m.records.WithLabelValues(kind, "stats").Add(float64(o.Counts.Stats))
	m.records.WithLabelValues(kind, "readings").Add(float64(o.Counts.Readings))
	m.records.WithLabelValues(kind, "modules").Add(float64(o.Counts.Modules))
	m.unmatched.Add(float64(o.Counts.Unmatched))
}

func (m *Metrics) finish(at time.Time) {
	if m == nil {
		return
	}
	m.lastRun.Set(float64(at.Unix()))
}
