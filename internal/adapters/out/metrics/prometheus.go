package metrics

import (
	"sync"
	"time"

	"multicleaner/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector counts sweep outcomes, slot churn and failed notifications.
// Collectors are registered lazily on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	sweepItems           *prometheus.CounterVec
	sweepDuration        *prometheus.HistogramVec
	slotsFilled          prometheus.Counter
	slotsReleased        prometheus.Counter
	notificationFailures *prometheus.CounterVec
}

var _ ports.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus uses prometheus.DefaultRegisterer when reg is nil and the
// "multicleaner" namespace when namespace is empty.
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "multicleaner"
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.sweepItems = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sweep",
			Name:      "items_total",
			Help:      "Sweep items by sweep name and result (processed, error).",
		}, []string{"sweep", "result"})
		p.sweepDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Wall time of one sweep run in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"sweep"})

		p.slotsFilled = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "job",
			Name:      "slots_filled_total",
			Help:      "Cleaner slots filled.",
		})
		p.slotsReleased = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "job",
			Name:      "slots_released_total",
			Help:      "Cleaner slots released by dropouts, declines and expiries.",
		})

		p.notificationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "notification",
			Name:      "failures_total",
			Help:      "Notifications that could not be composed or delivered, by kind.",
		}, []string{"kind"})

		p.reg.MustRegister(p.sweepItems)
		p.reg.MustRegister(p.sweepDuration)
		p.reg.MustRegister(p.slotsFilled)
		p.reg.MustRegister(p.slotsReleased)
		p.reg.MustRegister(p.notificationFailures)
	})
}

func (p *PrometheusCollector) RecordSweep(name string, processed, errors int, duration time.Duration) {
	p.ensureRegistered()
	p.sweepItems.WithLabelValues(name, "processed").Add(float64(processed))
	p.sweepItems.WithLabelValues(name, "error").Add(float64(errors))
	p.sweepDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func (p *PrometheusCollector) IncSlotFilled() {
	p.ensureRegistered()
	p.slotsFilled.Inc()
}

func (p *PrometheusCollector) IncSlotReleased() {
	p.ensureRegistered()
	p.slotsReleased.Inc()
}

func (p *PrometheusCollector) IncNotificationFailure(kind string) {
	p.ensureRegistered()
	p.notificationFailures.WithLabelValues(kind).Inc()
}
