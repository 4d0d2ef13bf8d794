package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const component = "signal_sim"

// Registry holds every simulator metric. It is separate from the global
// default registry so tests can gather it in isolation.
var Registry = prometheus.NewRegistry()

var (
	ticksCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: component,
			Name:      "ticks_total",
			Help:      "Count of simulation ticks completed.",
		},
	)
	coordinationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: component,
			Name:      "coordination_alerts_total",
			Help:      "Count of coordination alerts raised between adjacent intersections.",
		},
		[]string{"from", "to"},
	)
	highTrafficCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: component,
			Name:      "high_traffic_alerts_total",
			Help:      "Count of ticks an intersection ended with green time above the high traffic mark.",
		},
		[]string{"intersection"},
	)
	greenTimeGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Subsystem: component,
			Name:      "green_time_seconds",
			Help:      "Current green light duration per intersection.",
		},
		[]string{"intersection"},
	)
	densityGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Subsystem: component,
			Name:      "traffic_density",
			Help:      "Most recent traffic density reading per intersection.",
		},
		[]string{"intersection"},
	)
	storeWarningsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: component,
			Name:      "store_warnings_total",
			Help:      "Count of store write-backs skipped because the property is not declared.",
		},
		[]string{"property"},
	)
)

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(ticksCounter)
		Registry.MustRegister(coordinationCounter)
		Registry.MustRegister(highTrafficCounter)
		Registry.MustRegister(greenTimeGauge)
		Registry.MustRegister(densityGauge)
		Registry.MustRegister(storeWarningsCounter)
	})
}

// Recorder receives simulator events. The simulator depends on this
// interface so metrics can be left out entirely.
type Recorder interface {
	RecordTick()
	RecordIntersection(id, density, greenTime int, highTraffic bool)
	RecordCoordination(from, to int)
	RecordStoreWarning(property string)
}

// Prometheus records into the package collectors.
type Prometheus struct{}

// NewPrometheus registers the collectors and returns a recorder over them.
func NewPrometheus() Prometheus {
	Register()
	return Prometheus{}
}

// RecordTick counts a completed tick.
func (Prometheus) RecordTick() {
	ticksCounter.Inc()
}

// RecordIntersection sets the per-intersection gauges after a tick.
func (Prometheus) RecordIntersection(id, density, greenTime int, highTraffic bool) {
	label := strconv.Itoa(id)
	densityGauge.WithLabelValues(label).Set(float64(density))
	greenTimeGauge.WithLabelValues(label).Set(float64(greenTime))
	if highTraffic {
		highTrafficCounter.WithLabelValues(label).Inc()
	}
}

// RecordCoordination counts an alert between two adjacent intersections.
func (Prometheus) RecordCoordination(from, to int) {
	coordinationCounter.WithLabelValues(strconv.Itoa(from), strconv.Itoa(to)).Inc()
}

// RecordStoreWarning counts a write-back skipped for an undeclared property.
func (Prometheus) RecordStoreWarning(property string) {
	storeWarningsCounter.WithLabelValues(property).Inc()
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordTick()                            {}
func (Noop) RecordIntersection(_, _, _ int, _ bool) {}
func (Noop) RecordCoordination(_, _ int)            {}
func (Noop) RecordStoreWarning(_ string)            {}
