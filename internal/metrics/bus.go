// Package metrics exposes Prometheus collectors for the message bus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bindery"

// BusMetrics groups the bus counters. A nil *BusMetrics is valid and
// records nothing.
type BusMetrics struct {
	Published  *prometheus.CounterVec
	Delivered  *prometheus.CounterVec
	ShapeDrops *prometheus.CounterVec
	Purged     *prometheus.CounterVec
	Panics     *prometheus.CounterVec
}

// NewBusMetrics creates the bus counters and registers them with reg.
func NewBusMetrics(reg prometheus.Registerer) *BusMetrics {
	f := promauto.With(reg)
	return &BusMetrics{
		Published: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_published_total",
			Help:      "Total number of envelopes published by topic",
		}, []string{"bus", "topic"}),
		Delivered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_delivered_total",
			Help:      "Total number of callback invocations by topic",
		}, []string{"bus", "topic"}),
		ShapeDrops: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_shape_drops_total",
			Help:      "Total number of subscribers skipped because no callback matched the envelope shape",
		}, []string{"bus", "topic"}),
		Purged: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_purged_total",
			Help:      "Total number of dead subscriber handles removed by topic",
		}, []string{"bus", "topic"}),
		Panics: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bus_callback_panics_total",
			Help:      "Total number of recovered callback panics by topic",
		}, []string{"bus", "topic"}),
	}
}

func label(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// IncPublished records one publish on topic.
func (m *BusMetrics) IncPublished(bus, topic string) {
	if m == nil {
		return
	}
	m.Published.WithLabelValues(label(bus), label(topic)).Inc()
}

// AddDelivered records n callback invocations on topic.
func (m *BusMetrics) AddDelivered(bus, topic string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Delivered.WithLabelValues(label(bus), label(topic)).Add(float64(n))
}

// IncShapeDrop records a subscriber that had no callback for the shape.
func (m *BusMetrics) IncShapeDrop(bus, topic string) {
	if m == nil {
		return
	}
	m.ShapeDrops.WithLabelValues(label(bus), label(topic)).Inc()
}

// AddPurged records n dead handles removed from topic.
func (m *BusMetrics) AddPurged(bus, topic string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Purged.WithLabelValues(label(bus), label(topic)).Add(float64(n))
}

// IncPanic records a recovered callback panic.
func (m *BusMetrics) IncPanic(bus, topic string) {
	if m == nil {
		return
	}
	m.Panics.WithLabelValues(label(bus), label(topic)).Inc()
}
