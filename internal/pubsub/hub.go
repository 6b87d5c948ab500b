package pubsub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/guilhermegouw/bindery/internal/metrics"
)

// HubConfig configures a Hub.
type HubConfig struct {
	Name          string
	RecoverPanics bool
	Logger        zerolog.Logger
}

// Hub is the process-wide container constructed once at startup. It owns the
// bus and its metrics registry and is passed explicitly to every component
// that needs pub/sub.
type Hub struct { //nolint:govet // fieldalignment: preserving logical field order
	Bus *Bus

	prom    *prometheus.Registry
	metrics *metrics.BusMetrics
	done    chan struct{}
}

// NewHub creates a Hub with a fresh bus and Prometheus registry.
func NewHub(cfg HubConfig) *Hub {
	prom := prometheus.NewRegistry()
	m := metrics.NewBusMetrics(prom)

	policy := PanicPropagate
	if cfg.RecoverPanics {
		policy = PanicRecover
	}

	return &Hub{
		Bus: NewBus(
			WithName(cfg.Name),
			WithLogger(cfg.Logger),
			WithMetrics(m),
			WithPanicPolicy(policy),
		),
		prom:    prom,
		metrics: m,
		done:    make(chan struct{}),
	}
}

// Shutdown closes the bus. It is safe to call more than once.
func (h *Hub) Shutdown() {
	select {
	case <-h.done:
		return // Already shut down
	default:
		close(h.done)
	}
	h.Bus.Close()
}

// IsShutdown returns true if the hub has been shut down.
func (h *Hub) IsShutdown() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that's closed when the hub is shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Gatherer exposes the hub's Prometheus registry.
func (h *Hub) Gatherer() prometheus.Gatherer {
	return h.prom
}

// Metrics returns the hub's bus counters.
func (h *Hub) Metrics() *metrics.BusMetrics {
	return h.metrics
}

// DebugString returns a formatted debug string for the bus.
func (h *Hub) DebugString() string {
	return h.Bus.DebugString()
}
