package pubsub

import (
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHub(t *testing.T) {
	hub := NewHub(HubConfig{Name: "app", Logger: zerolog.Nop()})
	defer hub.Shutdown()

	require.NotNil(t, hub.Bus)
	assert.Equal(t, "app", hub.Bus.Name())
	assert.NotNil(t, hub.Gatherer())
	assert.NotNil(t, hub.Metrics())
	assert.False(t, hub.IsShutdown())
}

func TestHubShutdown(t *testing.T) {
	hub := NewHub(HubConfig{})

	hub.Shutdown()
	hub.Shutdown()

	assert.True(t, hub.IsShutdown())
	assert.True(t, hub.Bus.IsClosed())
	select {
	case <-hub.Done():
	default:
		t.Error("done channel should be closed")
	}
}

func TestHubRecordsMetrics(t *testing.T) {
	hub := NewHub(HubConfig{Name: "app", RecoverPanics: true})
	defer hub.Shutdown()

	p := NewProxy("listener")
	_, err := Subscribe(p, hub.Bus, "t", func(any, Notification) {})
	require.NoError(t, err)
	bad := NewProxy("bad")
	_, err = Subscribe(bad, hub.Bus, "t", func(any, Outgoing[int]) { panic("boom") })
	require.NoError(t, err)

	require.NoError(t, hub.Bus.Publish("t", nil, NewNotification("x")))
	require.NoError(t, hub.Bus.Publish("t", nil, NewOutgoing("y", 1)))

	m := hub.Metrics()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Published.WithLabelValues("app", "t")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Delivered.WithLabelValues("app", "t")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Panics.WithLabelValues("app", "t")))

	count, err := testutil.GatherAndCount(hub.Gatherer(), "bindery_bus_published_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Contains(t, hub.DebugString(), "=== Bus app")
	runtime.KeepAlive(p)
	runtime.KeepAlive(bad)
}
