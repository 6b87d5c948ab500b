package bridge

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilhermegouw/bindery/internal/events"
	"github.com/guilhermegouw/bindery/internal/pubsub"
)

// mockProgram captures messages sent via Send().
type mockProgram struct {
	mu       sync.Mutex
	messages []tea.Msg
}

func (m *mockProgram) Send(msg tea.Msg) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockProgram) Messages() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]tea.Msg, len(m.messages))
	copy(result, m.messages)
	return result
}

func TestNewTUIBridge(t *testing.T) {
	t.Run("creates bridge with bus and program", func(t *testing.T) {
		bus := pubsub.NewBus()
		program := &mockProgram{}

		bridge := NewTUIBridge(bus, program)

		require.NotNil(t, bridge)
		assert.Same(t, bus, bridge.bus)
		assert.Equal(t, "tui-bridge", bridge.proxy.Owner())
	})

	t.Run("applies customer filter option", func(t *testing.T) {
		bridge := NewTUIBridge(pubsub.NewBus(), &mockProgram{}, WithCustomerFilter(7))
		assert.Equal(t, int64(7), bridge.customerFilter)
	})
}

func TestTUIBridgeStartStop(t *testing.T) {
	t.Run("start and stop lifecycle", func(t *testing.T) {
		bus := pubsub.NewBus()
		bridge := NewTUIBridge(bus, &mockProgram{})

		require.NoError(t, bridge.Start(context.Background()))
		require.NoError(t, bridge.Start(context.Background()))
		assert.Equal(t, 1, bus.SubscriberCount(events.TopicStatus))

		bridge.Stop()
		bridge.Stop()

		assert.Equal(t, 0, bus.SubscriberCount(events.TopicStatus))
	})

	t.Run("stop without start is safe", func(t *testing.T) {
		bridge := NewTUIBridge(pubsub.NewBus(), &mockProgram{})
		assert.NotPanics(t, bridge.Stop)
	})

	t.Run("cancelled context releases subscriptions", func(t *testing.T) {
		bus := pubsub.NewBus()
		bridge := NewTUIBridge(bus, &mockProgram{})
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, bridge.Start(ctx))
		cancel()
		bridge.wg.Wait()

		assert.Equal(t, 0, bus.SubscriberCount(events.TopicCustomerUpdated))
	})

	t.Run("restarts after stop", func(t *testing.T) {
		bus := pubsub.NewBus()
		program := &mockProgram{}
		bridge := NewTUIBridge(bus, program)

		require.NoError(t, bridge.Start(context.Background()))
		bridge.Stop()
		require.NoError(t, bus.Publish(events.TopicStatus, nil, pubsub.NewNotification("while stopped")))

		require.NoError(t, bridge.Start(context.Background()))
		defer bridge.Stop()
		assert.Equal(t, 1, bus.SubscriberCount(events.TopicStatus))
		require.NoError(t, bus.Publish(events.TopicStatus, nil, pubsub.NewNotification("back")))

		assert.Equal(t, []tea.Msg{StatusMsg{Text: "back"}}, program.Messages())
	})

	t.Run("restarts after context cancel", func(t *testing.T) {
		bus := pubsub.NewBus()
		program := &mockProgram{}
		bridge := NewTUIBridge(bus, program)
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, bridge.Start(ctx))
		cancel()
		bridge.wg.Wait()

		require.NoError(t, bridge.Start(context.Background()))
		defer bridge.Stop()
		require.NoError(t, bus.Publish(events.TopicStatus, nil, pubsub.NewNotification("again")))

		assert.Equal(t, []tea.Msg{StatusMsg{Text: "again"}}, program.Messages())
	})

	t.Run("forward after stop fails", func(t *testing.T) {
		bridge := NewTUIBridge(pubsub.NewBus(), &mockProgram{})
		require.NoError(t, bridge.Start(context.Background()))
		bridge.Stop()

		err := Forward(bridge, "ping", func(any, pubsub.Notification) tea.Msg { return nil })

		assert.ErrorIs(t, err, pubsub.ErrSubscriberClosed)
	})

	t.Run("start on closed bus fails", func(t *testing.T) {
		bus := pubsub.NewBus()
		bus.Close()
		bridge := NewTUIBridge(bus, &mockProgram{})

		assert.ErrorIs(t, bridge.Start(context.Background()), pubsub.ErrBusClosed)
	})
}

func TestTUIBridgeForwarding(t *testing.T) {
	bus := pubsub.NewBus()
	program := &mockProgram{}
	bridge := NewTUIBridge(bus, program)
	require.NoError(t, bridge.Start(context.Background()))
	defer bridge.Stop()

	sender := &struct{}{}
	customer := events.NewCustomer(1, "John Doe", "john@example.com")
	edit := events.NewEditStartedEvent("editor", "customer", 1)

	require.NoError(t, bus.Publish(events.TopicCustomerUpdated, sender, pubsub.NewOutgoing("", customer)))
	require.NoError(t, bus.Publish(events.TopicEditLifecycle, nil, pubsub.NewOutgoing("", edit)))
	require.NoError(t, bus.Publish(events.TopicStatus, nil, pubsub.NewNotification("saved")))
	require.NoError(t, bus.Publish(events.TopicStatus, nil, pubsub.NewOutgoing("ignored", 1)))

	msgs := program.Messages()
	require.Len(t, msgs, 3)

	updated, ok := msgs[0].(CustomerUpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, "John Doe", updated.Customer.Name)
	assert.Same(t, sender, updated.Sender)

	editMsg, ok := msgs[1].(EditEventMsg)
	require.True(t, ok)
	assert.Equal(t, events.EditEventStarted, editMsg.Event.Type)

	assert.Equal(t, StatusMsg{Text: "saved"}, msgs[2])
}

func TestTUIBridgeCustomerFilter(t *testing.T) {
	bus := pubsub.NewBus()
	program := &mockProgram{}
	bridge := NewTUIBridge(bus, program, WithCustomerFilter(2))
	require.NoError(t, bridge.Start(context.Background()))
	defer bridge.Stop()

	publish := func(id int64) {
		require.NoError(t, bus.Publish(events.TopicCustomerUpdated, nil,
			pubsub.NewOutgoing("", events.NewCustomer(id, "Name", "n@example.com"))))
	}

	publish(1)
	publish(2)
	assert.Len(t, program.Messages(), 1)

	bridge.ClearCustomerFilter()
	publish(1)
	assert.Len(t, program.Messages(), 2)

	bridge.SetCustomerFilter(3)
	publish(1)
	assert.Len(t, program.Messages(), 2)
}

func TestForwardCustomTopic(t *testing.T) {
	bus := pubsub.NewBus()
	program := &mockProgram{}
	bridge := NewTUIBridge(bus, program)
	defer bridge.Stop()

	type pingMsg struct{ n int }
	require.NoError(t, Forward(bridge, "ping", func(_ any, env pubsub.Outgoing[int]) tea.Msg {
		return pingMsg{n: env.Data}
	}))

	require.NoError(t, bus.Publish("ping", nil, pubsub.NewOutgoing("", 5)))

	assert.Equal(t, []tea.Msg{pingMsg{n: 5}}, program.Messages())
}
