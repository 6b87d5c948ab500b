package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProxy(t *testing.T) {
	p1 := NewProxy("editor")
	p2 := NewProxy("editor")

	assert.Equal(t, "editor", p1.Owner())
	assert.NotEmpty(t, p1.ID())
	assert.NotEqual(t, p1.ID(), p2.ID())
	assert.Equal(t, 0, p1.Len())
	assert.False(t, p1.IsClosed())
}

func TestSubscribe(t *testing.T) {
	t.Run("rejects nil callback", func(t *testing.T) {
		_, err := Subscribe[Notification](NewProxy("a"), NewBus(), "t", nil)
		assert.ErrorIs(t, err, ErrNilCallback)
	})

	t.Run("rejects empty topic without leaving an entry", func(t *testing.T) {
		p := NewProxy("a")
		_, err := Subscribe(p, NewBus(), "", func(any, Notification) {})
		assert.ErrorIs(t, err, ErrInvalidTopic)
		assert.Equal(t, 0, p.Len())
	})

	t.Run("rolls back entry when bus rejects", func(t *testing.T) {
		b := NewBus()
		b.Close()
		p := NewProxy("a")

		_, err := Subscribe(p, b, "t", func(any, Notification) {})

		assert.ErrorIs(t, err, ErrBusClosed)
		assert.Equal(t, 0, p.Len())
	})

	t.Run("rejects closed proxy", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		p.Close()

		_, err := Subscribe(p, b, "t", func(any, Notification) {})

		assert.ErrorIs(t, err, ErrSubscriberClosed)
		assert.Equal(t, 0, p.Len())
		assert.Equal(t, 0, b.SubscriberCount("t"))
		assert.Empty(t, b.Topics())
	})

	t.Run("returns distinct tokens", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		t1, err := Subscribe(p, b, "t", func(any, Notification) {})
		require.NoError(t, err)
		t2, err := Subscribe(p, b, "t", func(any, Notification) {})
		require.NoError(t, err)

		assert.NotEqual(t, t1, t2)
		assert.Equal(t, 2, p.Len())
		assert.Equal(t, 1, b.SubscriberCount("t"))
	})
}

func TestProxyDispatch(t *testing.T) {
	t.Run("invokes all matching entries in order", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		var calls []string
		_, err := Subscribe(p, b, "t", func(any, Outgoing[int]) { calls = append(calls, "first") })
		require.NoError(t, err)
		_, err = Subscribe(p, b, "t", func(any, Notification) { calls = append(calls, "plain") })
		require.NoError(t, err)
		_, err = Subscribe(p, b, "t", func(any, Outgoing[int]) { calls = append(calls, "second") })
		require.NoError(t, err)

		n := p.Dispatch(nil, "t", NewOutgoing("x", 1))

		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("filters by topic", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		_, err := Subscribe(p, b, "t", func(any, Notification) {})
		require.NoError(t, err)

		assert.Equal(t, 0, p.Dispatch(nil, "other", NewNotification("x")))
	})

	t.Run("closed proxy dispatches nothing", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		_, err := Subscribe(p, b, "t", func(any, Notification) { t.Error("should not be called") })
		require.NoError(t, err)

		p.Close()
		p.Close()

		assert.True(t, p.IsClosed())
		assert.Equal(t, 0, p.Len())
		assert.Equal(t, 0, p.Dispatch(nil, "t", NewNotification("x")))
	})

	t.Run("callback may unsubscribe itself", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		var calls int
		_, err := Subscribe(p, b, "t", func(any, Notification) {
			calls++
			p.Unsubscribe(b, "t", ShapeOf[Notification]())
		})
		require.NoError(t, err)

		require.NoError(t, b.Publish("t", nil, NewNotification("1")))
		require.NoError(t, b.Publish("t", nil, NewNotification("2")))

		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, b.SubscriberCount("t"))
	})
}

func TestProxyUnsubscribe(t *testing.T) {
	t.Run("keeps topic registered while other shapes remain", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		_, err := Subscribe(p, b, "t", func(any, Notification) {})
		require.NoError(t, err)
		_, err = Subscribe(p, b, "t", func(any, Outgoing[string]) {})
		require.NoError(t, err)

		p.Unsubscribe(b, "t", ShapeOf[Notification]())

		assert.Equal(t, 1, p.Len())
		assert.Equal(t, 1, b.SubscriberCount("t"))

		p.Unsubscribe(b, "t", ShapeOf[Outgoing[string]]())

		assert.Equal(t, 0, p.Len())
		assert.Equal(t, 0, b.SubscriberCount("t"))
	})

	t.Run("cancel removes a single entry", func(t *testing.T) {
		b := NewBus()
		p := NewProxy("a")
		var calls []int
		t1, err := Subscribe(p, b, "t", func(any, Notification) { calls = append(calls, 1) })
		require.NoError(t, err)
		t2, err := Subscribe(p, b, "t", func(any, Notification) { calls = append(calls, 2) })
		require.NoError(t, err)

		p.Cancel(b, t1)
		require.NoError(t, b.Publish("t", nil, NewNotification("x")))
		assert.Equal(t, []int{2}, calls)

		p.Cancel(b, t2)
		assert.Empty(t, b.Topics())
	})
}
