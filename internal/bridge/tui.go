package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/guilhermegouw/bindery/internal/debug"
	"github.com/guilhermegouw/bindery/internal/events"
	"github.com/guilhermegouw/bindery/internal/pubsub"
)

const bridgeOwner = "tui-bridge"

// Sender is the part of *tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIBridge subscribes to bus topics and forwards envelopes to a Bubble Tea
// program as messages. It owns one proxy, so dropping or stopping the bridge
// releases every subscription.
type TUIBridge struct { //nolint:govet // fieldalignment: preserving logical field order
	bus     *pubsub.Bus
	program Sender
	proxy   *pubsub.Proxy

	mu      sync.RWMutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// Optional filters
	customerFilter int64 // Only forward events for this customer (0 = all)
}

// TUIBridgeOption configures the TUIBridge.
type TUIBridgeOption func(*TUIBridge)

// WithCustomerFilter only forwards events for the specified customer.
func WithCustomerFilter(id int64) TUIBridgeOption {
	return func(b *TUIBridge) {
		b.customerFilter = id
	}
}

// NewTUIBridge creates a new TUI bridge.
func NewTUIBridge(bus *pubsub.Bus, program Sender, opts ...TUIBridgeOption) *TUIBridge {
	b := &TUIBridge{
		bus:     bus,
		program: program,
		proxy:   pubsub.NewProxy(bridgeOwner),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Forward subscribes the bridge to envelopes of shape E on topic and sends
// convert's result to the program. A nil message from convert is skipped.
// Forwarding through a stopped bridge fails with pubsub.ErrSubscriberClosed
// until the next Start.
func Forward[E pubsub.Envelope](b *TUIBridge, topic string, convert func(sender any, env E) tea.Msg) error {
	_, err := pubsub.Subscribe(b.currentProxy(), b.bus, topic, func(sender any, env E) {
		if msg := convert(sender, env); msg != nil {
			b.program.Send(msg)
		}
	})
	return err
}

func (b *TUIBridge) currentProxy() *pubsub.Proxy {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.proxy
}

// Start begins forwarding the standard topics to the TUI. The bridge stops
// when ctx is done or Stop is called, and may be started again afterwards
// with a fresh set of subscriptions.
func (b *TUIBridge) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.started && !b.proxy.IsClosed() {
		b.mu.Unlock()
		return nil
	}
	if b.cancel != nil {
		b.cancel()
	}
	if b.proxy.IsClosed() {
		b.proxy = pubsub.NewProxy(bridgeOwner)
	}
	proxy := b.proxy
	b.started = true
	ctx, b.cancel = context.WithCancel(ctx)
	b.mu.Unlock()

	err := errors.Join(
		Forward(b, events.TopicCustomerUpdated, b.customerUpdated),
		Forward(b, events.TopicEditLifecycle, b.editEvent),
		Forward(b, events.TopicStatus, func(_ any, env pubsub.Notification) tea.Msg {
			return StatusMsg{Text: env.Message}
		}),
	)
	if err != nil {
		b.Stop()
		return fmt.Errorf("starting bridge: %w", err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		<-ctx.Done()
		proxy.Close()
	}()

	debug.Event("bridge", "start", "TUI bridge started")
	return nil
}

// Stop releases every subscription and waits for the context watcher to
// exit. Stopping an idle bridge does nothing.
func (b *TUIBridge) Stop() {
	b.mu.Lock()
	cancel, proxy := b.cancel, b.proxy
	b.cancel = nil
	b.started = false
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	b.wg.Wait()
	proxy.Close()
	debug.Event("bridge", "stop", "TUI bridge stopped")
}

func (b *TUIBridge) customerUpdated(sender any, env pubsub.Outgoing[events.Customer]) tea.Msg {
	if !b.accepts(env.Data.ID) {
		return nil
	}
	return CustomerUpdatedMsg{Customer: env.Data, Sender: sender}
}

func (b *TUIBridge) editEvent(_ any, env pubsub.Outgoing[events.EditEvent]) tea.Msg {
	if !b.accepts(env.Data.EntityID) {
		return nil
	}
	return EditEventMsg{Event: env.Data}
}

func (b *TUIBridge) accepts(id int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.customerFilter == 0 || b.customerFilter == id
}

// SetCustomerFilter updates the customer filter at runtime.
func (b *TUIBridge) SetCustomerFilter(id int64) {
	b.mu.Lock()
	b.customerFilter = id
	b.mu.Unlock()
}

// ClearCustomerFilter removes the customer filter.
func (b *TUIBridge) ClearCustomerFilter() {
	b.SetCustomerFilter(0)
}
