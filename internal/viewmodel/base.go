// Package viewmodel provides the binding components that sit between the
// bus, edit sessions and a UI layer.
package viewmodel

import (
	"github.com/rs/zerolog"

	"github.com/guilhermegouw/bindery/internal/observable"
	"github.com/guilhermegouw/bindery/internal/pubsub"
)

// Base is embedded by components that publish or receive notifications. It
// owns the component's subscriber proxy, created on first use. The bus only
// holds the proxy weakly, so subscriptions live exactly as long as the
// component does.
type Base struct { //nolint:govet // fieldalignment: preserving logical field order
	observable.Notifier

	name   string
	bus    *pubsub.Bus
	self   any
	proxy  *pubsub.Proxy
	log    zerolog.Logger
	closed bool
}

// init wires the base. self is the outer component, used as the sender of
// everything it publishes.
func (b *Base) init(name string, bus *pubsub.Bus, self any, log zerolog.Logger) {
	b.name = name
	b.bus = bus
	b.self = self
	b.log = log.With().Str("component", name).Logger()
}

// Name returns the component name.
func (b *Base) Name() string {
	return b.name
}

// Bus returns the bus the component talks to.
func (b *Base) Bus() *pubsub.Bus {
	return b.bus
}

// Proxy returns the component's subscriber proxy, creating it on first use.
func (b *Base) Proxy() *pubsub.Proxy {
	if b.proxy == nil {
		b.proxy = pubsub.NewProxy(b.name)
	}
	return b.proxy
}

// Publish delivers env synchronously with the component as sender.
func (b *Base) Publish(topic string, env pubsub.Envelope) error {
	return b.bus.Publish(topic, b.self, env)
}

// PublishAsync schedules delivery of env with the component as sender.
func (b *Base) PublishAsync(topic string, env pubsub.Envelope) error {
	return b.bus.PublishAsync(topic, b.self, env)
}

// Close drops every subscription the component holds.
func (b *Base) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.proxy != nil {
		b.proxy.Close()
	}
	b.log.Debug().Msg("component closed")
}

// Listen subscribes fn on the component's proxy for envelopes of shape E.
func Listen[E pubsub.Envelope](b *Base, topic string, fn func(sender any, env E)) (pubsub.Token, error) {
	return pubsub.Subscribe(b.Proxy(), b.bus, topic, fn)
}

// Ignore removes the component's callbacks for topic and shape E.
func Ignore[E pubsub.Envelope](b *Base, topic string) {
	if b.proxy == nil {
		return
	}
	b.proxy.Unsubscribe(b.bus, topic, pubsub.ShapeOf[E]())
}
