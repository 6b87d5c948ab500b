package pubsub

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Callback receives the sender and the envelope of a delivery.
type Callback func(sender any, env Envelope)

// Token identifies one subscription entry on a Proxy.
type Token uint64

type entry struct {
	token Token
	topic string
	shape Shape
	fn    Callback
}

// Proxy is the per-component subscriber registered with a Bus. The bus only
// holds it weakly; the proxy owns the component's callbacks. A proxy must not
// be shared between components, and the owning component keeps it alive by
// holding the pointer.
type Proxy struct { //nolint:govet // fieldalignment: preserving logical field order
	id      string
	owner   string
	mu      sync.Mutex
	entries []entry
	next    Token
	closed  atomic.Bool
}

// NewProxy creates a proxy for the named owner.
func NewProxy(owner string) *Proxy {
	return &Proxy{
		id:    uuid.New().String(),
		owner: owner,
	}
}

// ID returns the proxy's unique identifier.
func (p *Proxy) ID() string {
	return p.id
}

// Owner returns the name of the owning component.
func (p *Proxy) Owner() string {
	return p.owner
}

// Subscribe registers fn for envelopes of shape E on topic and registers the
// proxy with the bus. Registering the proxy for a topic it already serves is
// a no-op on the bus side.
func Subscribe[E Envelope](p *Proxy, b *Bus, topic string, fn func(sender any, env E)) (Token, error) {
	if fn == nil {
		return 0, ErrNilCallback
	}
	if p == nil {
		return 0, ErrNilSubscriber
	}
	if topic == "" {
		return 0, ErrInvalidTopic
	}
	if p.IsClosed() {
		return 0, ErrSubscriberClosed
	}

	tok := p.add(topic, ShapeOf[E](), func(sender any, env Envelope) {
		fn(sender, env.(E))
	})
	if err := b.Register(topic, p); err != nil {
		p.remove(func(e entry) bool { return e.token == tok })
		return 0, err
	}
	return tok, nil
}

func (p *Proxy) add(topic string, shape Shape, fn Callback) Token {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.next++
	p.entries = append(p.entries, entry{
		token: p.next,
		topic: topic,
		shape: shape,
		fn:    fn,
	})
	return p.next
}

// remove deletes matching entries and returns the topics they belonged to.
func (p *Proxy) remove(match func(entry) bool) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var topics []string
	kept := p.entries[:0]
	for _, e := range p.entries {
		if match(e) {
			topics = append(topics, e.topic)
			continue
		}
		kept = append(kept, e)
	}
	clear(p.entries[len(kept):])
	p.entries = kept
	return topics
}

func (p *Proxy) hasTopic(topic string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if e.topic == topic {
			return true
		}
	}
	return false
}

// releaseTopics unregisters the proxy from any topic it no longer serves.
func (p *Proxy) releaseTopics(b *Bus, topics []string) {
	for _, topic := range topics {
		if !p.hasTopic(topic) {
			b.Unregister(topic, p)
		}
	}
}

// Unsubscribe removes every entry for topic with the given shape. When no
// entry remains for the topic the proxy is unregistered from it.
func (p *Proxy) Unsubscribe(b *Bus, topic string, shape Shape) {
	removed := p.remove(func(e entry) bool {
		return e.topic == topic && e.shape == shape
	})
	p.releaseTopics(b, removed)
}

// Cancel removes the single entry identified by tok.
func (p *Proxy) Cancel(b *Bus, tok Token) {
	removed := p.remove(func(e entry) bool { return e.token == tok })
	p.releaseTopics(b, removed)
}

// Dispatch invokes, in registration order, every callback registered for the
// topic and the envelope's shape. Callbacks run outside the proxy lock. It
// returns the number of callbacks invoked.
func (p *Proxy) Dispatch(sender any, topic string, env Envelope) int {
	if p.closed.Load() {
		return 0
	}
	shape := shapeOf(env)

	p.mu.Lock()
	var matched []Callback
	for _, e := range p.entries {
		if e.topic == topic && e.shape == shape {
			matched = append(matched, e.fn)
		}
	}
	p.mu.Unlock()

	for _, fn := range matched {
		fn(sender, env)
	}
	return len(matched)
}

// Len returns the number of subscription entries.
func (p *Proxy) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Close drops every entry. Buses treat a closed proxy as dead and purge it.
func (p *Proxy) Close() {
	if p.closed.Swap(true) {
		return
	}
	p.mu.Lock()
	p.entries = nil
	p.mu.Unlock()
}

// IsClosed reports whether Close has been called.
func (p *Proxy) IsClosed() bool {
	return p.closed.Load()
}
