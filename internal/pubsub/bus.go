package pubsub

import (
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/guilhermegouw/bindery/internal/metrics"
)

// DefaultBusName is used when no name is configured.
const DefaultBusName = "default"

// PanicPolicy controls what a synchronous publish does with a callback panic.
type PanicPolicy int

const (
	// PanicPropagate returns recovered panics to the publisher as errors.
	PanicPropagate PanicPolicy = iota
	// PanicRecover logs recovered panics and reports success.
	PanicRecover
)

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithName sets the bus name used in logs and metrics.
func WithName(name string) BusOption {
	return func(b *Bus) {
		if name != "" {
			b.name = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) BusOption {
	return func(b *Bus) {
		b.log = log
	}
}

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *metrics.BusMetrics) BusOption {
	return func(b *Bus) {
		b.metrics = m
	}
}

// WithPanicPolicy sets how synchronous publishes handle callback panics.
func WithPanicPolicy(p PanicPolicy) BusOption {
	return func(b *Bus) {
		b.panicPolicy = p
	}
}

// Bus is a process-wide, topic-keyed subscription registry. It holds
// subscriber proxies weakly: a proxy whose owner is gone, or which was
// closed, is purged after the next dispatch on its topic.
//
// Dispatch always happens outside the registry lock, so callbacks may
// register, unregister or publish. A proxy registered after a publish took
// its snapshot does not receive that publish.
type Bus struct { //nolint:govet // fieldalignment: preserving logical field order
	name        string
	reg         *registry
	log         zerolog.Logger
	metrics     *metrics.BusMetrics
	panicPolicy PanicPolicy
	inflight    sync.WaitGroup
	closed      atomic.Bool
	// lifecycle orders the closed check and inflight.Add against Close.
	lifecycle sync.RWMutex

	// Stats (atomic for lock-free reads)
	publishCount   atomic.Int64
	deliveredCount atomic.Int64
	shapeDropCount atomic.Int64
	purgedCount    atomic.Int64
	panicCount     atomic.Int64
}

// NewBus creates a bus with optional configuration.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		name: DefaultBusName,
		reg:  newRegistry(),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With().Str("component", "bus").Str("bus", b.name).Logger()
	return b
}

// Name returns the bus name.
func (b *Bus) Name() string {
	return b.name
}

// Register adds a weak handle to p under topic. Registering the same proxy
// twice for a topic is a no-op.
func (b *Bus) Register(topic string, p *Proxy) error {
	b.lifecycle.RLock()
	defer b.lifecycle.RUnlock()

	if b.closed.Load() {
		return ErrBusClosed
	}
	if topic == "" {
		return ErrInvalidTopic
	}
	if p == nil {
		return ErrNilSubscriber
	}
	if p.IsClosed() {
		return ErrSubscriberClosed
	}
	if b.reg.add(topic, p) {
		b.log.Debug().Str("topic", topic).Str("owner", p.Owner()).Msg("subscriber registered")
	}
	return nil
}

// Unregister removes p from topic. It is a no-op if p is not registered.
func (b *Bus) Unregister(topic string, p *Proxy) {
	if p == nil {
		return
	}
	if b.reg.remove(topic, p) {
		b.log.Debug().Str("topic", topic).Str("owner", p.Owner()).Msg("subscriber unregistered")
	}
}

// Publish delivers env to every live subscriber of topic on the caller's
// goroutine, in registration order. A panicking callback does not stop
// delivery to the remaining subscribers; under PanicPropagate the recovered
// panics are returned joined as *PanicError values.
func (b *Bus) Publish(topic string, sender any, env Envelope) error {
	targets, err := b.prepare(topic, env)
	if err != nil {
		return err
	}
	defer b.purge(topic)

	var errs []error
	for _, p := range targets {
		if perr := b.deliver(p, topic, sender, env); perr != nil {
			if b.panicPolicy == PanicRecover {
				continue
			}
			errs = append(errs, perr)
		}
	}
	return errors.Join(errs...)
}

// PublishAsync schedules one dispatch per live subscriber and returns
// immediately. Dispatches are unordered; a panic in one is recovered and
// logged without affecting the others. Dead handles are purged once every
// scheduled dispatch has finished.
func (b *Bus) PublishAsync(topic string, sender any, env Envelope) error {
	b.lifecycle.RLock()
	targets, err := b.prepare(topic, env)
	if err != nil {
		b.lifecycle.RUnlock()
		return err
	}
	b.inflight.Add(len(targets) + 1)
	b.lifecycle.RUnlock()

	var pending sync.WaitGroup
	pending.Add(len(targets))
	for _, p := range targets {
		go func(p *Proxy) {
			defer b.inflight.Done()
			defer pending.Done()
			_ = b.deliver(p, topic, sender, env)
		}(p)
	}
	go func() {
		defer b.inflight.Done()
		pending.Wait()
		b.purge(topic)
	}()
	return nil
}

// BeginNotify is an alias for PublishAsync.
func (b *Bus) BeginNotify(topic string, sender any, env Envelope) error {
	return b.PublishAsync(topic, sender, env)
}

func (b *Bus) prepare(topic string, env Envelope) ([]*Proxy, error) {
	if b.closed.Load() {
		return nil, ErrBusClosed
	}
	if topic == "" {
		return nil, ErrInvalidTopic
	}
	if env == nil {
		return nil, ErrNilEnvelope
	}

	b.publishCount.Add(1)
	b.metrics.IncPublished(b.name, topic)
	return b.reg.snapshot(topic), nil
}

// deliver runs one proxy's dispatch, converting a panic into *PanicError.
// Recovered panics are always logged.
func (b *Bus) deliver(p *Proxy, topic string, sender any, env Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panicCount.Add(1)
			b.metrics.IncPanic(b.name, topic)
			perr := &PanicError{
				Topic: topic,
				Owner: p.Owner(),
				Value: r,
				Stack: string(debug.Stack()),
			}
			b.log.Error().
				Str("topic", topic).
				Str("owner", p.Owner()).
				Interface("panic", r).
				Msg("subscriber callback panicked")
			err = perr
		}
	}()

	n := p.Dispatch(sender, topic, env)
	if n == 0 {
		b.shapeDropCount.Add(1)
		b.metrics.IncShapeDrop(b.name, topic)
		return nil
	}
	b.deliveredCount.Add(int64(n))
	b.metrics.AddDelivered(b.name, topic, n)
	return nil
}

func (b *Bus) purge(topic string) {
	if n := b.reg.purge(topic); n > 0 {
		b.purgedCount.Add(int64(n))
		b.metrics.AddPurged(b.name, topic, n)
		b.log.Debug().Str("topic", topic).Int("purged", n).Msg("dead subscribers purged")
	}
}

// Purge sweeps every topic for dead handles and returns how many it removed.
func (b *Bus) Purge() int {
	n := 0
	for topic, removed := range b.reg.purgeAll() {
		n += removed
		b.metrics.AddPurged(b.name, topic, removed)
	}
	if n > 0 {
		b.purgedCount.Add(int64(n))
		b.log.Debug().Int("purged", n).Msg("dead subscribers purged")
	}
	return n
}

// Wait blocks until all asynchronous dispatches have finished. Publishes
// racing with Wait may or may not be waited for; use Close to fence them.
func (b *Bus) Wait() {
	b.inflight.Wait()
}

// Close rejects further registrations and publishes, waits for in-flight
// asynchronous dispatches and drops every handle.
func (b *Bus) Close() {
	b.lifecycle.Lock()
	already := b.closed.Swap(true)
	b.lifecycle.Unlock()
	if already {
		return
	}
	b.inflight.Wait()
	b.reg.reset()
}

// IsClosed returns true if the bus has been closed.
func (b *Bus) IsClosed() bool {
	return b.closed.Load()
}

// SubscriberCount returns the number of live subscribers for topic.
func (b *Bus) SubscriberCount(topic string) int {
	return b.reg.count(topic)
}

// Topics returns the topics that currently have handles.
func (b *Bus) Topics() []string {
	return b.reg.list()
}

// Stats returns the bus counters for debugging.
func (b *Bus) Stats() Stats {
	return Stats{
		Name:       b.name,
		Published:  b.publishCount.Load(),
		Delivered:  b.deliveredCount.Load(),
		ShapeDrops: b.shapeDropCount.Load(),
		Purged:     b.purgedCount.Load(),
		Panics:     b.panicCount.Load(),
		Topics:     len(b.reg.list()),
	}
}

// Stats contains bus counters for debugging.
type Stats struct {
	Name       string
	Published  int64
	Delivered  int64
	ShapeDrops int64
	Purged     int64
	Panics     int64
	Topics     int
}

// DebugString returns a formatted dump of the registry.
func (b *Bus) DebugString() string {
	return b.reg.debugString(b.name)
}
