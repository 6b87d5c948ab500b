// Package observable defines the contract an entity must satisfy to take
// part in edit sessions: property-changed notification, per-property
// validation errors, structural clone and value copy.
package observable

import (
	"sync"
)

// Subscription removes a handler when Unsubscribe is called. The zero value
// is valid and does nothing.
type Subscription struct {
	n  *Notifier
	id uint64
}

// Unsubscribe removes the handler. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.n != nil {
		s.n.remove(s.id)
	}
}

type handler struct {
	id uint64
	fn func(name string)
}

// Notifier is a property-changed channel. The zero value is ready to use.
// Handlers run synchronously in subscription order, outside the lock.
// A Notifier must not be copied after first use; clones get a fresh one.
type Notifier struct {
	mu       sync.Mutex
	next     uint64
	handlers []handler
}

// OnPropertyChanged subscribes fn to property-changed notifications.
func (n *Notifier) OnPropertyChanged(fn func(name string)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	n.next++
	n.handlers = append(n.handlers, handler{id: n.next, fn: fn})
	return Subscription{n: n, id: n.next}
}

// NotifyPropertyChanged raises a change for the named property.
func (n *Notifier) NotifyPropertyChanged(name string) {
	n.mu.Lock()
	fns := make([]func(string), len(n.handlers))
	for i, h := range n.handlers {
		fns[i] = h.fn
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(name)
	}
}

// HandlerCount returns the number of subscribed handlers.
func (n *Notifier) HandlerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.handlers)
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, h := range n.handlers {
		if h.id == id {
			n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
			return
		}
	}
}

// Set assigns v to *field and raises a change for name when the value
// differs. It reports whether the field changed.
func Set[V comparable](n *Notifier, field *V, v V, name string) bool {
	if *field == v {
		return false
	}
	*field = v
	n.NotifyPropertyChanged(name)
	return true
}
