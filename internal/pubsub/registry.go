package pubsub

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"weak"
)

// registry maps topics to weak subscriber handles. A proxy appears at most
// once per topic and a topic with no handles has no entry.
type registry struct {
	topics map[string][]weak.Pointer[Proxy]
	mu     sync.Mutex
}

func newRegistry() *registry {
	return &registry{
		topics: make(map[string][]weak.Pointer[Proxy]),
	}
}

func alive(h weak.Pointer[Proxy]) (*Proxy, bool) {
	p := h.Value()
	if p == nil || p.IsClosed() {
		return nil, false
	}
	return p, true
}

// add inserts a handle for p under topic unless one is already present.
func (r *registry) add(topic string, p *Proxy) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.topics[topic] {
		if h.Value() == p {
			return false
		}
	}
	r.topics[topic] = append(r.topics[topic], weak.Make(p))
	return true
}

// remove deletes the handle for p under topic, if present.
func (r *registry) remove(topic string, p *Proxy) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	handles, ok := r.topics[topic]
	if !ok {
		return false
	}
	i := slices.IndexFunc(handles, func(h weak.Pointer[Proxy]) bool {
		return h.Value() == p
	})
	if i < 0 {
		return false
	}
	handles = slices.Delete(handles, i, i+1)
	if len(handles) == 0 {
		delete(r.topics, topic)
	} else {
		r.topics[topic] = handles
	}
	return true
}

// snapshot returns strong references to the live subscribers of topic in
// registration order.
func (r *registry) snapshot(topic string) []*Proxy {
	r.mu.Lock()
	defer r.mu.Unlock()

	handles := r.topics[topic]
	targets := make([]*Proxy, 0, len(handles))
	for _, h := range handles {
		if p, ok := alive(h); ok {
			targets = append(targets, p)
		}
	}
	return targets
}

// purge drops dead handles under topic and returns how many were removed.
func (r *registry) purge(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.purgeLocked(topic)
}

func (r *registry) purgeLocked(topic string) int {
	handles, ok := r.topics[topic]
	if !ok {
		return 0
	}
	live := slices.DeleteFunc(handles, func(h weak.Pointer[Proxy]) bool {
		_, ok := alive(h)
		return !ok
	})
	removed := len(handles) - len(live)
	if len(live) == 0 {
		delete(r.topics, topic)
	} else {
		r.topics[topic] = live
	}
	return removed
}

// purgeAll sweeps every topic and returns the removals per topic. Topics
// with nothing to remove are omitted.
func (r *registry) purgeAll() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := make(map[string]int)
	for topic := range r.topics {
		if n := r.purgeLocked(topic); n > 0 {
			removed[topic] = n
		}
	}
	return removed
}

// count returns the number of live subscribers for topic.
func (r *registry) count(topic string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, h := range r.topics[topic] {
		if _, ok := alive(h); ok {
			n++
		}
	}
	return n
}

// list returns the registered topics in sorted order.
func (r *registry) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	topics := make([]string, 0, len(r.topics))
	for topic := range r.topics {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	return topics
}

func (r *registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.topics)
}

// debugString returns a formatted dump of every topic and its handles.
func (r *registry) debugString(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	topics := make([]string, 0, len(r.topics))
	for topic := range r.topics {
		topics = append(topics, topic)
	}
	slices.Sort(topics)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== Bus %s (%d topics) ===\n", name, len(topics)))
	for _, topic := range topics {
		live, dead := 0, 0
		var owners []string
		for _, h := range r.topics[topic] {
			p, ok := alive(h)
			if !ok {
				dead++
				continue
			}
			live++
			owners = append(owners, p.Owner())
		}
		sb.WriteString(fmt.Sprintf("  %s: live=%d, dead=%d [%s]\n",
			topic, live, dead, strings.Join(owners, ", ")))
	}
	return sb.String()
}
