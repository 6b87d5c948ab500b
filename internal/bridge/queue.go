package bridge

import (
	"sync"

	tea "charm.land/bubbletea/v2"
)

// Queue is a Sender that never blocks the caller. Messages are handed to the
// wrapped Sender in order on a single goroutine. Put one in front of a
// program whose Update loop publishes on the bus.
type Queue struct {
	out Sender

	mu      sync.Mutex
	pending []tea.Msg
	closed  bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// NewQueue starts a queue in front of out.
func NewQueue(out Sender) *Queue {
	q := &Queue{
		out:  out,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// Send enqueues msg. Messages sent after Close are dropped.
func (q *Queue) Send(msg tea.Msg) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, msg)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Close flushes pending messages and stops the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	close(q.done)
	q.wg.Wait()
}

func (q *Queue) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.wake:
			q.drain()
		case <-q.done:
			q.drain()
			return
		}
	}
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, msg := range batch {
			q.out.Send(msg)
		}
	}
}
