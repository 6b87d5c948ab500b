// Package pubsub provides an in-process, topic-keyed message bus whose
// registry holds subscribers weakly.
package pubsub

import (
	"reflect"
)

// Envelope is a notification delivered on a topic. The concrete Go type of
// the envelope, type arguments included, is its shape: callbacks only see
// envelopes of the exact shape they subscribed for.
type Envelope interface {
	Text() string
}

// Notification is the plain envelope shape carrying only a message.
type Notification struct {
	Message string
}

// Text returns the envelope message.
func (n Notification) Text() string { return n.Message }

// Outgoing carries a message and a typed payload.
type Outgoing[T any] struct {
	Message string
	Data    T
}

// Text returns the envelope message.
func (o Outgoing[T]) Text() string { return o.Message }

// RoundTrip carries a payload plus an optional reply callback the receiver
// may invoke with a result.
type RoundTrip[T, U any] struct {
	Message string
	Data    T
	Reply   func(U)
}

// Text returns the envelope message.
func (r RoundTrip[T, U]) Text() string { return r.Message }

// Respond invokes the reply callback if one was supplied.
func (r RoundTrip[T, U]) Respond(v U) {
	if r.Reply != nil {
		r.Reply(v)
	}
}

// NewNotification creates a plain envelope.
func NewNotification(message string) Notification {
	return Notification{Message: message}
}

// NewOutgoing creates an envelope carrying data.
func NewOutgoing[T any](message string, data T) Outgoing[T] {
	return Outgoing[T]{Message: message, Data: data}
}

// NewRoundTrip creates an envelope carrying data and a reply callback.
func NewRoundTrip[T, U any](message string, data T, reply func(U)) RoundTrip[T, U] {
	return RoundTrip[T, U]{Message: message, Data: data, Reply: reply}
}

// Shape identifies the concrete type of an envelope.
type Shape struct {
	t reflect.Type
}

// ShapeOf returns the shape of envelope type E. E should be a concrete
// type; an interface type never matches a published envelope.
func ShapeOf[E Envelope]() Shape {
	return Shape{t: reflect.TypeFor[E]()}
}

func shapeOf(env Envelope) Shape {
	return Shape{t: reflect.TypeOf(env)}
}

// String returns the Go type name of the shape.
func (s Shape) String() string {
	if s.t == nil {
		return "<nil>"
	}
	return s.t.String()
}
