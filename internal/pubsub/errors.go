package pubsub

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bus.
var (
	// ErrInvalidTopic is returned when a topic is empty.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilSubscriber is returned when a nil proxy is registered.
	ErrNilSubscriber = errors.New("subscriber cannot be nil")

	// ErrNilCallback is returned when subscribing a nil callback.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrNilEnvelope is returned when publishing a nil envelope.
	ErrNilEnvelope = errors.New("envelope cannot be nil")

	// ErrSubscriberClosed is returned when subscribing through a closed proxy.
	ErrSubscriberClosed = errors.New("subscriber is closed")

	// ErrBusClosed is returned by operations on a closed bus.
	ErrBusClosed = errors.New("bus is closed")

	// ErrCallbackPanic matches any PanicError via errors.Is.
	ErrCallbackPanic = errors.New("callback panicked")
)

// PanicError wraps a value recovered from a subscriber callback.
type PanicError struct {
	Topic string
	Owner string
	Value any
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panic on topic %q (owner %s): %v", e.Topic, e.Owner, e.Value)
}

// Is allows errors.Is to match PanicError with ErrCallbackPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrCallbackPanic
}
