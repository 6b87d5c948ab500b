package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeText(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want string
	}{
		{"plain", NewNotification("a"), "a"},
		{"outgoing", NewOutgoing("b", 1), "b"},
		{"round trip", NewRoundTrip[int, int]("c", 1, nil), "c"},
		{"empty message", Notification{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.env.Text())
		})
	}
}

func TestShape(t *testing.T) {
	t.Run("type arguments are part of the shape", func(t *testing.T) {
		assert.Equal(t, ShapeOf[Outgoing[int]](), shapeOf(NewOutgoing("", 1)))
		assert.NotEqual(t, ShapeOf[Outgoing[int]](), ShapeOf[Outgoing[string]]())
		assert.NotEqual(t, ShapeOf[Outgoing[int]](), ShapeOf[RoundTrip[int, int]]())
		assert.NotEqual(t, ShapeOf[Notification](), ShapeOf[Outgoing[int]]())
	})

	t.Run("string names the type", func(t *testing.T) {
		assert.Equal(t, "pubsub.Notification", ShapeOf[Notification]().String())
		assert.Equal(t, "<nil>", Shape{}.String())
	})
}

func TestRoundTripRespond(t *testing.T) {
	t.Run("nil reply is ignored", func(t *testing.T) {
		rt := NewRoundTrip[string, int]("q", "x", nil)
		assert.NotPanics(t, func() { rt.Respond(1) })
	})

	t.Run("reply receives value", func(t *testing.T) {
		var got int
		rt := NewRoundTrip("q", "x", func(v int) { got = v })
		rt.Respond(7)
		assert.Equal(t, 7, got)
	})
}
