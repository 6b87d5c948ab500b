// Package bridge provides the connection between the bus and Bubble Tea.
package bridge

import (
	"github.com/guilhermegouw/bindery/internal/events"
)

// CustomerUpdatedMsg wraps a customer update for the TUI.
type CustomerUpdatedMsg struct {
	Customer events.Customer
	Sender   any
}

// EditEventMsg wraps an edit lifecycle event for the TUI.
type EditEventMsg struct {
	Event events.EditEvent
}

// StatusMsg carries a plain status notification.
type StatusMsg struct {
	Text string
}
