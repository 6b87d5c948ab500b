package events

import "time"

// EditEventType represents edit-session lifecycle event types.
type EditEventType string

// Edit event type constants.
const (
	EditEventStarted   EditEventType = "started"
	EditEventCommitted EditEventType = "committed"
	EditEventCancelled EditEventType = "cancelled"
)

// EditEvent describes a transition of an edit session owned by a component.
type EditEvent struct {
	Owner     string
	Entity    string
	EntityID  int64
	Type      EditEventType
	Dirty     bool
	Timestamp time.Time
}

// NewEditStartedEvent creates an edit started event.
func NewEditStartedEvent(owner, entity string, id int64) EditEvent {
	return EditEvent{
		Owner:     owner,
		Entity:    entity,
		EntityID:  id,
		Type:      EditEventStarted,
		Timestamp: time.Now(),
	}
}

// NewEditCommittedEvent creates an edit committed event. dirty reports
// whether the commit changed any tracked property.
func NewEditCommittedEvent(owner, entity string, id int64, dirty bool) EditEvent {
	return EditEvent{
		Owner:     owner,
		Entity:    entity,
		EntityID:  id,
		Type:      EditEventCommitted,
		Dirty:     dirty,
		Timestamp: time.Now(),
	}
}

// NewEditCancelledEvent creates an edit cancelled event.
func NewEditCancelledEvent(owner, entity string, id int64) EditEvent {
	return EditEvent{
		Owner:     owner,
		Entity:    entity,
		EntityID:  id,
		Type:      EditEventCancelled,
		Timestamp: time.Now(),
	}
}
