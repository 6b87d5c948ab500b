package viewmodel

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/guilhermegouw/bindery/internal/events"
	"github.com/guilhermegouw/bindery/internal/pubsub"
)

// StatusBar shows the latest plain notification published on TopicStatus.
type StatusBar struct {
	Base

	mu      sync.Mutex
	message string
}

// NewStatusBar creates a status bar bound to bus.
func NewStatusBar(bus *pubsub.Bus, log zerolog.Logger) (*StatusBar, error) {
	s := &StatusBar{}
	s.init("status-bar", bus, s, log)
	if _, err := Listen(&s.Base, events.TopicStatus, s.onStatus); err != nil {
		return nil, fmt.Errorf("listening for status: %w", err)
	}
	return s, nil
}

// Message returns the latest status message.
func (s *StatusBar) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *StatusBar) onStatus(_ any, env pubsub.Notification) {
	s.mu.Lock()
	s.message = env.Message
	s.mu.Unlock()
	s.NotifyPropertyChanged("Message")
}
