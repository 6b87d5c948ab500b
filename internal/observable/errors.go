package observable

import (
	"slices"
	"sync"
)

// PropHasErrors is raised on the owner when the aggregate error flag flips.
const PropHasErrors = "HasErrors"

// ErrorSet holds validation errors keyed by property name.
type ErrorSet struct {
	mu      sync.Mutex
	errors  map[string][]string
	owner   *Notifier
	changed Notifier
}

// NewErrorSet creates an empty set that raises HasErrors on owner. owner may
// be nil.
func NewErrorSet(owner *Notifier) *ErrorSet {
	return &ErrorSet{
		errors: make(map[string][]string),
		owner:  owner,
	}
}

// Add records msg against name. Duplicate messages are ignored.
func (s *ErrorSet) Add(name, msg string) {
	s.mu.Lock()
	if slices.Contains(s.errors[name], msg) {
		s.mu.Unlock()
		return
	}
	had := len(s.errors) > 0
	s.errors[name] = append(s.errors[name], msg)
	s.mu.Unlock()

	s.raise(name, had)
}

// Remove drops msg from name.
func (s *ErrorSet) Remove(name, msg string) {
	s.mu.Lock()
	msgs := s.errors[name]
	i := slices.Index(msgs, msg)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	had := len(s.errors) > 0
	msgs = slices.Delete(msgs, i, i+1)
	if len(msgs) == 0 {
		delete(s.errors, name)
	} else {
		s.errors[name] = msgs
	}
	s.mu.Unlock()

	s.raise(name, had)
}

// Clear drops every error for name.
func (s *ErrorSet) Clear(name string) {
	s.mu.Lock()
	if _, ok := s.errors[name]; !ok {
		s.mu.Unlock()
		return
	}
	had := len(s.errors) > 0
	delete(s.errors, name)
	s.mu.Unlock()

	s.raise(name, had)
}

// Replace sets the errors for name to msgs; no msgs clears them.
func (s *ErrorSet) Replace(name string, msgs ...string) {
	s.mu.Lock()
	if slices.Equal(s.errors[name], msgs) {
		s.mu.Unlock()
		return
	}
	had := len(s.errors) > 0
	if len(msgs) == 0 {
		delete(s.errors, name)
	} else {
		s.errors[name] = slices.Clone(msgs)
	}
	s.mu.Unlock()

	s.raise(name, had)
}

// ErrorsFor returns a copy of the errors recorded for name.
func (s *ErrorSet) ErrorsFor(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.errors[name])
}

// HasErrors reports whether any property has errors.
func (s *ErrorSet) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors) > 0
}

// OnErrorsChanged subscribes fn to per-property error changes.
func (s *ErrorSet) OnErrorsChanged(fn func(name string)) Subscription {
	return s.changed.OnPropertyChanged(fn)
}

func (s *ErrorSet) raise(name string, had bool) {
	s.changed.NotifyPropertyChanged(name)
	if s.owner != nil && had != s.HasErrors() {
		s.owner.NotifyPropertyChanged(PropHasErrors)
	}
}
