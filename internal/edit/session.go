// Package edit implements begin/commit/cancel edit sessions over observable
// entities.
//
// A Session starts Clean with Current returning the original entity.
// BeginEdit stages a clone and points Current at it; EndEdit copies the
// staged values onto the original, CancelEdit discards them, and both return
// the session to Clean. Beginning twice, or ending/cancelling while clean,
// does nothing.
//
// Sessions are not safe for concurrent use.
package edit

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/rs/zerolog"

	"github.com/guilhermegouw/bindery/internal/observable"
)

// Property names raised by a Session.
const (
	PropIsEditing = "IsEditing"
	PropIsDirty   = "IsDirty"
)

// DefaultExcluded lists meta-properties ignored by the dirty check.
var DefaultExcluded = []string{
	observable.PropHasErrors,
	"Errors",
	"IsBusy",
	PropIsEditing,
	PropIsDirty,
}

// Option configures a Session.
type Option[T observable.Entity[T]] func(*Session[T])

// WithExcluded replaces the meta-property exclusion set.
func WithExcluded[T observable.Entity[T]](names ...string) Option[T] {
	return func(s *Session[T]) {
		s.excluded = make(map[string]struct{}, len(names))
		for _, n := range names {
			s.excluded[n] = struct{}{}
		}
	}
}

// OnBegin sets a hook run after a transaction starts. It receives the staged clone.
func OnBegin[T observable.Entity[T]](fn func(staged T)) Option[T] {
	return func(s *Session[T]) { s.onBegin = fn }
}

// OnEnd sets a hook run after a commit. It receives the updated original.
func OnEnd[T observable.Entity[T]](fn func(original T)) Option[T] {
	return func(s *Session[T]) { s.onEnd = fn }
}

// OnCancel sets a hook run after a cancel. It receives the untouched original.
func OnCancel[T observable.Entity[T]](fn func(original T)) Option[T] {
	return func(s *Session[T]) { s.onCancel = fn }
}

// WithLogger sets the logger.
func WithLogger[T observable.Entity[T]](log zerolog.Logger) Option[T] {
	return func(s *Session[T]) { s.log = log }
}

// Session is the edit transaction state machine for one entity.
type Session[T observable.Entity[T]] struct { //nolint:govet // fieldalignment: preserving logical field order
	original T
	staged   T
	hasOrig  bool
	editing  bool
	dirtySub observable.Subscription

	excluded map[string]struct{}
	notifier observable.Notifier
	log      zerolog.Logger

	onBegin  func(T)
	onEnd    func(T)
	onCancel func(T)
}

// New creates a clean session with no entity.
func New[T observable.Entity[T]](opts ...Option[T]) *Session[T] {
	s := &Session[T]{log: zerolog.Nop()}
	WithExcluded[T](DefaultExcluded...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewWith creates a clean session over entity.
func NewWith[T observable.Entity[T]](entity T, opts ...Option[T]) *Session[T] {
	s := New(opts...)
	s.Set(entity)
	return s
}

// Set replaces the original entity, cancelling any active transaction.
func (s *Session[T]) Set(entity T) {
	s.CancelEdit()
	s.original = entity
	s.hasOrig = !isNil(entity)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Original returns the committed entity regardless of state.
func (s *Session[T]) Original() T {
	return s.original
}

// Current returns the staged clone while editing and the original otherwise.
func (s *Session[T]) Current() T {
	if s.editing {
		return s.staged
	}
	return s.original
}

// IsEditing reports whether a transaction is active.
func (s *Session[T]) IsEditing() bool {
	return s.editing
}

// IsDirty reports whether the staged clone differs from the original on any
// property outside the exclusion set. It is false while clean.
func (s *Session[T]) IsDirty() bool {
	if !s.editing {
		return false
	}
	return !observable.Equal(s.staged.Properties(), s.original.Properties(), s.excluded)
}

// Fingerprint returns the combined hash of the current entity's
// non-excluded properties. Comparing fingerprints is a cheaper, collision
// prone alternative to IsDirty.
func (s *Session[T]) Fingerprint() uint64 {
	if !s.hasOrig {
		return 0
	}
	return observable.Fingerprint(s.Current().Properties(), s.excluded)
}

// Excluded returns the meta-properties ignored by the dirty check, sorted.
func (s *Session[T]) Excluded() []string {
	return slices.Sorted(maps.Keys(s.excluded))
}

// OnPropertyChanged subscribes fn to the session's IsEditing and IsDirty
// notifications.
func (s *Session[T]) OnPropertyChanged(fn func(name string)) observable.Subscription {
	return s.notifier.OnPropertyChanged(fn)
}

// BeginEdit stages a clone of the original. It returns ErrInvalidState when
// no entity is set and does nothing while already editing.
func (s *Session[T]) BeginEdit() error {
	if !s.hasOrig || isNil(s.original) {
		return fmt.Errorf("begin edit: no entity set: %w", ErrInvalidState)
	}
	if s.editing {
		return nil
	}

	s.staged = s.original.Clone()
	s.dirtySub = s.staged.OnPropertyChanged(func(name string) {
		if _, skip := s.excluded[name]; skip {
			return
		}
		s.notifier.NotifyPropertyChanged(PropIsDirty)
	})
	s.editing = true
	s.log.Debug().Msg("edit started")

	s.raise()
	if s.onBegin != nil {
		s.onBegin(s.staged)
	}
	return nil
}

// EndEdit commits the staged values onto the original.
func (s *Session[T]) EndEdit() {
	if !s.editing {
		return
	}
	s.staged.CopyValuesTo(s.original)
	s.finish()
	s.log.Debug().Msg("edit committed")

	s.raise()
	if s.onEnd != nil {
		s.onEnd(s.original)
	}
}

// CancelEdit discards the staged clone.
func (s *Session[T]) CancelEdit() {
	if !s.editing {
		return
	}
	s.finish()
	s.log.Debug().Msg("edit cancelled")

	s.raise()
	if s.onCancel != nil {
		s.onCancel(s.original)
	}
}

func (s *Session[T]) finish() {
	s.dirtySub.Unsubscribe()
	s.dirtySub = observable.Subscription{}
	var zero T
	s.staged = zero
	s.editing = false
}

func (s *Session[T]) raise() {
	s.notifier.NotifyPropertyChanged(PropIsEditing)
	s.notifier.NotifyPropertyChanged(PropIsDirty)
}
