package viewmodel

import (
	"github.com/rs/zerolog"

	"github.com/guilhermegouw/bindery/internal/edit"
	"github.com/guilhermegouw/bindery/internal/events"
	"github.com/guilhermegouw/bindery/internal/observable"
	"github.com/guilhermegouw/bindery/internal/pubsub"
)

// Identified is an observable entity with a numeric identity.
type Identified[T any] interface {
	observable.Entity[T]
	ID() int64
}

// Hooks are extension points run after each edit transition. Nil hooks are
// skipped.
type Hooks[T any] struct {
	OnBeginEdit  func(staged T)
	OnEndEdit    func(original T)
	OnCancelEdit func(original T)
}

// Editable is a component that exposes an entity through an edit session and
// announces transitions on events.TopicEditLifecycle.
type Editable[T Identified[T]] struct {
	Base

	entity  string
	session *edit.Session[T]
	hooks   Hooks[T]

	// dirty state captured just before a commit
	committing bool
}

func (e *Editable[T]) initEditable(name, entity string, bus *pubsub.Bus, self any, log zerolog.Logger, hooks Hooks[T], excluded []string) {
	e.init(name, bus, self, log)
	e.entity = entity
	e.hooks = hooks

	opts := []edit.Option[T]{
		edit.WithLogger[T](e.log),
		edit.OnBegin(e.began),
		edit.OnEnd(e.ended),
		edit.OnCancel(e.cancelled),
	}
	if excluded != nil {
		opts = append(opts, edit.WithExcluded[T](excluded...))
	}
	e.session = edit.New(opts...)

	// Re-raise the session's state flags as the component's own properties.
	e.session.OnPropertyChanged(e.NotifyPropertyChanged)
}

// Session exposes the underlying edit session.
func (e *Editable[T]) Session() *edit.Session[T] {
	return e.session
}

// Entity returns the live entity: the staged clone while editing.
func (e *Editable[T]) Entity() T {
	return e.session.Current()
}

// SetEntity replaces the entity, discarding any active edit.
func (e *Editable[T]) SetEntity(entity T) {
	e.session.Set(entity)
}

// IsEditing reports whether a transaction is active.
func (e *Editable[T]) IsEditing() bool {
	return e.session.IsEditing()
}

// IsDirty reports whether staged values differ from the original.
func (e *Editable[T]) IsDirty() bool {
	return e.session.IsDirty()
}

// BeginEdit starts a transaction.
func (e *Editable[T]) BeginEdit() error {
	return e.session.BeginEdit()
}

// EndEdit commits the transaction.
func (e *Editable[T]) EndEdit() {
	e.committing = e.session.IsDirty()
	e.session.EndEdit()
	e.committing = false
}

// CancelEdit discards the transaction.
func (e *Editable[T]) CancelEdit() {
	e.session.CancelEdit()
}

func (e *Editable[T]) began(staged T) {
	e.announce(events.NewEditStartedEvent(e.name, e.entity, staged.ID()))
	if e.hooks.OnBeginEdit != nil {
		e.hooks.OnBeginEdit(staged)
	}
}

func (e *Editable[T]) ended(original T) {
	e.announce(events.NewEditCommittedEvent(e.name, e.entity, original.ID(), e.committing))
	if e.hooks.OnEndEdit != nil {
		e.hooks.OnEndEdit(original)
	}
}

func (e *Editable[T]) cancelled(original T) {
	e.announce(events.NewEditCancelledEvent(e.name, e.entity, original.ID()))
	if e.hooks.OnCancelEdit != nil {
		e.hooks.OnCancelEdit(original)
	}
}

func (e *Editable[T]) announce(ev events.EditEvent) {
	err := e.PublishAsync(events.TopicEditLifecycle, pubsub.NewOutgoing(string(ev.Type), ev))
	if err != nil {
		e.log.Warn().Err(err).Str("event", string(ev.Type)).Msg("edit lifecycle not announced")
	}
}
