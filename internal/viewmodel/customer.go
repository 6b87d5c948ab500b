package viewmodel

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/guilhermegouw/bindery/internal/events"
	"github.com/guilhermegouw/bindery/internal/models"
	"github.com/guilhermegouw/bindery/internal/pubsub"
)

// CustomerEditor edits one customer at a time. It loads customers announced
// on TopicCustomerSelected and, when a commit changed anything, publishes
// the new values on TopicCustomerUpdated.
type CustomerEditor struct {
	Editable[*models.Customer]
}

// EditorOption configures a CustomerEditor.
type EditorOption func(*editorConfig)

type editorConfig struct {
	name     string
	log      zerolog.Logger
	hooks    Hooks[*models.Customer]
	excluded []string
}

// WithEditorName overrides the component name.
func WithEditorName(name string) EditorOption {
	return func(c *editorConfig) { c.name = name }
}

// WithEditorLogger sets the logger.
func WithEditorLogger(log zerolog.Logger) EditorOption {
	return func(c *editorConfig) { c.log = log }
}

// WithEditorHooks installs edit extension hooks.
func WithEditorHooks(h Hooks[*models.Customer]) EditorOption {
	return func(c *editorConfig) { c.hooks = h }
}

// WithEditorExcluded replaces the properties ignored by the dirty check.
func WithEditorExcluded(names ...string) EditorOption {
	return func(c *editorConfig) { c.excluded = names }
}

// NewCustomerEditor creates an editor bound to bus.
func NewCustomerEditor(bus *pubsub.Bus, opts ...EditorOption) (*CustomerEditor, error) {
	cfg := editorConfig{name: "customer-editor", log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &CustomerEditor{}
	hooks := cfg.hooks
	userEnd := hooks.OnEndEdit
	hooks.OnEndEdit = func(c *models.Customer) {
		e.committed(c)
		if userEnd != nil {
			userEnd(c)
		}
	}
	e.initEditable(cfg.name, "customer", bus, e, cfg.log, hooks, cfg.excluded)

	if _, err := Listen(&e.Base, events.TopicCustomerSelected, e.onSelected); err != nil {
		return nil, fmt.Errorf("listening for selections: %w", err)
	}
	return e, nil
}

// Load replaces the edited customer.
func (e *CustomerEditor) Load(c *models.Customer) {
	e.SetEntity(c)
	e.NotifyPropertyChanged("Entity")
}

func (e *CustomerEditor) onSelected(_ any, env pubsub.Outgoing[events.Customer]) {
	d := env.Data
	e.Load(models.NewCustomer(d.ID, d.Name, d.Email))
}

func (e *CustomerEditor) committed(c *models.Customer) {
	if !e.committing {
		return
	}
	if err := e.Publish(events.TopicCustomerUpdated,
		pubsub.NewOutgoing("customer updated", events.CustomerFromModel(c))); err != nil {
		e.log.Error().Err(err).Int64("customer", c.ID()).Msg("publishing customer update")
	}
}

// CustomerList keeps the latest snapshot of every customer it has heard
// about and answers lookups on TopicCustomerLookup.
type CustomerList struct {
	Base

	mu        sync.RWMutex
	customers map[int64]events.Customer
	updates   int
	lastFrom  any
}

// NewCustomerList creates a list bound to bus.
func NewCustomerList(bus *pubsub.Bus, log zerolog.Logger) (*CustomerList, error) {
	l := &CustomerList{customers: make(map[int64]events.Customer)}
	l.init("customer-list", bus, l, log)

	if _, err := Listen(&l.Base, events.TopicCustomerUpdated, l.onUpdated); err != nil {
		return nil, fmt.Errorf("listening for updates: %w", err)
	}
	if _, err := Listen(&l.Base, events.TopicCustomerLookup, l.onLookup); err != nil {
		return nil, fmt.Errorf("listening for lookups: %w", err)
	}
	return l, nil
}

// Add stores a customer snapshot without publishing.
func (l *CustomerList) Add(c events.Customer) {
	l.mu.Lock()
	l.customers[c.ID] = c
	l.mu.Unlock()
	l.NotifyPropertyChanged("Customers")
}

// Get returns the snapshot for id.
func (l *CustomerList) Get(id int64) (events.Customer, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.customers[id]
	return c, ok
}

// Len returns the number of known customers.
func (l *CustomerList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.customers)
}

// IDs returns the known customer IDs in ascending order.
func (l *CustomerList) IDs() []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.customers))
}

// Updates returns how many update envelopes were received.
func (l *CustomerList) Updates() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.updates
}

// LastSender returns the sender of the most recent update.
func (l *CustomerList) LastSender() any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastFrom
}

// Select announces a customer on TopicCustomerSelected.
func (l *CustomerList) Select(id int64) error {
	c, ok := l.Get(id)
	if !ok {
		return fmt.Errorf("customer %d not found", id)
	}
	return l.Publish(events.TopicCustomerSelected, pubsub.NewOutgoing("customer selected", c))
}

func (l *CustomerList) onUpdated(sender any, env pubsub.Outgoing[events.Customer]) {
	l.mu.Lock()
	l.customers[env.Data.ID] = env.Data
	l.updates++
	l.lastFrom = sender
	l.mu.Unlock()
	l.NotifyPropertyChanged("Customers")
}

func (l *CustomerList) onLookup(_ any, env pubsub.RoundTrip[int64, *events.Customer]) {
	c, ok := l.Get(env.Data)
	if !ok {
		env.Respond(nil)
		return
	}
	env.Respond(&c)
}

// Lookup asks whoever serves TopicCustomerLookup for customer id.
func Lookup(bus *pubsub.Bus, sender any, id int64) (*events.Customer, error) {
	var found *events.Customer
	err := bus.Publish(events.TopicCustomerLookup, sender,
		pubsub.NewRoundTrip("lookup", id, func(c *events.Customer) {
			if c != nil {
				found = c
			}
		}))
	if err != nil {
		return nil, fmt.Errorf("looking up customer %d: %w", id, err)
	}
	return found, nil
}
