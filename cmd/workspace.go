package cmd

import (
	"fmt"

	"github.com/guilhermegouw/bindery/internal/config"
	"github.com/guilhermegouw/bindery/internal/debug"
	"github.com/guilhermegouw/bindery/internal/edit"
	"github.com/guilhermegouw/bindery/internal/events"
	"github.com/guilhermegouw/bindery/internal/pubsub"
	"github.com/guilhermegouw/bindery/internal/viewmodel"
)

// workspace is the set of components every command runs against.
type workspace struct {
	hub    *pubsub.Hub
	list   *viewmodel.CustomerList
	editor *viewmodel.CustomerEditor
	status *viewmodel.StatusBar
}

var seedCustomers = []events.Customer{
	events.NewCustomer(1, "John Doe", "john@example.com"),
	events.NewCustomer(2, "Ada Lovelace", "ada@example.com"),
	events.NewCustomer(3, "Grace Hopper", "grace@example.com"),
}

func newWorkspace(cfg *config.Config) (*workspace, error) {
	log := debug.Logger()
	hub := pubsub.NewHub(pubsub.HubConfig{
		Name:          cfg.BusName(),
		RecoverPanics: cfg.RecoverPanics(),
		Logger:        log,
	})

	list, err := viewmodel.NewCustomerList(hub.Bus, log)
	if err != nil {
		hub.Shutdown()
		return nil, fmt.Errorf("creating customer list: %w", err)
	}

	excluded := append(append([]string{}, edit.DefaultExcluded...), cfg.ExcludedProperties()...)
	editor, err := viewmodel.NewCustomerEditor(hub.Bus,
		viewmodel.WithEditorLogger(log),
		viewmodel.WithEditorExcluded(excluded...),
	)
	if err != nil {
		hub.Shutdown()
		return nil, fmt.Errorf("creating customer editor: %w", err)
	}

	status, err := viewmodel.NewStatusBar(hub.Bus, log)
	if err != nil {
		hub.Shutdown()
		return nil, fmt.Errorf("creating status bar: %w", err)
	}

	for _, c := range seedCustomers {
		list.Add(c)
	}

	return &workspace{hub: hub, list: list, editor: editor, status: status}, nil
}

func (w *workspace) close() {
	w.hub.Bus.Wait()
	w.hub.Shutdown()
}
