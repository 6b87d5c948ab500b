// Package events defines the topics and payloads exchanged on the bus.
package events

import (
	"time"

	"github.com/guilhermegouw/bindery/internal/models"
)

// Topics used by the customer components.
const (
	TopicCustomerUpdated  = "customer-updated"
	TopicCustomerSelected = "customer-selected"
	TopicCustomerLookup   = "customer-lookup"
	TopicEditLifecycle    = "edit-lifecycle"
	TopicStatus           = "status"
)

// Customer is an immutable snapshot of a customer carried in envelopes.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Timestamp time.Time
}

// NewCustomer creates a customer payload.
func NewCustomer(id int64, name, email string) Customer {
	return Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		Timestamp: time.Now(),
	}
}

// CustomerFromModel snapshots a customer entity.
func CustomerFromModel(c *models.Customer) Customer {
	return NewCustomer(c.ID(), c.Name(), c.Email())
}
