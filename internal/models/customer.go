// Package models provides observable domain entities.
//
// Entities embed an observable.Notifier for property-changed notification
// and keep validation errors in an observable.ErrorSet, so they can be
// staged and committed by an edit.Session.
//
// Example usage:
//
//	c := models.NewCustomer(1, "John Doe", "john@example.com")
//	c.SetName("")
//	fmt.Println(c.ErrorsFor(models.PropName)) // [name cannot be empty]
package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/guilhermegouw/bindery/internal/observable"
)

// Customer property names.
const (
	PropID        = "ID"
	PropName      = "Name"
	PropEmail     = "Email"
	PropCreatedAt = "CreatedAt"
	PropIsBusy    = "IsBusy"
)

// Validation errors for Customer.
var (
	// ErrEmptyEmail is returned when the email field is empty or whitespace-only.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when the email does not match RFC 5322 format.
	ErrInvalidEmail = errors.New("email format is invalid")

	// ErrEmptyName is returned when the name field is empty or whitespace-only.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNameTooShort is returned when the name is less than MinNameLength characters.
	ErrNameTooShort = errors.New("name must be at least 2 characters")

	// ErrNameTooLong is returned when the name exceeds MaxNameLength characters.
	ErrNameTooLong = errors.New("name cannot exceed 100 characters")

	// ErrInvalidName is returned when the name contains invalid characters.
	ErrInvalidName = errors.New("name contains invalid characters")
)

// Customer validation constants.
const (
	MinNameLength = 2
	MaxNameLength = 100
)

// Customer is an observable customer record. ID and CreatedAt are read-only;
// Name, Email and IsBusy have setters.
type Customer struct { //nolint:govet // fieldalignment: preserving logical field order
	observable.Notifier

	errs      *observable.ErrorSet
	id        int64
	name      string
	email     string
	createdAt time.Time
	busy      bool
}

// NewCustomer creates a customer and validates it.
func NewCustomer(id int64, name, email string) *Customer {
	c := &Customer{
		id:        id,
		name:      strings.TrimSpace(name),
		email:     strings.TrimSpace(email),
		createdAt: time.Now(),
	}
	c.errs = observable.NewErrorSet(&c.Notifier)
	c.Validate()
	return c
}

// ID returns the customer identifier.
func (c *Customer) ID() int64 { return c.id }

// Name returns the display name.
func (c *Customer) Name() string { return c.name }

// Email returns the email address.
func (c *Customer) Email() string { return c.email }

// CreatedAt returns the creation time.
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

// IsBusy reports whether a background operation is running for the customer.
func (c *Customer) IsBusy() bool { return c.busy }

// SetName updates the name and revalidates it.
func (c *Customer) SetName(name string) {
	if observable.Set(&c.Notifier, &c.name, strings.TrimSpace(name), PropName) {
		c.record(PropName, ValidateName(c.name))
	}
}

// SetEmail updates the email and revalidates it.
func (c *Customer) SetEmail(email string) {
	if observable.Set(&c.Notifier, &c.email, strings.TrimSpace(email), PropEmail) {
		c.record(PropEmail, ValidateEmail(c.email))
	}
}

// SetBusy updates the busy flag.
func (c *Customer) SetBusy(busy bool) {
	observable.Set(&c.Notifier, &c.busy, busy, PropIsBusy)
}

// Validate recomputes the error set and returns the first error, email first.
func (c *Customer) Validate() error {
	emailErr := ValidateEmail(c.email)
	nameErr := ValidateName(c.name)
	c.record(PropEmail, emailErr)
	c.record(PropName, nameErr)
	if emailErr != nil {
		return emailErr
	}
	return nameErr
}

// IsValid returns true if the Customer passes all validations.
func (c *Customer) IsValid() bool {
	return !c.HasErrors()
}

func (c *Customer) record(prop string, err error) {
	if err != nil {
		c.errs.Replace(prop, err.Error())
		return
	}
	c.errs.Replace(prop)
}

// ErrorsFor returns the validation errors for prop.
func (c *Customer) ErrorsFor(prop string) []string {
	return c.errs.ErrorsFor(prop)
}

// HasErrors reports whether any property is invalid.
func (c *Customer) HasErrors() bool {
	return c.errs.HasErrors()
}

// OnErrorsChanged subscribes fn to per-property error changes.
func (c *Customer) OnErrorsChanged(fn func(prop string)) observable.Subscription {
	return c.errs.OnErrorsChanged(fn)
}

// Clone returns an independent copy with its own notifier and errors.
func (c *Customer) Clone() *Customer {
	clone := &Customer{
		id:        c.id,
		name:      c.name,
		email:     c.email,
		createdAt: c.createdAt,
		busy:      c.busy,
	}
	clone.errs = observable.NewErrorSet(&clone.Notifier)
	clone.Validate()
	return clone
}

// CopyValuesTo assigns every property with a setter onto dst.
func (c *Customer) CopyValuesTo(dst *Customer) {
	dst.SetName(c.name)
	dst.SetEmail(c.email)
	dst.SetBusy(c.busy)
}

// Properties lists every property value.
func (c *Customer) Properties() []observable.Property {
	return []observable.Property{
		{Name: PropID, Value: c.id},
		{Name: PropName, Value: c.name},
		{Name: PropEmail, Value: c.email},
		{Name: PropCreatedAt, Value: c.createdAt},
		{Name: PropIsBusy, Value: c.busy},
		{Name: observable.PropHasErrors, Value: c.HasErrors()},
	}
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateName validates a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	if len(name) < MinNameLength {
		return ErrNameTooShort
	}

	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}

	// Check for valid characters (letters, spaces, hyphens, apostrophes)
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return ErrInvalidName
		}
	}

	return nil
}

var _ observable.Entity[*Customer] = (*Customer)(nil)
