package edit

import "errors"

// ErrInvalidState is returned when an operation needs an entity that is not set.
var ErrInvalidState = errors.New("invalid edit state")
