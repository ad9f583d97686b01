// Package errors holds the API errors that carry an alert key for the admin UI.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error keys understood by the admin UI.
const (
	KeyIDExists   = "idexists"
	KeyIDNull     = "idnull"
	KeyIDInvalid  = "idinvalid"
	KeyIDNotFound = "idnotfound"
	KeyValidation = "validation"
)

// AlertError is a client error tied to an entity and an error key.
type AlertError struct {
	StatusCode int
	Message    string
	EntityName string
	ErrorKey   string
}

// NewBadRequestAlert creates a 400 alert for entityName.
func NewBadRequestAlert(message, entityName, errorKey string) *AlertError {
	return &AlertError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
		EntityName: entityName,
		ErrorKey:   errorKey,
	}
}

func (e *AlertError) Error() string {
	if e.EntityName == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s (%s)", e.EntityName, e.Message, e.ErrorKey)
}

// Meta returns the fields rendered in the error response.
func (e *AlertError) Meta() map[string]any {
	return map[string]any{
		"entity_name": e.EntityName,
		"error_key":   e.ErrorKey,
	}
}

// AsAlert unwraps err into an AlertError.
func AsAlert(err error) (*AlertError, bool) {
	var alert *AlertError
	if errors.As(err, &alert) {
		return alert, true
	}
	return nil, false
}
