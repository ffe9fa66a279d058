// Package validation provides per-field request validation. Each request
// type exposes a Validate method returning the field errors found, which
// the HTTP layer renders as a 400 with one entry per field.
package validation

import (
	"net/mail"
)

// FieldError describes a single invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

// Errors accumulates field errors while a request is checked
type Errors []FieldError

// Add records a field error
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Require records an error when value is empty
func (e *Errors) Require(field, value, message string) {
	if value == "" {
		e.Add(field, message)
	}
}

// MaxLen records an error when value exceeds max characters
func (e *Errors) MaxLen(field, value string, max int, message string) {
	if len(value) > max {
		e.Add(field, message)
	}
}

// MinLen records an error when a non-empty value is shorter than min
func (e *Errors) MinLen(field, value string, min int, message string) {
	if value != "" && len(value) < min {
		e.Add(field, message)
	}
}

// Email records an error when a non-empty value is not a valid address
func (e *Errors) Email(field, value, message string) {
	if value != "" && !IsValidEmail(value) {
		e.Add(field, message)
	}
}

// IsValidEmail reports whether s parses as a single mail address
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
