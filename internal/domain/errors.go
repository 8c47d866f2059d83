// Package domain contains the quote roulette entities, rules and errors.
// Errors carry no transport detail; adapters map the sentinels below to
// status codes.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched with errors.Is. Every typed error below unwraps to one.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnavailable     = errors.New("unavailable")
)

// NotFoundError names a missing quote, user or session.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError reports that entity id does not exist.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a value already taken on a unique attribute, such
// as a username or email at registration.
type ConflictError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
	}

	return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError reports a duplicate entity field.
func NewConflictError(entity, field, reason string) error {
	return &ConflictError{Entity: entity, Field: field, Reason: reason}
}

// ValidationError rejects one field of a draft or form.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError rejects field with message.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue rejects field and keeps the offending value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ValidationErrors is every rule a single draft broke, in check order.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	var b strings.Builder

	b.WriteString("validation failed: ")

	for i, v := range e {
		if i > 0 {
			b.WriteString("; ")
		}

		b.WriteString(v.Error())
	}

	return b.String()
}

func (e ValidationErrors) Unwrap() error { return ErrValidation }

// Field returns the first violation on field, or nil.
func (e ValidationErrors) Field(field string) *ValidationError {
	for _, v := range e {
		if v.Field == field {
			return v
		}
	}

	return nil
}

// ErrOrNil returns e as an error, or nil when empty.
func (e ValidationErrors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}

	return e
}

// UnauthenticatedError rejects an anonymous caller from a signed-in
// operation such as liking or creating a quote.
type UnauthenticatedError struct {
	Operation string
	Reason    string
}

func (e *UnauthenticatedError) Error() string {
	msg := "sign in required to " + e.Operation
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnauthenticatedError) Unwrap() error { return ErrUnauthenticated }

// NewUnauthenticatedError rejects operation for an anonymous caller.
func NewUnauthenticatedError(operation, reason string) error {
	return &UnauthenticatedError{Operation: operation, Reason: reason}
}

// UnavailableError reports a dependency that cannot serve right now, such
// as the store or the upstream quote feed.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	msg := e.Service + " unavailable"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError reports service as unavailable.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool        { return errors.Is(err, ErrConflict) }
func IsValidation(err error) bool      { return errors.Is(err, ErrValidation) }
func IsUnauthenticated(err error) bool { return errors.Is(err, ErrUnauthenticated) }
func IsUnavailable(err error) bool     { return errors.Is(err, ErrUnavailable) }
