package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		sentinel error
	}{
		{"quote not found", NewNotFoundError("quote", "7"), "quote 7 not found", ErrNotFound},
		{"session not found", NewNotFoundError("session", ""), "session not found", ErrNotFound},
		{"username taken", NewConflictError("user", "username", "already taken"), "user username: already taken", ErrConflict},
		{"conflict without field", NewConflictError("reaction", "", "already voted"), "reaction conflict: already voted", ErrConflict},
		{"weight", NewValidationError("weight", "must be between 1 and 10"), "weight: must be between 1 and 10", ErrValidation},
		{"form", NewValidationError("", "body is empty"), "body is empty", ErrValidation},
		{"anonymous like", NewUnauthenticatedError("like", ""), "sign in required to like", ErrUnauthenticated},
		{"expired session", NewUnauthenticatedError("create quote", "session expired"), "sign in required to create quote: session expired", ErrUnauthenticated},
		{"feed down", NewUnavailableError("quote-feed", "circuit open"), "quote-feed unavailable: circuit open", ErrUnavailable},
		{"store down", NewUnavailableError("sqlite", ""), "sqlite unavailable", ErrUnavailable},
	}

	sentinels := []error{ErrNotFound, ErrConflict, ErrValidation, ErrUnauthenticated, ErrUnavailable}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())

			wrapped := fmt.Errorf("handling request: %w", tt.err)
			for _, s := range sentinels {
				assert.Equal(t, s == tt.sentinel, errors.Is(wrapped, s), "sentinel %v", s)
			}
		})
	}
}

func TestValidationErrorWithValue(t *testing.T) {
	err := NewValidationErrorWithValue("weight", "must be between 1 and 10", 11)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 11, ve.Value)
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	require.NoError(t, errs.ErrOrNil())

	errs = append(errs,
		&ValidationError{Field: "text", Message: "already exists"},
		&ValidationError{Field: "source", Message: "has 3 quotes"},
	)

	err := fmt.Errorf("creating quote: %w", errs.ErrOrNil())

	assert.True(t, IsValidation(err))
	assert.Equal(t, "creating quote: validation failed: text: already exists; source: has 3 quotes", err.Error())

	var got ValidationErrors
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "has 3 quotes", got.Field("source").Message)
	assert.Nil(t, got.Field("weight"))
}

func TestIsHelpers(t *testing.T) {
	err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", NewNotFoundError("user", "ann")))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsUnauthenticated(err))
	assert.False(t, IsUnavailable(err))
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsUnavailable(NewUnavailableError("sqlite", "")))
	assert.True(t, IsConflict(NewConflictError("user", "email", "taken")))
	assert.True(t, IsUnauthenticated(NewUnauthenticatedError("dislike", "")))
}
