package domain

import (
	"strings"
	"time"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// User is a registered account.
type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Registration is the sign-up form.
type Registration struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Validate checks the form-level rules. Uniqueness is checked by the caller.
func (r Registration) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, &ValidationError{Field: "username", Message: "is required"})
	}

	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, &ValidationError{Field: "email", Message: "is required"})
	}

	if len(r.Password) < MinPasswordLength {
		errs = append(errs, &ValidationError{Field: "password", Message: "must be at least 8 characters"})
	} else if r.Password != r.PasswordConfirm {
		errs = append(errs, &ValidationError{Field: "password_confirm", Message: "passwords do not match"})
	}

	return errs.ErrOrNil()
}

// Session binds an opaque token to an optional user.
type Session struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity returns the identity this session represents.
func (s Session) Identity() Identity {
	if s.UserID != 0 {
		return UserIdentity(s.UserID, s.Token)
	}

	return SessionIdentity(s.Token)
}
