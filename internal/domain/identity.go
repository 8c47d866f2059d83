package domain

import "strconv"

// Identity is whoever is asking: a logged-in user or an anonymous session.
// A user identity takes precedence; SessionKey is then informational only.
type Identity struct {
	UserID     uint
	SessionKey string
}

// UserIdentity returns the identity of a logged-in user.
func UserIdentity(userID uint, sessionKey string) Identity {
	return Identity{UserID: userID, SessionKey: sessionKey}
}

// SessionIdentity returns the identity of an anonymous visitor.
func SessionIdentity(sessionKey string) Identity {
	return Identity{SessionKey: sessionKey}
}

// IsAuthenticated reports whether the identity belongs to a user.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != 0
}

// IsZero reports whether neither a user nor a session is present.
func (i Identity) IsZero() bool {
	return i.UserID == 0 && i.SessionKey == ""
}

// Validate rejects an identity that cannot own view history.
func (i Identity) Validate() error {
	if i.IsZero() {
		return NewValidationError("identity", "either a user or a session is required")
	}

	return nil
}

// Kind is "user" or "session", for logs and metrics labels.
func (i Identity) Kind() string {
	if i.IsAuthenticated() {
		return "user"
	}

	return "session"
}

// String identifies the owner without exposing the session key.
func (i Identity) String() string {
	if i.IsAuthenticated() {
		return "user:" + strconv.FormatUint(uint64(i.UserID), 10)
	}

	if i.SessionKey == "" {
		return "anonymous"
	}

	return "session"
}
