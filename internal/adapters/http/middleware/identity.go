package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

const (
	// ContextKeyIdentity is the gin context key for the caller's domain.Identity.
	ContextKeyIdentity = "identity"

	// ContextKeySessionToken is the gin context key for the session token.
	ContextKeySessionToken = "session_token"
)

// SessionResolver returns the live session for a token, starting a new
// anonymous one when needed. app.AuthService implements it.
type SessionResolver interface {
	EnsureSession(ctx context.Context, token string) (*domain.Session, bool, error)
}

// SessionCookie writes and clears the session cookie.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set issues the cookie for session. It is HTTP-only and SameSite=Lax.
func (sc SessionCookie) Set(c *gin.Context, session *domain.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, session.Token, maxAge, "/", "", sc.Secure, true)
}

// Clear expires the cookie in the browser.
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// Token returns the session token sent by the client, if any.
func (sc SessionCookie) Token(c *gin.Context) string {
	token, err := c.Cookie(sc.Name)
	if err != nil {
		return ""
	}

	return token
}

// Identity returns middleware that attaches a domain.Identity to every
// request. Visitors without a valid session cookie get a new anonymous
// session. The identity label is added to the context logger.
func Identity(resolver SessionResolver, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.Token(c)

		session, created, err := resolver.EnsureSession(c.Request.Context(), token)
		if err != nil {
			dto.AbortWithError(c, err)
			return
		}

		if created {
			cookie.Set(c, session)
		}

		id := session.Identity()

		c.Set(ContextKeyIdentity, id)
		c.Set(ContextKeySessionToken, session.Token)

		ctx := logging.WithIdentity(c.Request.Context(), id.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetIdentity retrieves the caller's identity from the gin context.
// Returns the zero Identity if the Identity middleware did not run.
func GetIdentity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(ContextKeyIdentity); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}

	return domain.Identity{}
}

// GetSessionToken retrieves the current session token from the gin context.
func GetSessionToken(c *gin.Context) string {
	return getIDFromContext(c, ContextKeySessionToken)
}

// RequireUser returns middleware that rejects anonymous callers with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIdentity(c).IsAuthenticated() {
			dto.AbortWithError(c, domain.NewUnauthenticatedError(c.Request.Method+" "+c.FullPath(), ""))
			return
		}

		c.Next()
	}
}
