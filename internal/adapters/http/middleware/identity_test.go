package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// fakeSessions resolves known tokens and issues "new-token" otherwise.
type fakeSessions struct {
	known  map[string]domain.Session
	issued int
	err    error
}

func (f *fakeSessions) EnsureSession(_ context.Context, token string) (*domain.Session, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}

	if s, ok := f.known[token]; ok {
		return &s, false, nil
	}

	f.issued++
	s := domain.Session{Token: "new-token", ExpiresAt: time.Now().Add(time.Hour)}

	return &s, true, nil
}

var testCookie = SessionCookie{Name: "qr_session"}

func identityEngine(resolver SessionResolver, seen *domain.Identity) *gin.Engine {
	engine := gin.New()
	engine.Use(Identity(resolver, testCookie))
	engine.GET("/who", func(c *gin.Context) {
		*seen = GetIdentity(c)
		c.String(http.StatusOK, GetSessionToken(c))
	})
	engine.POST("/quotes", RequireUser(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	return engine
}

func TestIdentity_NewVisitor(t *testing.T) {
	resolver := &fakeSessions{}

	var seen domain.Identity

	w := serve(identityEngine(resolver, &seen), httptest.NewRequest(http.MethodGet, "/who", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, resolver.issued)
	assert.Equal(t, "new-token", w.Body.String())
	assert.Equal(t, domain.SessionIdentity("new-token"), seen)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "qr_session", cookies[0].Name)
	assert.Equal(t, "new-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Positive(t, cookies[0].MaxAge)
}

func TestIdentity_KnownUser(t *testing.T) {
	resolver := &fakeSessions{known: map[string]domain.Session{
		"tok": {Token: "tok", UserID: 9, ExpiresAt: time.Now().Add(time.Hour)},
	}}

	var seen domain.Identity

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: "qr_session", Value: "tok"})

	w := serve(identityEngine(resolver, &seen), req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, resolver.issued)
	assert.Empty(t, w.Result().Cookies(), "existing session is not re-issued")
	assert.True(t, seen.IsAuthenticated())
	assert.Equal(t, uint(9), seen.UserID)
}

func TestIdentity_ResolverError(t *testing.T) {
	resolver := &fakeSessions{err: domain.NewUnavailableError("sqlite", "locked")}

	var seen domain.Identity

	w := serve(identityEngine(resolver, &seen), httptest.NewRequest(http.MethodGet, "/who", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, dto.ErrorCodeUnavailable, errorCode(t, w))
	assert.True(t, seen.IsZero())
}

func TestRequireUser(t *testing.T) {
	resolver := &fakeSessions{known: map[string]domain.Session{
		"user": {Token: "user", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)},
		"anon": {Token: "anon", ExpiresAt: time.Now().Add(time.Hour)},
	}}

	var seen domain.Identity

	engine := identityEngine(resolver, &seen)

	tests := []struct {
		token string
		want  int
	}{
		{"user", http.StatusCreated},
		{"anon", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/quotes", nil)
			req.AddCookie(&http.Cookie{Name: "qr_session", Value: tt.token})

			w := serve(engine, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}

	t.Run("without identity middleware", func(t *testing.T) {
		bare := gin.New()
		bare.POST("/quotes", RequireUser(), func(c *gin.Context) { c.Status(http.StatusCreated) })

		w := serve(bare, httptest.NewRequest(http.MethodPost, "/quotes", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
	})
}

func TestSessionCookie(t *testing.T) {
	t.Run("clear expires the cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		SessionCookie{Name: "qr_session", Secure: true}.Clear(c)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("expired session still gets a positive max age", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		testCookie.Set(c, &domain.Session{Token: "t", ExpiresAt: time.Now().Add(-time.Minute)})

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, 1, cookies[0].MaxAge)
	})

	t.Run("token missing", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Empty(t, testCookie.Token(c))
	})
}

func TestGetIdentity_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextKeyIdentity, "user:1")

	assert.True(t, GetIdentity(c).IsZero())
}
