package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp.Error.Code
}

func TestLogging(t *testing.T) {
	logger, buf := bufferLogger()

	engine := gin.New()
	engine.Use(Logging(logger, "/favicon.ico"))
	engine.GET("/api/v1/quotes/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	engine.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	engine.GET("/-/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name      string
		path      string
		partial   bool
		wantLevel string
		wantLog   bool
	}{
		{name: "success logs info", path: "/api/v1/quotes/7", wantLevel: "INFO", wantLog: true},
		{name: "partial flag", path: "/api/v1/quotes/7", partial: true, wantLevel: "INFO", wantLog: true},
		{name: "client error logs warn", path: "/missing", wantLevel: "WARN", wantLog: true},
		{name: "server error logs error", path: "/boom", wantLevel: "ERROR", wantLog: true},
		{name: "health path skipped", path: "/-/live"},
		{name: "configured path skipped", path: "/favicon.ico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.partial {
				req.Header.Set("X-Requested-With", "XMLHttpRequest")
			}

			serve(engine, req)

			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, tt.partial, entry["partial"])
		})
	}

	t.Run("route pattern logged", func(t *testing.T) {
		buf.Reset()
		serve(engine, httptest.NewRequest(http.MethodGet, "/api/v1/quotes/42", nil))

		assert.Contains(t, buf.String(), `"route":"/api/v1/quotes/:id"`)
	})
}

func TestLogging_UsesContextLogger(t *testing.T) {
	fallback, fallbackBuf := bufferLogger()
	scoped, scopedBuf := bufferLogger()

	engine := gin.New()
	engine.Use(Logging(fallback))
	engine.GET("/", func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), scoped.With("identity", "user:1")))
		c.Status(http.StatusOK)
	})

	serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, fallbackBuf.String())
	assert.Contains(t, scopedBuf.String(), `"identity":"user:1"`)
}

func TestIsPartialRequest(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.False(t, IsPartialRequest(c))

	c.Request.Header.Set("X-Requested-With", "XMLHttpRequest")
	assert.True(t, IsPartialRequest(c))
}

func TestRecovery(t *testing.T) {
	logger, buf := bufferLogger()

	engine := gin.New()
	engine.Use(Recovery(logger))
	engine.GET("/panic", func(*gin.Context) { panic("kaboom") })
	engine.GET("/panic-after-write", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late")
	})
	engine.GET("/fine", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("panic becomes 500", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		req.Header.Set(HeaderRequestID, "req-1")

		w := serve(engine, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrorCodeInternal, errorCode(t, w))
		assert.Contains(t, w.Body.String(), `"traceId":"req-1"`)
		assert.Contains(t, buf.String(), "panic recovered")
		assert.Contains(t, buf.String(), "kaboom")
	})

	t.Run("written response is kept", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/panic-after-write", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})

	t.Run("no panic", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/fine", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTimeout(t *testing.T) {
	waitForDeadline := func(c *gin.Context) {
		<-c.Request.Context().Done()
	}

	engine := gin.New()
	engine.Use(Timeout(20*time.Millisecond, map[string]time.Duration{
		"/import":    time.Second,
		"/unbounded": 0,
	}))
	engine.GET("/slow", waitForDeadline)
	engine.GET("/fast", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/slow-but-wrote", func(c *gin.Context) {
		<-c.Request.Context().Done()
		c.String(http.StatusServiceUnavailable, "busy")
	})
	engine.GET("/import", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		require.True(t, ok)
		assert.Greater(t, time.Until(deadline), 500*time.Millisecond)
		c.Status(http.StatusOK)
	})
	engine.GET("/unbounded", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	t.Run("deadline without response is 504", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/slow", nil))

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
		assert.Equal(t, dto.ErrorCodeTimeout, errorCode(t, w))
	})

	t.Run("fast handler untouched", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/fast", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("handler response wins", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/slow-but-wrote", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("route override", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/import", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("zero budget disables deadline", func(t *testing.T) {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/unbounded", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
