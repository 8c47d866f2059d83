package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-roulette/internal/platform/config"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

const (
	// instrumentationName is used for OpenTelemetry tracer and meter.
	instrumentationName = "github.com/jsamuelsen/quote-roulette/internal/adapters/clients"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "quote-roulette"

	transportMaxIdleConns        = 100
	transportMaxIdleConnsPerHost = 10
	transportIdleConnTimeout     = 90 * time.Second

	// maxDrainBytes bounds how much of a discarded body is read so the
	// connection can be reused.
	maxDrainBytes = 4 << 10
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is the upstream root, e.g. "https://api.quotable.io".
	BaseURL string

	// ServiceName identifies the upstream in logs, traces and metrics.
	ServiceName string

	// UserAgent defaults to "quote-roulette".
	UserAgent string

	// Timeout is the per-attempt request timeout.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// AuthFunc, if set, decorates every attempt including retries.
	AuthFunc func(*http.Request)

	Logger *slog.Logger
}

// Client is an instrumented HTTP client for one upstream. Calls go through a
// circuit breaker; inside it, 5xx, 429 and network failures are retried with
// jittered exponential backoff that honours Retry-After.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	userAgent   string
	retry       config.RetryConfig
	authFunc    func(*http.Request)
	logger      *slog.Logger
	cb          *gobreaker.CircuitBreaker[*http.Response]

	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a client. ServiceName is required.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	retry := cfg.Retry
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		userAgent:       userAgent,
		retry:           retry,
		authFunc:        cfg.AuthFunc,
		logger:          logger,
		cb:              newBreaker(cfg.ServiceName, cfg.Circuit, logger),
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// newTransport builds the pooled transport, filling unset sizes.
func newTransport(tc config.TransportConfig) *http.Transport {
	if tc.MaxIdleConns <= 0 {
		tc.MaxIdleConns = transportMaxIdleConns
	}

	if tc.MaxIdleConnsPerHost <= 0 {
		tc.MaxIdleConnsPerHost = transportMaxIdleConnsPerHost
	}

	if tc.IdleConnTimeout <= 0 {
		tc.IdleConnTimeout = transportIdleConnTimeout
	}

	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        tc.MaxIdleConns,
		MaxIdleConnsPerHost: tc.MaxIdleConnsPerHost,
		IdleConnTimeout:     tc.IdleConnTimeout,
	}
}

// Get performs a JSON GET against path under the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// Do executes req through the breaker and retry loop. Requests with a body
// are only retried when req.GetBody is set.
//
// A non-nil response may still carry a 4xx status; callers map it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContextOr(ctx, c.logger).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	c.injectHeaders(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.cb.Execute(func() (*http.Response, error) {
		return c.attempt(ctx, req, logger)
	})

	duration := time.Since(start)

	switch {
	case isBreakerRejection(err):
		span.SetStatus(codes.Error, "circuit open")
		c.recordMetrics(ctx, req.Method, 0, duration, "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)

	case err != nil:
		span.SetStatus(codes.Error, err.Error())

		result := "error"
		if ctx.Err() != nil {
			result = "context_canceled"
		}

		c.recordMetrics(ctx, req.Method, 0, duration, result)
		logger.Error("request failed",
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)

		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// attempt runs the retry loop. Exhausted retries wrap ErrMaxRetriesExceeded.
func (c *Client) attempt(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	var (
		lastErr error
		hint    time.Duration
	)

	for n := range c.retry.MaxAttempts {
		if n > 0 {
			if err := c.wait(ctx, n, hint, logger); err != nil {
				return nil, err
			}

			if err := rewind(req); err != nil {
				return nil, err
			}

			if c.authFunc != nil {
				c.authFunc(req)
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))

		retry, after, cause := classify(resp, err)
		if !retry {
			if err != nil {
				return nil, err
			}

			return resp, nil
		}

		logger.Debug("attempt failed",
			slog.Int("attempt", n+1),
			slog.Any("error", cause),
		)

		lastErr, hint = cause, after
	}

	return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
}

// wait sleeps before retry n, for at least the server's Retry-After hint.
func (c *Client) wait(ctx context.Context, n int, hint time.Duration, logger *slog.Logger) error {
	d := max(c.backoff(n), hint)
	if c.retry.MaxInterval > 0 {
		d = min(d, c.retry.MaxInterval)
	}

	logger.Debug("retrying request",
		slog.Int("attempt", n+1),
		slog.Duration("backoff", d),
	)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// classify decides whether an attempt is retried. A retried response body is
// drained and closed here.
func classify(resp *http.Response, err error) (retry bool, after time.Duration, cause error) {
	if err != nil {
		return isRetryableError(err), 0, err
	}

	if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
		return false, 0, nil
	}

	after = retryAfter(resp.Header.Get("Retry-After"), time.Now())

	_, _ = io.CopyN(io.Discard, resp.Body, maxDrainBytes)
	_ = resp.Body.Close()

	return true, after, fmt.Errorf("upstream status %d", resp.StatusCode)
}

// retryAfter parses a Retry-After value in delta-seconds or HTTP-date form.
func retryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}

	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}

	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0)
	}

	return 0
}

func rewind(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	if req.GetBody == nil {
		return errors.New("request body cannot be replayed")
	}

	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}

	req.Body = body

	return nil
}

// CircuitState returns "closed", "half-open" or "open".
func (c *Client) CircuitState() string {
	return c.cb.State().String()
}

// injectHeaders propagates request and correlation IDs and applies auth.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}

	if c.authFunc != nil {
		c.authFunc(req)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// backoff returns InitialInterval * Multiplier^n, capped at MaxInterval,
// spread by ±JitterFactor.
func (c *Client) backoff(n int) time.Duration {
	d := float64(c.retry.InitialInterval) * math.Pow(c.retry.Multiplier, float64(n))

	if limit := float64(c.retry.MaxInterval); limit > 0 && d > limit {
		d = limit
	}

	if c.retry.JitterFactor > 0 {
		d += d * c.retry.JitterFactor * (rand.Float64()*2 - 1) //nolint:gosec // jitter only
	}

	return time.Duration(d)
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryableError reports transport failures worth another attempt.
// Context cancellation and deadlines never are.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
