package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quote-roulette/telemetry"

// TraceHeader carries the trace ID back to the caller.
const TraceHeader = "X-Trace-ID"

// unmatchedRoute labels requests gin could not route, keeping the route
// attribute bounded.
const unmatchedRoute = "unmatched"

type httpInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"), metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("HTTP requests served"))
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("HTTP requests in flight"))
	if err != nil {
		return nil, err
	}

	return &httpInstruments{duration: duration, total: total, active: active}, nil
}

// TracingMiddleware starts the otelgin server span. Mount it before
// Middleware so the span exists when the trace header is written.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// Middleware records request count, latency and in-flight requests per
// route, and echoes the trace ID in TraceHeader. Instrument creation
// failures go to the otel error handler and leave only the header.
func Middleware(_ string) gin.HandlerFunc {
	inst, err := newHTTPInstruments(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(TraceHeader, sc.TraceID().String())
		}

		if inst == nil {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		base := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		}

		inst.active.Add(ctx, 1, metric.WithAttributes(base...))
		start := time.Now()

		c.Next()

		inst.active.Add(ctx, -1, metric.WithAttributes(base...))

		done := metric.WithAttributes(append(base, attribute.Int("http.status_code", c.Writer.Status()))...)
		inst.duration.Record(ctx, time.Since(start).Seconds(), done)
		inst.total.Add(ctx, 1, done)
	}
}
