package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	return recorder
}

func TestStartSpan_EndSpan(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
	}{
		{"success", nil, codes.Unset},
		{"failure", errors.New("database is locked"), codes.Error},
		{"cancellation is not an error", context.Canceled, codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := withRecorder(t)

			_, span := StartSpan(context.Background(), "test", "quotes.all", attribute.String("db.system", "sqlite"))
			EndSpan(span, tt.err)

			ended := recorder.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, "quotes.all", ended[0].Name())
			assert.Equal(t, tt.wantStatus, ended[0].Status().Code)
			assert.Contains(t, ended[0].Attributes(), attribute.String("db.system", "sqlite"))
		})
	}
}

func TestNew_DisabledIsNoop(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, p.Shutdown(context.Background()))
}
