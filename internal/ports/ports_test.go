package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker implements HealthChecker for testing.
type stubChecker struct {
	name string
	err  error
}

func (m *stubChecker) Name() string {
	return m.name
}

func (m *stubChecker) Check(context.Context) error {
	return m.err
}

func TestNewHealthRegistry(t *testing.T) {
	registry := NewHealthRegistry()

	require.NotNil(t, registry)
	assert.Empty(t, registry.entries)
	assert.Equal(t, DefaultCheckTimeout, registry.timeout)
	assert.Equal(t, time.Second, NewHealthRegistry(WithCheckTimeout(time.Second)).timeout)
	assert.Equal(t, DefaultCheckTimeout, NewHealthRegistry(WithCheckTimeout(0)).timeout)
}

func TestRegister_DuplicateName(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "sqlite"}))

	err := registry.RegisterOptional(&stubChecker{name: "sqlite"})

	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "sqlite")
	assert.Len(t, registry.entries, 1)
}

func TestCheckAll_NoCheckers(t *testing.T) {
	result := NewHealthRegistry().CheckAll(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Empty(t, result.Checks)
	assert.False(t, result.Timestamp.IsZero())
}

func TestCheckAll_Statuses(t *testing.T) {
	tests := []struct {
		name        string
		storeErr    error
		feedErr     error
		wantStatus  HealthStatus
		wantServing bool
	}{
		{"all healthy", nil, nil, HealthStatusHealthy, true},
		{"optional feed down degrades", nil, errors.New("connection refused"), HealthStatusDegraded, true},
		{"store down is unhealthy", errors.New("database is locked"), nil, HealthStatusUnhealthy, false},
		{"both down is unhealthy", errors.New("database is locked"), errors.New("timeout"), HealthStatusUnhealthy, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			require.NoError(t, registry.Register(&stubChecker{name: "sqlite", err: tt.storeErr}))
			require.NoError(t, registry.RegisterOptional(&stubChecker{name: "quote-feed", err: tt.feedErr}))

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantServing, result.Status.Serving())
			require.Len(t, result.Checks, 2)
			assert.False(t, result.Checks["sqlite"].Optional)
			assert.True(t, result.Checks["quote-feed"].Optional)

			if tt.feedErr != nil {
				assert.Equal(t, HealthStatusUnhealthy, result.Checks["quote-feed"].Status)
				assert.Equal(t, tt.feedErr.Error(), result.Checks["quote-feed"].Message)
			}
		})
	}
}

// slowChecker blocks until the context is done or a short delay passes.
type slowChecker struct {
	name string
}

func (c *slowChecker) Name() string {
	return c.name
}

func (c *slowChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&slowChecker{name: "sqlite"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["sqlite"].Message, "context canceled")
}

func TestCheckAll_Timeout(t *testing.T) {
	registry := NewHealthRegistry(WithCheckTimeout(10 * time.Millisecond))
	require.NoError(t, registry.RegisterOptional(&slowChecker{name: "quote-feed"}))
	require.NoError(t, registry.Register(&stubChecker{name: "sqlite"}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusDegraded, result.Status)
	assert.Contains(t, result.Checks["quote-feed"].Message, "deadline exceeded")
	assert.Equal(t, HealthStatusHealthy, result.Checks["sqlite"].Status)
}
