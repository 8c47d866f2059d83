package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoth(t *testing.T) {
	n, s, err := both(context.Background(),
		func(context.Context) (int, error) { return 7, nil },
		func(context.Context) (string, error) { return "seven", nil },
	)

	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "seven", s)
}

func TestBoth_FirstErrorCancelsOther(t *testing.T) {
	boom := errors.New("boom")

	n, s, err := both(context.Background(),
		func(context.Context) (int, error) { return 0, boom },
		func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(5 * time.Second):
				return "late", nil
			}
		},
	)

	require.ErrorIs(t, err, boom)
	assert.Zero(t, n)
	assert.Empty(t, s)
}

func TestGather_KeepsOrderAndErrors(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")

	out := gather(context.Background(), 5, 2, func(context.Context) (int32, error) {
		n := calls.Add(1)
		if n == 3 {
			return 0, boom
		}

		return n, nil
	})

	require.Len(t, out, 5)
	assert.Equal(t, int32(5), calls.Load())

	failed := 0
	for _, o := range out {
		if o.err != nil {
			failed++
			require.ErrorIs(t, o.err, boom)
		}
	}

	assert.Equal(t, 1, failed)
}

func TestGather_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	gather(context.Background(), 12, 3, func(context.Context) (struct{}, error) {
		now := inFlight.Add(1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)

		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestGather_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32

	out := gather(ctx, 3, 1, func(context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	})

	assert.Zero(t, calls.Load())

	for _, o := range out {
		require.ErrorIs(t, o.err, context.Canceled)
	}
}
