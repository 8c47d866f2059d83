package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/mocks"
)

func newRetentionService(
	t *testing.T,
	withSessions bool,
) (*RetentionService, *mocks.MockViewHistoryRepository, *mocks.MockSessionRepository) {
	t.Helper()

	views := mocks.NewMockViewHistoryRepository(t)
	cfg := RetentionServiceConfig{
		Views:  views,
		Now:    func() time.Time { return fixedNow },
		Logger: discardLogger(),
	}

	var sessions *mocks.MockSessionRepository
	if withSessions {
		sessions = mocks.NewMockSessionRepository(t)
		cfg.Sessions = sessions
	}

	return NewRetentionService(cfg), views, sessions
}

func TestNewRetentionService(t *testing.T) {
	assert.Panics(t, func() { NewRetentionService(RetentionServiceConfig{}) })

	svc, _, _ := newRetentionService(t, false)
	assert.Equal(t, DefaultRetentionDays, svc.days)
}

func TestRetentionService_PurgeOldViews(t *testing.T) {
	t.Run("cutoff is days before now", func(t *testing.T) {
		svc, views, _ := newRetentionService(t, false)
		views.EXPECT().PurgeBefore(mock.Anything, fixedNow.AddDate(0, 0, -30)).Return(4, nil)

		n, err := svc.PurgeOldViews(context.Background(), 30)

		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		svc, _, _ := newRetentionService(t, false)

		_, err := svc.PurgeOldViews(context.Background(), 0)

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("store failure", func(t *testing.T) {
		svc, views, _ := newRetentionService(t, false)
		views.EXPECT().PurgeBefore(mock.Anything, mock.Anything).Return(0, errors.New("busy"))

		_, err := svc.PurgeOldViews(context.Background(), 7)

		assert.ErrorContains(t, err, "busy")
	})
}

func TestRetentionService_Sweep(t *testing.T) {
	t.Run("views only", func(t *testing.T) {
		svc, views, _ := newRetentionService(t, false)
		views.EXPECT().PurgeBefore(mock.Anything, fixedNow.AddDate(0, 0, -DefaultRetentionDays)).Return(2, nil)

		report, err := svc.Sweep(context.Background())

		require.NoError(t, err)
		assert.Equal(t, SweepReport{ViewsDeleted: 2}, report)
	})

	t.Run("views and sessions", func(t *testing.T) {
		svc, views, sessions := newRetentionService(t, true)
		views.EXPECT().PurgeBefore(mock.Anything, mock.Anything).Return(1, nil)
		sessions.EXPECT().DeleteExpired(mock.Anything, fixedNow).Return(5, nil)

		report, err := svc.Sweep(context.Background())

		require.NoError(t, err)
		assert.Equal(t, SweepReport{ViewsDeleted: 1, SessionsDeleted: 5}, report)
	})
}

func TestRetentionService_Run(t *testing.T) {
	t.Run("rejects zero interval", func(t *testing.T) {
		svc, _, _ := newRetentionService(t, false)

		assert.Error(t, svc.Run(context.Background(), 0))
	})

	t.Run("sweeps until cancelled", func(t *testing.T) {
		svc, views, _ := newRetentionService(t, false)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		swept := make(chan struct{}, 1)
		views.EXPECT().PurgeBefore(mock.Anything, mock.Anything).
			Run(func(context.Context, time.Time) {
				select {
				case swept <- struct{}{}:
				default:
				}
			}).
			Return(0, nil)

		done := make(chan error, 1)
		go func() { done <- svc.Run(ctx, 5*time.Millisecond) }()

		select {
		case <-swept:
		case <-time.After(2 * time.Second):
			t.Fatal("no sweep within deadline")
		}

		cancel()
		assert.NoError(t, <-done)
	})
}
