package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/metrics"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

// DefaultRetentionDays is how long view history is kept.
const DefaultRetentionDays = 30

// RetentionService purges old view history and expired sessions.
type RetentionService struct {
	views    ports.ViewHistoryRepository
	sessions ports.SessionRepository
	days     int
	now      Clock
	logger   *slog.Logger
}

// RetentionServiceConfig contains the dependencies of the retention service.
// Sessions is optional.
type RetentionServiceConfig struct {
	Views    ports.ViewHistoryRepository
	Sessions ports.SessionRepository
	Days     int
	Now      Clock
	Logger   *slog.Logger
}

// NewRetentionService creates a retention service. It panics without a view
// history repository.
func NewRetentionService(cfg RetentionServiceConfig) *RetentionService {
	if cfg.Views == nil {
		panic("app: NewRetentionService requires a view history repository")
	}

	days := cfg.Days
	if days <= 0 {
		days = DefaultRetentionDays
	}

	return &RetentionService{
		views:    cfg.Views,
		sessions: cfg.Sessions,
		days:     days,
		now:      cfg.Now.orDefault(),
		logger:   componentLogger(cfg.Logger, "app.RetentionService"),
	}
}

// PurgeOldViews deletes view history recorded more than olderThanDays ago.
func (s *RetentionService) PurgeOldViews(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		return 0, domain.NewValidationErrorWithValue("days", "must be at least 1", olderThanDays)
	}

	start := time.Now()
	cutoff := s.now().AddDate(0, 0, -olderThanDays)

	deleted, err := s.views.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging view history: %w", err)
	}

	metrics.RecordPurge(deleted, time.Since(start))
	requestLogger(ctx, s.logger, "PurgeOldViews").InfoContext(ctx, "view history purged",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)

	return deleted, nil
}

// SweepReport is the outcome of one Sweep.
type SweepReport struct {
	ViewsDeleted    int64
	SessionsDeleted int64
}

// Sweep purges views older than the configured days and, when a session
// repository is set, expired sessions.
func (s *RetentionService) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	views, err := s.PurgeOldViews(ctx, s.days)
	if err != nil {
		return report, err
	}

	report.ViewsDeleted = views

	if s.sessions == nil {
		return report, nil
	}

	sessions, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return report, fmt.Errorf("deleting expired sessions: %w", err)
	}

	report.SessionsDeleted = sessions

	return report, nil
}

// Run sweeps every interval until ctx is done. Failed sweeps are logged and
// retried on the next tick.
func (s *RetentionService) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("retention interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "retention loop started",
		slog.Duration("interval", interval),
		slog.Int("days", s.days),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.ErrorContext(ctx, "retention sweep failed", slog.Any("error", err))
			}
		}
	}
}
