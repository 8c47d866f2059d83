package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// SessionRepository implements ports.SessionRepository.
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a SessionRepository on db.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores s.
func (r *SessionRepository) Create(ctx context.Context, s domain.Session) error {
	m := sessionModel{Token: s.Token, ExpiresAt: s.ExpiresAt.UTC()}
	if s.UserID != 0 {
		userID := s.UserID
		m.UserID = &userID
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	return nil
}

// Get returns the session for token or domain.ErrNotFound.
func (r *SessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	var m sessionModel

	err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("session", "")
	}

	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	return m.toDomain(), nil
}

// Delete removes the session for token. Missing sessions are ignored.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&sessionModel{}).Error; err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}

// DeleteExpired removes sessions that expired before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now.UTC()).Delete(&sessionModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", res.Error)
	}

	return res.RowsAffected, nil
}
