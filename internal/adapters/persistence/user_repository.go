package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository on db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u and sets its ID and CreatedAt.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := userModel{Username: u.Username, Email: u.Email, PasswordHash: u.PasswordHash}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return domain.NewConflictError("user", "", "username or email already registered")
		}

		return fmt.Errorf("creating user: %w", err)
	}

	u.ID = m.ID
	u.CreatedAt = m.CreatedAt

	return nil
}

// ByID returns the account or domain.ErrNotFound.
func (r *UserRepository) ByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel

	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user", id, err)
		}

		return nil, fmt.Errorf("loading user %d: %w", id, err)
	}

	return m.toDomain(), nil
}

// ByUsername returns the account or domain.ErrNotFound.
func (r *UserRepository) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel

	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError("user", username)
	}

	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	return m.toDomain(), nil
}

// Taken reports which of username and email are already registered.
func (r *UserRepository) Taken(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error) {
	var n int64

	if err = r.db.WithContext(ctx).Model(&userModel{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, false, fmt.Errorf("checking username: %w", err)
	}

	usernameTaken = n > 0

	if err = r.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, false, fmt.Errorf("checking email: %w", err)
	}

	return usernameTaken, n > 0, nil
}
