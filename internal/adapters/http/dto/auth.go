package dto

import (
	"time"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// RegisterRequest is the body of POST /auth/register.
// Field rules live in domain.Registration so errors come back in form order.
type RegisterRequest struct {
	Username        string `json:"username" validate:"max=150"`
	Email           string `json:"email" validate:"omitempty,email,max=254"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// Registration converts the request into a domain registration.
func (r RegisterRequest) Registration() domain.Registration {
	return domain.Registration{
		Username:        r.Username,
		Email:           r.Email,
		Password:        r.Password,
		PasswordConfirm: r.PasswordConfirm,
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notempty"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse converts a domain user. The password hash never leaves.
func NewUserResponse(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// MeResponse describes the caller of GET /auth/me.
type MeResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}
