package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/metrics"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

// sessionTokenBytes yields a 64 character hex token.
const sessionTokenBytes = 32

// errInvalidCredentials covers both unknown users and wrong passwords.
var errInvalidCredentials = domain.NewUnauthenticatedError("login", "invalid username or password")

// AuthService manages accounts and the sessions that carry a visitor's
// identity between requests.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionRepository
	ttl        time.Duration
	cost       int
	now        Clock
	dummyHash  []byte
	logger     *slog.Logger
	tokenBytes func([]byte) (int, error)
}

// AuthServiceConfig contains the dependencies of the auth service.
type AuthServiceConfig struct {
	Users      ports.UserRepository
	Sessions   ports.SessionRepository
	SessionTTL time.Duration
	BcryptCost int
	Now        Clock
	Logger     *slog.Logger
}

// NewAuthService creates an auth service. It panics when a repository is
// missing.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	if cfg.Users == nil || cfg.Sessions == nil {
		panic("app: NewAuthService requires user and session repositories")
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}

	// Unknown usernames are checked against this hash too.
	dummy, err := bcrypt.GenerateFromPassword([]byte("quote-roulette"), cost)
	if err != nil {
		panic(fmt.Sprintf("app: bcrypt cost %d: %v", cost, err))
	}

	return &AuthService{
		users:      cfg.Users,
		sessions:   cfg.Sessions,
		ttl:        ttl,
		cost:       cost,
		now:        cfg.Now.orDefault(),
		dummyHash:  dummy,
		logger:     componentLogger(cfg.Logger, "app.AuthService"),
		tokenBytes: rand.Read,
	}
}

// EnsureSession returns the live session for token, or starts a new
// anonymous one when token is empty, unknown or expired. The boolean reports
// whether a new session was created.
func (s *AuthService) EnsureSession(ctx context.Context, token string) (*domain.Session, bool, error) {
	if token != "" {
		session, err := s.sessions.Get(ctx, token)

		switch {
		case err == nil && !session.Expired(s.now()):
			return session, false, nil
		case err == nil:
			if err := s.sessions.Delete(ctx, token); err != nil {
				return nil, false, err
			}
		case !domain.IsNotFound(err):
			return nil, false, fmt.Errorf("resolving session: %w", err)
		}
	}

	session, err := s.startSession(ctx, 0, "")
	if err != nil {
		return nil, false, err
	}

	return session, true, nil
}

// Register creates an account and logs it in, replacing currentToken.
// Checks run as the sign-up form does: password length, confirmation, then
// username and email availability.
func (s *AuthService) Register(
	ctx context.Context,
	reg domain.Registration,
	currentToken string,
) (*domain.User, *domain.Session, error) {
	logger := requestLogger(ctx, s.logger, "Register")

	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)

	var errs domain.ValidationErrors
	if err := reg.Validate(); err != nil {
		errors.As(err, &errs)
	}

	usernameTaken, emailTaken, err := s.users.Taken(ctx, reg.Username, reg.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("checking availability: %w", err)
	}

	if usernameTaken && errs.Field("username") == nil {
		errs = append(errs, &domain.ValidationError{Field: "username", Message: "username is already taken"})
	}

	if emailTaken && errs.Field("email") == nil {
		errs = append(errs, &domain.ValidationError{Field: "email", Message: "email is already registered"})
	}

	if err := errs.ErrOrNil(); err != nil {
		metrics.RecordAuth("register", "rejected")
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{Username: reg.Username, Email: reg.Email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		metrics.RecordAuth("register", "error")
		return nil, nil, fmt.Errorf("creating user: %w", err)
	}

	session, err := s.startSession(ctx, user.ID, currentToken)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordAuth("register", "success")
	logger.InfoContext(ctx, "user registered", slog.Uint64("user_id", uint64(user.ID)))

	return user, session, nil
}

// Login checks credentials and binds a fresh session to the user, replacing
// currentToken.
func (s *AuthService) Login(
	ctx context.Context,
	username, password, currentToken string,
) (*domain.User, *domain.Session, error) {
	logger := requestLogger(ctx, s.logger, "Login")

	user, err := s.users.ByUsername(ctx, strings.TrimSpace(username))

	switch {
	case domain.IsNotFound(err):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))

		metrics.RecordAuth("login", "failure")

		return nil, nil, errInvalidCredentials
	case err != nil:
		return nil, nil, fmt.Errorf("loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.RecordAuth("login", "failure")
		logger.InfoContext(ctx, "login rejected", slog.Uint64("user_id", uint64(user.ID)))

		return nil, nil, errInvalidCredentials
	}

	session, err := s.startSession(ctx, user.ID, currentToken)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordAuth("login", "success")
	logger.InfoContext(ctx, "user logged in", slog.Uint64("user_id", uint64(user.ID)))

	return user, session, nil
}

// Logout ends the session behind token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("ending session: %w", err)
	}

	metrics.RecordAuth("logout", "success")

	return nil
}

// CurrentUser returns the account behind id, or nil for anonymous visitors.
func (s *AuthService) CurrentUser(ctx context.Context, id domain.Identity) (*domain.User, error) {
	if !id.IsAuthenticated() {
		return nil, nil
	}

	user, err := s.users.ByID(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	return user, nil
}

// startSession issues a new token for userID (0 for anonymous) and drops
// previous so a login never reuses a pre-login token.
func (s *AuthService) startSession(ctx context.Context, userID uint, previous string) (*domain.Session, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := s.tokenBytes(buf); err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	session := domain.Session{
		Token:     hex.EncodeToString(buf),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	if previous != "" {
		if err := s.sessions.Delete(ctx, previous); err != nil {
			return nil, fmt.Errorf("retiring previous session: %w", err)
		}
	}

	return &session, nil
}
