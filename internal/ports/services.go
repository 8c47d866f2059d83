// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never gorm models or upstream DTOs
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// QuoteRepository stores quotes. Returned quotes carry fresh like and
// dislike counts.
type QuoteRepository interface {
	// All returns every quote ordered by ID.
	All(ctx context.Context) ([]domain.Quote, error)

	// Get returns one quote or domain.ErrNotFound.
	Get(ctx context.Context, id uint) (*domain.Quote, error)

	// Snapshot reports whether text is already used and how many quotes
	// source already has.
	Snapshot(ctx context.Context, text, source string) (domain.SourceSnapshot, error)

	// Create inserts a validated draft. A duplicate text yields
	// domain.ErrConflict.
	Create(ctx context.Context, draft domain.QuoteDraft) (*domain.Quote, error)

	// Top returns up to limit quotes ordered by likes minus dislikes
	// descending, then ID ascending.
	Top(ctx context.Context, limit int) ([]domain.Quote, error)

	// Filter returns quotes matching f ordered by ID, starting after f.AfterID.
	Filter(ctx context.Context, f domain.QuoteFilter) ([]domain.Quote, error)
}

// ViewHistoryRepository records which quotes each identity has seen.
type ViewHistoryRepository interface {
	// ViewedQuoteIDs returns the set of quote IDs already shown to id.
	ViewedQuoteIDs(ctx context.Context, id domain.Identity) (map[uint]struct{}, error)

	// RecordView stores the first view of quoteID by id and bumps the quote's
	// view counter in the same transaction. It reports false without error
	// when the view was already recorded.
	RecordView(ctx context.Context, id domain.Identity, quoteID uint, at time.Time) (bool, error)

	// PurgeBefore deletes views older than cutoff and returns how many went.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReactionRepository stores likes and dislikes. A user holds at most one
// reaction per quote regardless of kind.
type ReactionRepository interface {
	// Add stores the reaction and reports false when the user had already
	// reacted to the quote.
	Add(ctx context.Context, userID, quoteID uint, kind domain.ReactionKind) (bool, error)

	// Counts returns the current likes and dislikes of a quote.
	Counts(ctx context.Context, quoteID uint) (likes, dislikes int, err error)
}

// UserRepository stores accounts.
type UserRepository interface {
	// Create inserts u and sets its ID. A taken username or email yields
	// domain.ErrConflict.
	Create(ctx context.Context, u *domain.User) error

	// ByID returns the account or domain.ErrNotFound.
	ByID(ctx context.Context, id uint) (*domain.User, error)

	// ByUsername returns the account or domain.ErrNotFound.
	ByUsername(ctx context.Context, username string) (*domain.User, error)

	// Taken reports whether username or email is already registered.
	Taken(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
}

// SessionRepository stores visitor sessions keyed by opaque token.
type SessionRepository interface {
	Create(ctx context.Context, s domain.Session) error

	// Get returns the session or domain.ErrNotFound. Expiry is the caller's
	// concern.
	Get(ctx context.Context, token string) (*domain.Session, error)

	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// QuoteFeed fetches quotes from an upstream provider for import.
//
// Key considerations:
//   - Handle timeouts via context deadline
//   - Map upstream errors to domain errors
//   - Return drafts, never upstream DTOs
type QuoteFeed interface {
	// RandomDraft fetches one random upstream quote as a creation draft.
	// Returns domain.ErrUnavailable if the provider is unreachable.
	RandomDraft(ctx context.Context) (domain.QuoteDraft, error)
}
