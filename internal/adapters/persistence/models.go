package persistence

import (
	"time"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// quoteModel keeps case-folded copies of Text and Source for filtering.
type quoteModel struct {
	ID           uint   `gorm:"primaryKey"`
	Text         string `gorm:"type:text;not null;uniqueIndex"`
	Source       string `gorm:"size:255;not null;index"`
	TextFolded   string `gorm:"type:text;not null;default:''"`
	SourceFolded string `gorm:"size:1024;not null;default:'';index"`
	Weight       int    `gorm:"not null"`
	Views        int    `gorm:"not null"`
	CreatedAt    time.Time
}

func newQuoteModel(d domain.QuoteDraft) quoteModel {
	return quoteModel{
		Text:         d.Text,
		Source:       d.Source,
		TextFolded:   fold(d.Text),
		SourceFolded: fold(d.Source),
		Weight:       d.Weight,
	}
}

func (quoteModel) TableName() string { return "quotes" }

// quoteRow is a quote joined with its reaction counts.
type quoteRow struct {
	ID       uint
	Text     string
	Source   string
	Weight   int
	Views    int
	Likes    int
	Dislikes int
}

func (r quoteRow) toDomain() domain.Quote {
	return domain.Quote{
		ID:       r.ID,
		Text:     r.Text,
		Source:   r.Source,
		Weight:   r.Weight,
		Views:    r.Views,
		Likes:    r.Likes,
		Dislikes: r.Dislikes,
	}
}

// viewHistoryModel rows belong to either a user or a session. NULLs are
// distinct in SQLite unique indexes, so each index only constrains its owner.
// ViewedAt must always be written in UTC: PurgeBefore compares it as text.
type viewHistoryModel struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     *uint     `gorm:"uniqueIndex:idx_view_user_quote,priority:1"`
	SessionKey *string   `gorm:"size:64;uniqueIndex:idx_view_session_quote,priority:1"`
	QuoteID    uint      `gorm:"not null;uniqueIndex:idx_view_user_quote,priority:2;uniqueIndex:idx_view_session_quote,priority:2"`
	ViewedAt   time.Time `gorm:"not null;index"`
}

func (viewHistoryModel) TableName() string { return "view_histories" }

// reactionModel holds one like or dislike. The single unique index across
// quote and user keeps likers and dislikers disjoint.
type reactionModel struct {
	ID        uint   `gorm:"primaryKey"`
	QuoteID   uint   `gorm:"not null;uniqueIndex:idx_reaction_quote_user,priority:1"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_reaction_quote_user,priority:2;index"`
	Kind      string `gorm:"size:8;not null"`
	CreatedAt time.Time
}

func (reactionModel) TableName() string { return "quote_reactions" }

type userModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;not null;uniqueIndex"`
	Email        string `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

type sessionModel struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    *uint     `gorm:"index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (sessionModel) TableName() string { return "sessions" }

func (m *sessionModel) toDomain() *domain.Session {
	s := &domain.Session{Token: m.Token, ExpiresAt: m.ExpiresAt}
	if m.UserID != nil {
		s.UserID = *m.UserID
	}

	return s
}

// ownerColumns returns the nullable owner columns for an identity.
func ownerColumns(id domain.Identity) (*uint, *string) {
	if id.IsAuthenticated() {
		userID := id.UserID
		return &userID, nil
	}

	key := id.SessionKey

	return nil, &key
}
