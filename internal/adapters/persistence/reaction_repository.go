package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// ReactionRepository implements ports.ReactionRepository.
type ReactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a ReactionRepository on db.
func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Add stores the reaction unless the user already reacted to the quote.
func (r *ReactionRepository) Add(ctx context.Context, userID, quoteID uint, kind domain.ReactionKind) (bool, error) {
	row := reactionModel{QuoteID: quoteID, UserID: userID, Kind: string(kind)}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("adding %s to quote %d: %w", kind, quoteID, res.Error)
	}

	return res.RowsAffected == 1, nil
}

// Counts returns the likes and dislikes of quoteID.
func (r *ReactionRepository) Counts(ctx context.Context, quoteID uint) (likes, dislikes int, err error) {
	var tallies []struct {
		Kind  string
		Total int
	}

	err = r.db.WithContext(ctx).
		Model(&reactionModel{}).
		Select("kind, COUNT(*) AS total").
		Where("quote_id = ?", quoteID).
		Group("kind").
		Scan(&tallies).Error
	if err != nil {
		return 0, 0, fmt.Errorf("counting reactions for quote %d: %w", quoteID, err)
	}

	for _, t := range tallies {
		switch domain.ReactionKind(t.Kind) {
		case domain.ReactionLike:
			likes = t.Total
		case domain.ReactionDislike:
			dislikes = t.Total
		}
	}

	return likes, dislikes, nil
}
