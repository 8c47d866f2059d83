package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// ViewHistoryRepository implements ports.ViewHistoryRepository.
type ViewHistoryRepository struct {
	db *gorm.DB
}

// NewViewHistoryRepository creates a ViewHistoryRepository on db.
func NewViewHistoryRepository(db *gorm.DB) *ViewHistoryRepository {
	return &ViewHistoryRepository{db: db}
}

func ownedBy(db *gorm.DB, id domain.Identity) *gorm.DB {
	if id.IsAuthenticated() {
		return db.Where("user_id = ?", id.UserID)
	}

	return db.Where("session_key = ?", id.SessionKey)
}

// ViewedQuoteIDs returns the quotes already shown to id.
func (r *ViewHistoryRepository) ViewedQuoteIDs(ctx context.Context, id domain.Identity) (map[uint]struct{}, error) {
	var ids []uint

	q := ownedBy(r.db.WithContext(ctx).Model(&viewHistoryModel{}), id)
	if err := q.Pluck("quote_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("loading view history: %w", err)
	}

	viewed := make(map[uint]struct{}, len(ids))
	for _, qid := range ids {
		viewed[qid] = struct{}{}
	}

	return viewed, nil
}

// RecordView inserts the first view and increments quotes.views in one
// transaction. A conflicting row means another request already recorded it.
func (r *ViewHistoryRepository) RecordView(ctx context.Context, id domain.Identity, quoteID uint, at time.Time) (bool, error) {
	userID, sessionKey := ownerColumns(id)
	recorded := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := viewHistoryModel{
			UserID:     userID,
			SessionKey: sessionKey,
			QuoteID:    quoteID,
			ViewedAt:   at.UTC(),
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return nil
		}

		recorded = true

		return tx.Model(&quoteModel{}).
			Where("id = ?", quoteID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	})
	if err != nil {
		return false, fmt.Errorf("recording view of quote %d: %w", quoteID, err)
	}

	return recorded, nil
}

// PurgeBefore deletes views older than cutoff.
func (r *ViewHistoryRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("viewed_at < ?", cutoff.UTC()).Delete(&viewHistoryModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("purging view history: %w", res.Error)
	}

	return res.RowsAffected, nil
}
