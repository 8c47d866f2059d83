package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// quoteColumns selects a quote with its reaction tallies. It must be used
// with joinReactions and a GROUP BY on quotes.id.
const quoteColumns = `quotes.id, quotes.text, quotes.source, quotes.weight, quotes.views,
	COUNT(CASE WHEN r.kind = 'like' THEN 1 END) AS likes,
	COUNT(CASE WHEN r.kind = 'dislike' THEN 1 END) AS dislikes,
	COUNT(CASE WHEN r.kind = 'like' THEN 1 END) - COUNT(CASE WHEN r.kind = 'dislike' THEN 1 END) AS net_likes`

const joinReactions = "LEFT JOIN quote_reactions r ON r.quote_id = quotes.id"

// QuoteRepository implements ports.QuoteRepository.
type QuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a QuoteRepository on db.
func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) withCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&quoteModel{}).
		Select(quoteColumns).
		Joins(joinReactions).
		Group("quotes.id")
}

func scanQuotes(q *gorm.DB) ([]domain.Quote, error) {
	var rows []quoteRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	quotes := make([]domain.Quote, len(rows))
	for i, row := range rows {
		quotes[i] = row.toDomain()
	}

	return quotes, nil
}

// All returns every quote ordered by ID.
func (r *QuoteRepository) All(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := scanQuotes(r.withCounts(ctx).Order("quotes.id ASC"))
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}

// Get returns one quote or domain.ErrNotFound.
func (r *QuoteRepository) Get(ctx context.Context, id uint) (*domain.Quote, error) {
	quotes, err := scanQuotes(r.withCounts(ctx).Where("quotes.id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("getting quote %d: %w", id, err)
	}

	if len(quotes) == 0 {
		return nil, notFound("quote", id, gorm.ErrRecordNotFound)
	}

	return &quotes[0], nil
}

// Snapshot reports text usage and the number of quotes for source.
func (r *QuoteRepository) Snapshot(ctx context.Context, text, source string) (domain.SourceSnapshot, error) {
	var textCount, sourceCount int64

	if err := r.db.WithContext(ctx).Model(&quoteModel{}).Where("text = ?", text).Count(&textCount).Error; err != nil {
		return domain.SourceSnapshot{}, fmt.Errorf("checking quote text: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&quoteModel{}).Where("source = ?", source).Count(&sourceCount).Error; err != nil {
		return domain.SourceSnapshot{}, fmt.Errorf("counting quotes for source: %w", err)
	}

	return domain.SourceSnapshot{TextTaken: textCount > 0, SourceCount: int(sourceCount)}, nil
}

// Create inserts a validated draft.
func (r *QuoteRepository) Create(ctx context.Context, draft domain.QuoteDraft) (*domain.Quote, error) {
	m := newQuoteModel(draft)

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.NewConflictError("quote", "text", "a quote with this text already exists")
		}

		return nil, fmt.Errorf("creating quote: %w", err)
	}

	return &domain.Quote{ID: m.ID, Text: m.Text, Source: m.Source, Weight: m.Weight, Views: m.Views}, nil
}

// Top ranks quotes by likes minus dislikes, ties by ascending ID.
func (r *QuoteRepository) Top(ctx context.Context, limit int) ([]domain.Quote, error) {
	quotes, err := scanQuotes(r.withCounts(ctx).Order("net_likes DESC, quotes.id ASC").Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("ranking quotes: %w", err)
	}

	return quotes, nil
}

// Filter lists quotes matching f by ascending ID. Matching is on folded
// columns, so it ignores case beyond ASCII.
func (r *QuoteRepository) Filter(ctx context.Context, f domain.QuoteFilter) ([]domain.Quote, error) {
	q := r.withCounts(ctx)

	if f.SourceContains != "" {
		q = q.Where(`quotes.source_folded LIKE ? ESCAPE '\'`, likePattern(f.SourceContains))
	}

	if f.Search != "" {
		pattern := likePattern(f.Search)
		q = q.Where(`(quotes.text_folded LIKE ? ESCAPE '\' OR quotes.source_folded LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	if f.AfterID > 0 {
		q = q.Where("quotes.id > ?", f.AfterID)
	}

	q = q.Order("quotes.id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	quotes, err := scanQuotes(q)
	if err != nil {
		return nil, fmt.Errorf("filtering quotes: %w", err)
	}

	return quotes, nil
}
