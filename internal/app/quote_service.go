package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/metrics"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

// Page sizes for FilterQuotes.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxImportBatch bounds a single ImportQuotes call.
const MaxImportBatch = 50

// Creation origins used in logs and metrics.
const (
	OriginUser   = "user"
	OriginImport = "import"
)

// QuoteService orchestrates quote selection, reactions, creation and the
// dashboard. It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	quotes            ports.QuoteRepository
	views             ports.ViewHistoryRepository
	reactions         ports.ReactionRepository
	feed              ports.QuoteFeed
	rng               domain.RandSource
	now               Clock
	importConcurrency int
	executor          *Executor
	logger            *slog.Logger
}

// QuoteServiceConfig contains the dependencies of the quote service.
// Feed is optional; without it ImportQuotes reports the feed unavailable.
type QuoteServiceConfig struct {
	Quotes            ports.QuoteRepository
	Views             ports.ViewHistoryRepository
	Reactions         ports.ReactionRepository
	Feed              ports.QuoteFeed
	Rand              domain.RandSource
	Now               Clock
	ImportConcurrency int
	Logger            *slog.Logger
}

// NewQuoteService creates a quote service. It panics when a repository is
// missing.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Quotes == nil || cfg.Views == nil || cfg.Reactions == nil {
		panic("app: NewQuoteService requires quote, view and reaction repositories")
	}

	rng := cfg.Rand
	if rng == nil {
		rng = domain.NewRandSource(0)
	}

	concurrency := cfg.ImportConcurrency
	if concurrency < 1 {
		concurrency = 1
	}

	logger := componentLogger(cfg.Logger, "app.QuoteService")

	return &QuoteService{
		quotes:            cfg.Quotes,
		views:             cfg.Views,
		reactions:         cfg.Reactions,
		feed:              cfg.Feed,
		rng:               rng,
		now:               cfg.Now.orDefault(),
		importConcurrency: concurrency,
		executor:          NewExecutor(logger),
		logger:            logger,
	}
}

// SelectQuote picks a random quote for id, preferring quotes id has not seen.
// Unseen quotes are drawn by weight and the view is recorded. Once everything
// has been seen the draw covers all quotes and nothing is recorded. A nil
// selection means there are no quotes at all.
func (s *QuoteService) SelectQuote(ctx context.Context, id domain.Identity) (*domain.Selection, error) {
	logger := requestLogger(ctx, s.logger, "SelectQuote")

	if err := id.Validate(); err != nil {
		return nil, err
	}

	all, viewed, err := both(ctx,
		s.quotes.All,
		func(ctx context.Context) (map[uint]struct{}, error) { return s.views.ViewedQuoteIDs(ctx, id) },
	)
	if err != nil {
		return nil, fmt.Errorf("loading selection pool: %w", err)
	}

	if len(all) == 0 {
		logger.DebugContext(ctx, "no quotes available")
		return nil, nil
	}

	available := domain.ExcludeViewed(all, viewed)
	if len(available) == 0 {
		quote, _ := domain.PickQuote(all, s.rng)

		logger.DebugContext(ctx, "view history exhausted",
			slog.Uint64("quote_id", uint64(quote.ID)),
			slog.Int("pool", len(all)),
		)
		metrics.RecordServed(string(domain.SelectionExhausted), id.Kind())

		return &domain.Selection{Quote: quote, Mode: domain.SelectionExhausted}, nil
	}

	quote, _ := domain.PickQuote(available, s.rng)

	recorded, err := s.views.RecordView(ctx, id, quote.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("recording view: %w", err)
	}

	if recorded {
		metrics.QuoteViewsRecorded.Inc()

		fresh, err := s.quotes.Get(ctx, quote.ID)
		if err != nil {
			return nil, fmt.Errorf("reloading quote: %w", err)
		}

		quote = *fresh
	}

	logger.DebugContext(ctx, "quote selected",
		slog.Uint64("quote_id", uint64(quote.ID)),
		slog.Int("available", len(available)),
		slog.Bool("recorded", recorded),
	)
	metrics.RecordServed(string(domain.SelectionFresh), id.Kind())

	return &domain.Selection{Quote: quote, Mode: domain.SelectionFresh, Recorded: recorded}, nil
}

// GetQuote returns one quote with its current counts.
func (s *QuoteService) GetQuote(ctx context.Context, id uint) (*domain.Quote, error) {
	quote, err := s.quotes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	return quote, nil
}

// React records a like or dislike by an authenticated user. A second reaction
// from the same user leaves the counts unchanged and sets AlreadyVoted.
func (s *QuoteService) React(
	ctx context.Context,
	id domain.Identity,
	quoteID uint,
	kind domain.ReactionKind,
) (*domain.ReactionResult, error) {
	logger := requestLogger(ctx, s.logger, "React")

	if !kind.Valid() {
		return nil, domain.NewValidationErrorWithValue("kind", "must be like or dislike", string(kind))
	}

	if !id.IsAuthenticated() {
		return nil, domain.NewUnauthenticatedError(string(kind), "")
	}

	if _, err := s.quotes.Get(ctx, quoteID); err != nil {
		return nil, fmt.Errorf("getting quote: %w", err)
	}

	added, err := s.reactions.Add(ctx, id.UserID, quoteID, kind)
	if err != nil {
		return nil, fmt.Errorf("storing reaction: %w", err)
	}

	likes, dislikes, err := s.reactions.Counts(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("counting reactions: %w", err)
	}

	metrics.RecordReaction(string(kind), !added)
	logger.InfoContext(ctx, "reaction handled",
		slog.Uint64("quote_id", uint64(quoteID)),
		slog.String("kind", string(kind)),
		slog.Bool("already_voted", !added),
	)

	return &domain.ReactionResult{Likes: likes, Dislikes: dislikes, AlreadyVoted: !added}, nil
}

// CreateQuote validates and stores a user-submitted quote.
func (s *QuoteService) CreateQuote(ctx context.Context, draft domain.QuoteDraft) (*domain.Quote, error) {
	return s.createQuote(ctx, draft, OriginUser)
}

func (s *QuoteService) createQuote(ctx context.Context, draft domain.QuoteDraft, origin string) (*domain.Quote, error) {
	write := Write[domain.QuoteDraft, *domain.Quote]{
		Name: "create_quote",
		Validate: func(ctx context.Context, d domain.QuoteDraft) error {
			snap, err := s.quotes.Snapshot(ctx, d.Text, d.Source)
			if err != nil {
				return fmt.Errorf("loading source snapshot: %w", err)
			}

			return domain.ValidateQuoteDraft(d, snap)
		},
		Persist: func(ctx context.Context, d domain.QuoteDraft) (*domain.Quote, error) {
			created, err := s.quotes.Create(ctx, d)
			if domain.IsConflict(err) {
				return nil, domain.ValidationErrors{
					{Field: "text", Message: "a quote with this text already exists", Value: d.Text},
				}
			}

			return created, err
		},
		Verify: func(ctx context.Context, created *domain.Quote) (*domain.Quote, error) {
			return s.quotes.Get(ctx, created.ID)
		},
	}

	quote, err := Execute(ctx, s.executor, write, draft.Normalize())

	switch {
	case err == nil:
		metrics.RecordCreated(origin, "created")
	case domain.IsValidation(err):
		metrics.RecordCreated(origin, "rejected")
	default:
		metrics.RecordCreated(origin, "error")
	}

	return quote, err
}

// TopQuotes ranks quotes by likes minus dislikes, ties by ascending ID.
// A non-positive limit selects domain.DefaultTopLimit.
func (s *QuoteService) TopQuotes(ctx context.Context, limit int) ([]domain.Quote, error) {
	if limit <= 0 {
		limit = domain.DefaultTopLimit
	}

	quotes, err := s.quotes.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking quotes: %w", err)
	}

	return quotes, nil
}

// FilterQuotes returns one page of quotes matching f by ascending ID and
// whether another page follows.
func (s *QuoteService) FilterQuotes(ctx context.Context, f domain.QuoteFilter) ([]domain.Quote, bool, error) {
	limit := f.Limit

	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	f.Limit = limit + 1

	quotes, err := s.quotes.Filter(ctx, f)
	if err != nil {
		return nil, false, fmt.Errorf("filtering quotes: %w", err)
	}

	hasMore := len(quotes) > limit
	if hasMore {
		quotes = quotes[:limit]
	}

	return quotes, hasMore, nil
}

// Dashboard loads the top ranking and one filtered page concurrently.
func (s *QuoteService) Dashboard(ctx context.Context, f domain.QuoteFilter) (*domain.Dashboard, error) {
	type page struct {
		quotes  []domain.Quote
		hasMore bool
	}

	top, filtered, err := both(ctx,
		func(ctx context.Context) ([]domain.Quote, error) { return s.TopQuotes(ctx, domain.DefaultTopLimit) },
		func(ctx context.Context) (page, error) {
			quotes, hasMore, err := s.FilterQuotes(ctx, f)
			return page{quotes: quotes, hasMore: hasMore}, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("building dashboard: %w", err)
	}

	return &domain.Dashboard{Top: top, Quotes: filtered.quotes, HasMore: filtered.hasMore}, nil
}

// ImportResult summarizes an ImportQuotes run.
type ImportResult struct {
	Created  []domain.Quote
	Rejected int
	Failed   int
}

// ImportQuotes fetches count drafts from the upstream feed concurrently and
// creates them one at a time so the per-source limit sees earlier imports.
// Drafts rejected by validation and failed fetches are counted, not fatal.
func (s *QuoteService) ImportQuotes(ctx context.Context, count int) (*ImportResult, error) {
	logger := requestLogger(ctx, s.logger, "ImportQuotes")

	if s.feed == nil {
		return nil, domain.NewUnavailableError("quote-feed", "import is disabled")
	}

	if count < 1 || count > MaxImportBatch {
		return nil, domain.NewValidationErrorWithValue("count",
			fmt.Sprintf("must be between 1 and %d", MaxImportBatch), count)
	}

	result := &ImportResult{}

	var lastErr error

	for _, fetched := range gather(ctx, count, s.importConcurrency, s.feed.RandomDraft) {
		if fetched.err != nil {
			result.Failed++
			lastErr = fetched.err

			continue
		}

		quote, err := s.createQuote(ctx, fetched.value, OriginImport)
		switch {
		case err == nil:
			result.Created = append(result.Created, *quote)
		case domain.IsValidation(err):
			result.Rejected++
		default:
			return nil, fmt.Errorf("storing imported quote: %w", err)
		}
	}

	if result.Failed == count {
		return nil, fmt.Errorf("fetching upstream quotes: %w", lastErr)
	}

	logger.InfoContext(ctx, "import finished",
		slog.Int("created", len(result.Created)),
		slog.Int("rejected", result.Rejected),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}
