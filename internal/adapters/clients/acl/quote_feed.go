package acl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/clients"
	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

var (
	_ ports.QuoteFeed     = (*QuoteFeed)(nil)
	_ ports.HealthChecker = (*QuoteFeed)(nil)
)

// randomPath returns a one-element array of random quotes.
const randomPath = "/quotes/random?limit=1"

// QuoteFeedConfig contains configuration for the quote feed.
type QuoteFeedConfig struct {
	// Client is the HTTP client; its BaseURL points at the quotable API.
	Client *clients.Client

	// Name identifies the upstream in health output and errors.
	Name string

	Logger *slog.Logger
}

// QuoteFeed implements ports.QuoteFeed on the quotable.io API.
type QuoteFeed struct {
	BaseAdapter
	logger *slog.Logger
}

// NewQuoteFeed creates a quote feed. It panics if Client is nil.
func NewQuoteFeed(cfg QuoteFeedConfig) *QuoteFeed {
	if cfg.Client == nil {
		panic("QuoteFeed: Client is required")
	}

	name := cfg.Name
	if name == "" {
		name = "quote-feed"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteFeed{
		BaseAdapter: NewBaseAdapter(cfg.Client, name),
		logger:      logger.With(slog.String("component", "acl.QuoteFeed")),
	}
}

// quotableQuote is the upstream DTO. It never leaves this package.
type quotableQuote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// RandomDraft fetches one random upstream quote as a creation draft.
func (f *QuoteFeed) RandomDraft(ctx context.Context) (domain.QuoteDraft, error) {
	f.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", randomPath))

	body, err := f.Get(ctx, randomPath, "fetch random quote")
	if err != nil {
		return domain.QuoteDraft{}, err
	}

	external, err := DecodeResponse[[]quotableQuote](body)
	if err != nil {
		return domain.QuoteDraft{}, domain.NewUnavailableError(f.ServiceName(), err.Error())
	}

	drafts, err := TranslateSlice(*external, translateQuote)
	if err != nil {
		return domain.QuoteDraft{}, err
	}

	if len(drafts) == 0 {
		return domain.QuoteDraft{}, domain.NewUnavailableError(f.ServiceName(), "empty random quote response")
	}

	f.logger.Log(ctx, logging.LevelTrace, "translated upstream quote",
		slog.String("source", drafts[0].Source))

	return drafts[0], nil
}

// translateQuote maps quotable's content and author to a draft with the
// default weight. Authors longer than a source allows are truncated.
func translateQuote(ext *quotableQuote) (domain.QuoteDraft, error) {
	if err := ValidateRequired(ext.Content, "content"); err != nil {
		return domain.QuoteDraft{}, err
	}

	author := strings.TrimSpace(ext.Author)
	if author == "" {
		author = "Unknown"
	}

	if utf8.RuneCountInString(author) > domain.MaxSourceLength {
		author = string([]rune(author)[:domain.MaxSourceLength])
	}

	return domain.QuoteDraft{
		Text:   strings.TrimSpace(ext.Content),
		Source: author,
		Weight: domain.DefaultWeight,
	}.Normalize(), nil
}

// Name implements ports.HealthChecker.
func (f *QuoteFeed) Name() string {
	return f.ServiceName()
}

// Check implements ports.HealthChecker by fetching one random quote.
func (f *QuoteFeed) Check(ctx context.Context) error {
	body, err := f.Get(ctx, randomPath, "health check")
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	_, _ = io.Copy(io.Discard, body)

	return nil
}
