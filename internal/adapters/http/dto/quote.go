package dto

import (
	"errors"
	"strconv"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// cursorFieldID is the sort field quote cursors are built on.
const cursorFieldID = "id"

// QuoteResponse is the HTTP representation of a quote.
type QuoteResponse struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Source   string `json:"source"`
	Weight   int    `json:"weight"`
	Views    int    `json:"views"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
	NetLikes int    `json:"netLikes"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:       q.ID,
		Text:     q.Text,
		Source:   q.Source,
		Weight:   q.Weight,
		Views:    q.Views,
		Likes:    q.Likes,
		Dislikes: q.Dislikes,
		NetLikes: q.NetLikes(),
	}
}

// NewQuoteResponses converts a slice, never returning nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, NewQuoteResponse(q))
	}

	return out
}

// RandomQuoteResponse is the JSON body of GET /quotes/random.
type RandomQuoteResponse struct {
	Quote QuoteResponse `json:"quote"`

	// Mode is "fresh" or "exhausted".
	Mode string `json:"mode"`
}

// NewRandomQuoteResponse converts a selection.
func NewRandomQuoteResponse(sel *domain.Selection) RandomQuoteResponse {
	return RandomQuoteResponse{
		Quote: NewQuoteResponse(sel.Quote),
		Mode:  string(sel.Mode),
	}
}

// PartialResponse carries a rendered HTML fragment for XMLHttpRequest callers.
type PartialResponse struct {
	HTML string `json:"html"`
}

// CreateQuoteRequest is the body of POST /quotes.
// Weight defaults to 1 when omitted; business rules are checked by the service.
type CreateQuoteRequest struct {
	Text   string `json:"text" validate:"required,notempty"`
	Source string `json:"source" validate:"required,notempty,max=255"`
	Weight *int   `json:"weight"`
}

// Draft converts the request into a domain draft.
func (r CreateQuoteRequest) Draft() domain.QuoteDraft {
	weight := domain.DefaultWeight
	if r.Weight != nil {
		weight = *r.Weight
	}

	return domain.QuoteDraft{Text: r.Text, Source: r.Source, Weight: weight}
}

// ReactionResponse is returned by the like and dislike endpoints.
type ReactionResponse struct {
	Likes        int  `json:"likes"`
	Dislikes     int  `json:"dislikes"`
	AlreadyVoted bool `json:"alreadyVoted"`
}

// NewReactionResponse converts a reaction result.
func NewReactionResponse(r *domain.ReactionResult) ReactionResponse {
	return ReactionResponse{
		Likes:        r.Likes,
		Dislikes:     r.Dislikes,
		AlreadyVoted: r.AlreadyVoted,
	}
}

// DashboardRequest holds the dashboard query string.
type DashboardRequest struct {
	PaginationRequest

	Source string `form:"source" validate:"max=255"`
	Search string `form:"search" validate:"max=255"`
}

// Filter converts the request into a domain filter, decoding the cursor.
func (r *DashboardRequest) Filter() (domain.QuoteFilter, error) {
	f := domain.QuoteFilter{
		SourceContains: r.Source,
		Search:         r.Search,
		Limit:          r.GetLimit(),
	}

	cursor, err := r.DecodeCursor()
	if errors.Is(err, ErrNoCursor) {
		return f, nil
	}

	if err != nil {
		return f, err
	}

	afterID, err := strconv.ParseUint(cursor.ID, 10, 0)
	if err != nil || cursor.Field != cursorFieldID {
		return f, ErrInvalidCursor
	}

	f.AfterID = uint(afterID)

	return f, nil
}

// DashboardFilters echoes the active filters.
type DashboardFilters struct {
	Source string `json:"source,omitempty"`
	Search string `json:"search,omitempty"`
}

// DashboardResponse is the JSON body of GET /dashboard.
type DashboardResponse struct {
	Top     []QuoteResponse                   `json:"top"`
	Quotes  *PaginatedResponse[QuoteResponse] `json:"quotes"`
	Filters DashboardFilters                  `json:"filters"`
}

// NewDashboardResponse converts a dashboard.
func NewDashboardResponse(d *domain.Dashboard, req *DashboardRequest) DashboardResponse {
	return DashboardResponse{
		Top:     NewQuoteResponses(d.Top),
		Quotes:  NewPaginatedResponse(NewQuoteResponses(d.Quotes), d.HasMore, quoteCursor),
		Filters: DashboardFilters{Source: req.Source, Search: req.Search},
	}
}

func quoteCursor(q QuoteResponse) *CursorData {
	return NewCursor(cursorFieldID, "", strconv.FormatUint(uint64(q.ID), 10))
}

// ImportQuotesRequest is the body of POST /quotes/import.
type ImportQuotesRequest struct {
	Count int `json:"count" validate:"required,gte=1,lte=50"`
}

// ImportQuotesResponse reports the outcome of an import.
type ImportQuotesResponse struct {
	Created  []QuoteResponse `json:"created"`
	Rejected int             `json:"rejected"`
	Failed   int             `json:"failed"`
}
