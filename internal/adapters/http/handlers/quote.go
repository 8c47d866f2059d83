package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-roulette/internal/app"
	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var partials = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// QuoteHandler handles quote, reaction and dashboard endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

type partialData struct {
	Quote         domain.Quote
	Authenticated bool
	Exhausted     bool
}

// GetRandomQuote handles GET /api/v1/quotes/random
// Serves a weighted random quote the caller has not seen yet, falling back
// to any quote once all have been seen. XMLHttpRequest callers get
// {"html": fragment}; others get JSON, or 204 when there are no quotes.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.RandomQuoteResponse
// @Success 204
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	id := middleware.GetIdentity(c)

	sel, err := h.service.SelectQuote(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if middleware.IsPartialRequest(c) {
		html, err := renderPartial(sel, id)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.PartialResponse{HTML: html})

		return
	}

	if sel == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.NewRandomQuoteResponse(sel))
}

// renderPartial renders the quote fragment. An empty pool renders "".
func renderPartial(sel *domain.Selection, id domain.Identity) (string, error) {
	if sel == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := partials.ExecuteTemplate(&buf, "quote_partial", partialData{
		Quote:         sel.Quote,
		Authenticated: id.IsAuthenticated(),
		Exhausted:     sel.Mode == domain.SelectionExhausted,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// GetQuoteByID handles GET /api/v1/quotes/:id
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	quoteID, ok := quoteIDParam(c)
	if !ok {
		return
	}

	quote, err := h.service.GetQuote(c.Request.Context(), quoteID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(*quote))
}

// CreateQuote handles POST /api/v1/quotes
// Text must be unique, a source holds at most three quotes and weight is
// 1..10 (default 1).
//
// @Summary Create a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	quote, err := h.service.CreateQuote(c.Request.Context(), req.Draft())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/quotes/"+strconv.FormatUint(uint64(quote.ID), 10))
	c.JSON(http.StatusCreated, dto.NewQuoteResponse(*quote))
}

// React returns the handler for POST /api/v1/quotes/:id/{like,dislike}.
// A second reaction by the same user answers 200 with alreadyVoted set and
// unchanged counts.
//
// @Summary Like or dislike a quote
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.ReactionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id}/like [post]
// @Router /api/v1/quotes/{id}/dislike [post]
func (h *QuoteHandler) React(kind domain.ReactionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID, ok := quoteIDParam(c)
		if !ok {
			return
		}

		result, err := h.service.React(c.Request.Context(), middleware.GetIdentity(c), quoteID, kind)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.NewReactionResponse(result))
	}
}

// Dashboard handles GET /api/v1/dashboard
// Returns the top ten quotes by likes minus dislikes and a filtered,
// cursor-paginated listing. source and search match case-insensitively.
//
// @Summary Quote dashboard
// @Tags quotes
// @Produce json
// @Param source query string false "Source contains"
// @Param search query string false "Text or source contains"
// @Param cursor query string false "Page cursor"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} dto.DashboardResponse
// @Router /api/v1/dashboard [get]
func (h *QuoteHandler) Dashboard(c *gin.Context) {
	var req dto.DashboardRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	filter, err := req.Filter()
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "invalid cursor")
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), filter)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(dashboard, &req))
}

// ImportQuotes handles POST /api/v1/quotes/import
// Pulls quotes from the upstream feed through the same validation as
// CreateQuote. Rejected drafts and failed fetches are counted.
//
// @Summary Import quotes from the upstream feed
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.ImportQuotesRequest true "Batch size"
// @Success 200 {object} dto.ImportQuotesResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/import [post]
func (h *QuoteHandler) ImportQuotes(c *gin.Context) {
	var req dto.ImportQuotesRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	result, err := h.service.ImportQuotes(c.Request.Context(), req.Count)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportQuotesResponse{
		Created:  dto.NewQuoteResponses(result.Created),
		Rejected: result.Rejected,
		Failed:   result.Failed,
	})
}

// quoteIDParam parses :id, writing a 400 when it is not a positive integer.
func quoteIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "quote ID must be a positive integer")
		return 0, false
	}

	return uint(id), true
}

// RegisterQuoteRoutes registers quote routes on the given router group.
// requireUser guards the routes that need a logged-in user.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup, requireUser gin.HandlerFunc) {
	rg.GET("/dashboard", h.Dashboard)

	quotes := rg.Group("/quotes")
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/:id", h.GetQuoteByID)

	protected := quotes.Group("", requireUser)
	protected.POST("", h.CreateQuote)
	protected.POST("/import", h.ImportQuotes)
	protected.POST("/:id/like", h.React(domain.ReactionLike))
	protected.POST("/:id/dislike", h.React(domain.ReactionDislike))
}
