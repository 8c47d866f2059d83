package dto

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

func TestCreateQuoteRequest_Draft(t *testing.T) {
	seven := 7

	tests := []struct {
		name       string
		req        CreateQuoteRequest
		wantWeight int
	}{
		{"weight omitted", CreateQuoteRequest{Text: "a", Source: "b"}, domain.DefaultWeight},
		{"weight given", CreateQuoteRequest{Text: "a", Source: "b", Weight: &seven}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := tt.req.Draft()

			assert.Equal(t, "a", draft.Text)
			assert.Equal(t, "b", draft.Source)
			assert.Equal(t, tt.wantWeight, draft.Weight)
		})
	}
}

func TestCreateQuoteRequest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"valid", `{"text":"Know thyself.","source":"Socrates","weight":2}`, ""},
		{"missing text", `{"source":"Socrates"}`, "text"},
		{"blank source", `{"text":"Know thyself.","source":"  "}`, "source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/", tt.body)

			var req CreateQuoteRequest
			err := BindAndValidate(c, &req)

			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, ValidationErrors(err), tt.wantField)
		})
	}
}

func TestNewQuoteResponse(t *testing.T) {
	resp := NewQuoteResponse(domain.Quote{
		ID: 3, Text: "t", Source: "s", Weight: 2, Views: 5, Likes: 4, Dislikes: 6,
	})

	assert.Equal(t, uint(3), resp.ID)
	assert.Equal(t, 5, resp.Views)
	assert.Equal(t, -2, resp.NetLikes)
}

func TestNewQuoteResponses_NeverNil(t *testing.T) {
	got := NewQuoteResponses(nil)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewRandomQuoteResponse(t *testing.T) {
	resp := NewRandomQuoteResponse(&domain.Selection{
		Quote: domain.Quote{ID: 1, Text: "t"},
		Mode:  domain.SelectionExhausted,
	})

	assert.Equal(t, "exhausted", resp.Mode)
	assert.Equal(t, uint(1), resp.Quote.ID)
}

func TestDashboardRequest_Filter(t *testing.T) {
	validCursor := EncodeCursor(NewCursor("id", "", "12"))

	tests := []struct {
		name    string
		req     DashboardRequest
		want    domain.QuoteFilter
		wantErr bool
	}{
		{
			name: "first page uses default limit",
			req:  DashboardRequest{Source: "sen", Search: "luck"},
			want: domain.QuoteFilter{SourceContains: "sen", Search: "luck", Limit: DefaultLimit},
		},
		{
			name: "cursor sets AfterID",
			req: DashboardRequest{
				PaginationRequest: PaginationRequest{Cursor: validCursor, Limit: 5},
			},
			want: domain.QuoteFilter{AfterID: 12, Limit: 5},
		},
		{
			name:    "not base64",
			req:     DashboardRequest{PaginationRequest: PaginationRequest{Cursor: "!!!"}},
			wantErr: true,
		},
		{
			name: "not JSON",
			req: DashboardRequest{PaginationRequest: PaginationRequest{
				Cursor: base64.URLEncoding.EncodeToString([]byte("nope")),
			}},
			wantErr: true,
		},
		{
			name: "wrong sort field",
			req: DashboardRequest{PaginationRequest: PaginationRequest{
				Cursor: EncodeCursor(NewCursor("likes", "3", "12")),
			}},
			wantErr: true,
		},
		{
			name: "non-numeric id",
			req: DashboardRequest{PaginationRequest: PaginationRequest{
				Cursor: EncodeCursor(NewCursor("id", "", "abc")),
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Filter()

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCursor)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDashboardRequest_BindQuery(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/v1/dashboard?source=Seneca&search=mind&limit=3", "")

	var req DashboardRequest
	require.NoError(t, BindQueryAndValidate(c, &req))

	assert.Equal(t, "Seneca", req.Source)
	assert.Equal(t, "mind", req.Search)
	assert.Equal(t, 3, req.Limit)

	c, _ = newTestContext(http.MethodGet, "/api/v1/dashboard?limit=500", "")

	var tooBig DashboardRequest
	require.ErrorIs(t, BindQueryAndValidate(c, &tooBig), ErrValidation)
}

func TestNewDashboardResponse(t *testing.T) {
	d := &domain.Dashboard{
		Top:     []domain.Quote{{ID: 2, Likes: 3}},
		Quotes:  []domain.Quote{{ID: 4}, {ID: 9}},
		HasMore: true,
	}

	resp := NewDashboardResponse(d, &DashboardRequest{Source: "sen"})

	require.Len(t, resp.Top, 1)
	assert.Equal(t, 3, resp.Top[0].NetLikes)
	assert.Equal(t, "sen", resp.Filters.Source)
	assert.True(t, resp.Quotes.HasMore)

	cursor, err := DecodeCursor(resp.Quotes.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, "id", cursor.Field)
	assert.Equal(t, "9", cursor.ID)
}

func TestNewPaginatedResponse(t *testing.T) {
	build := func(q QuoteResponse) *CursorData { return quoteCursor(q) }

	t.Run("nil items become empty", func(t *testing.T) {
		resp := NewPaginatedResponse[QuoteResponse](nil, false, build)

		require.NotNil(t, resp.Items)
		assert.Empty(t, resp.NextCursor)
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		resp := NewPaginatedResponse([]QuoteResponse{{ID: 1}}, false, build)

		assert.False(t, resp.HasMore)
		assert.Empty(t, resp.NextCursor)
	})

	t.Run("nil builder", func(t *testing.T) {
		resp := NewPaginatedResponse([]QuoteResponse{{ID: 1}}, true, nil)

		assert.True(t, resp.HasMore)
		assert.Empty(t, resp.NextCursor)
	})
}

func TestPaginationRequest_GetLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{40, 40},
		{MaxLimit + 1, MaxLimit},
	}

	for _, tt := range tests {
		p := PaginationRequest{Limit: tt.limit}
		assert.Equal(t, tt.want, p.GetLimit(), "limit %d", tt.limit)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	assert.Empty(t, EncodeCursor(nil))

	_, err := DecodeCursor("")
	require.ErrorIs(t, err, ErrNoCursor)

	encoded := EncodeCursor(NewCursor("id", "", "77"))
	decoded, err := DecodeCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, "77", decoded.ID)
}

func TestNewUserResponse(t *testing.T) {
	assert.Nil(t, NewUserResponse(nil))

	resp := NewUserResponse(&domain.User{ID: 5, Username: "ann", Email: "ann@example.org", PasswordHash: "secret"})
	assert.Equal(t, "ann", resp.Username)
	assert.Equal(t, uint(5), resp.ID)
}

func TestRegisterRequest(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "/",
		`{"username":"ann","email":"not-an-email","password":"password1","password_confirm":"password1"}`)

	var req RegisterRequest
	err := BindAndValidate(c, &req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "must be a valid email address", ValidationErrors(err)["email"])

	reg := RegisterRequest{Username: "ann", Password: "p", PasswordConfirm: "q"}.Registration()
	assert.Equal(t, "q", reg.PasswordConfirm)
}
