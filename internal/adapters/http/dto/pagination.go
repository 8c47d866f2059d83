package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Page sizes for the dashboard listing.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var (
	// ErrInvalidCursor rejects a cursor that does not decode.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNoCursor marks a first-page request. It is not a failure.
	ErrNoCursor = errors.New("no cursor provided")
)

// PaginationRequest is the cursor and page size from the query string.
type PaginationRequest struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"  validate:"omitempty,gte=1,lte=100"`
}

// GetLimit clamps Limit into 1..MaxLimit, defaulting to DefaultLimit.
func (p *PaginationRequest) GetLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	default:
		return p.Limit
	}
}

// DecodeCursor decodes Cursor, or returns ErrNoCursor when it is empty.
func (p *PaginationRequest) DecodeCursor() (*CursorData, error) {
	return DecodeCursor(p.Cursor)
}

// PaginatedResponse is one page of items. NextCursor is set only when
// HasMore is true.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// NewPaginatedResponse builds a page. The repository has already fetched
// one row past the page to learn hasMore and trimmed items back.
func NewPaginatedResponse[T any](items []T, hasMore bool, cursorOf func(T) *CursorData) *PaginatedResponse[T] {
	page := &PaginatedResponse[T]{Items: items, HasMore: hasMore}
	if page.Items == nil {
		page.Items = []T{}
	}

	if hasMore && len(items) > 0 && cursorOf != nil {
		page.NextCursor = EncodeCursor(cursorOf(items[len(items)-1]))
	}

	return page
}

// CursorData is the position a cursor resumes after: the sort field, its
// value on the last row, and that row's ID as tie-breaker.
type CursorData struct {
	Field string `json:"f"`
	Value string `json:"v"`
	ID    string `json:"id"`
}

func NewCursor(field, value, id string) *CursorData {
	return &CursorData{Field: field, Value: value, ID: id}
}

// EncodeCursor renders data as URL-safe base64 JSON.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(encoded string) (*CursorData, error) {
	if encoded == "" {
		return nil, ErrNoCursor
	}

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}
