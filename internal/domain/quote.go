package domain

import "strings"

// Quote limits.
const (
	// MaxQuotesPerSource caps how many quotes may share one source.
	MaxQuotesPerSource = 3

	// MaxSourceLength is the longest accepted source, in characters.
	MaxSourceLength = 255

	// MinWeight and MaxWeight bound the weight of a newly created quote.
	MinWeight = 1
	MaxWeight = 10

	// DefaultWeight is applied when a draft leaves weight unset.
	DefaultWeight = 1

	// DefaultTopLimit is the size of the dashboard ranking.
	DefaultTopLimit = 10
)

// Quote is a stored quotation with its engagement counters.
type Quote struct {
	ID     uint
	Text   string
	Source string

	// Weight is the relative chance of being picked. Zero-weight quotes are
	// only served when no positive-weight quote is available.
	Weight int

	// Views counts distinct identities the quote was first shown to.
	Views int

	Likes    int
	Dislikes int
}

// NetLikes is likes minus dislikes, the dashboard ranking key.
func (q Quote) NetLikes() int {
	return q.Likes - q.Dislikes
}

// QuoteDraft holds the user-supplied fields of a quote to be created.
type QuoteDraft struct {
	Text   string
	Source string
	Weight int
}

// Normalize trims surrounding whitespace. Weight is left untouched.
func (d QuoteDraft) Normalize() QuoteDraft {
	return QuoteDraft{
		Text:   strings.TrimSpace(d.Text),
		Source: strings.TrimSpace(d.Source),
		Weight: d.Weight,
	}
}

// QuoteFilter narrows the dashboard listing. Empty fields match everything.
type QuoteFilter struct {
	// SourceContains is a case-insensitive substring of Source.
	SourceContains string

	// Search is a case-insensitive substring of Text or Source.
	Search string

	// AfterID and Limit page through results ordered by ID.
	AfterID uint
	Limit   int
}

// Dashboard is the combined ranking and filtered listing.
type Dashboard struct {
	Top     []Quote
	Quotes  []Quote
	HasMore bool
}
