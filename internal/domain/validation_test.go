package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuoteDraft(t *testing.T) {
	valid := QuoteDraft{Text: "Stay hungry", Source: "Speech", Weight: 1}

	tests := []struct {
		name        string
		draft       QuoteDraft
		snap        SourceSnapshot
		wantFields  []string
		wantMessage string
	}{
		{
			name:  "valid",
			draft: valid,
		},
		{
			name:  "source with two quotes accepted",
			draft: valid,
			snap:  SourceSnapshot{SourceCount: 2},
		},
		{
			name:        "fourth quote for source",
			draft:       valid,
			snap:        SourceSnapshot{SourceCount: 3},
			wantFields:  []string{"source"},
			wantMessage: "source already has 3 quotes",
		},
		{
			name:        "duplicate text",
			draft:       valid,
			snap:        SourceSnapshot{TextTaken: true},
			wantFields:  []string{"text"},
			wantMessage: "a quote with this text already exists",
		},
		{
			name:        "zero weight",
			draft:       QuoteDraft{Text: "a", Source: "b", Weight: 0},
			wantFields:  []string{"weight"},
			wantMessage: "must be at least 1",
		},
		{
			name:        "weight above form bound",
			draft:       QuoteDraft{Text: "a", Source: "b", Weight: 11},
			wantFields:  []string{"weight"},
			wantMessage: "must be at most 10",
		},
		{
			name:        "source too long",
			draft:       QuoteDraft{Text: "a", Source: strings.Repeat("s", MaxSourceLength+1), Weight: 1},
			wantFields:  []string{"source"},
			wantMessage: "must be at most 255 characters",
		},
		{
			name:       "everything wrong at once",
			draft:      QuoteDraft{Weight: -1},
			wantFields: []string{"text", "source", "weight"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuoteDraft(tt.draft, tt.snap)

			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrValidation)

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, len(tt.wantFields))

			for _, f := range tt.wantFields {
				require.NotNil(t, errs.Field(f), "expected violation on %s", f)
			}

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, errs.Field(tt.wantFields[0]).Message)
			}
		})
	}
}

func TestQuoteDraft_Normalize(t *testing.T) {
	d := QuoteDraft{Text: "  hello \n", Source: "\tbook ", Weight: 4}.Normalize()

	assert.Equal(t, QuoteDraft{Text: "hello", Source: "book", Weight: 4}, d)
}

func TestQuote_NetLikes(t *testing.T) {
	assert.Equal(t, -2, Quote{Likes: 1, Dislikes: 3}.NetLikes())
	assert.Equal(t, 0, Quote{}.NetLikes())
}
