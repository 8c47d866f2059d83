package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

func TestQuoteRepository_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewQuoteRepository(store.DB())
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.QuoteDraft{Text: "Be yourself.", Source: "Wilde", Weight: 3})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Zero(t, created.Views)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Be yourself.", got.Text)
	assert.Equal(t, "Wilde", got.Source)
	assert.Equal(t, 3, got.Weight)
	assert.Zero(t, got.Likes)
	assert.Zero(t, got.Dislikes)
}

func TestQuoteRepository_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := NewQuoteRepository(store.DB()).Get(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Contains(t, err.Error(), `"42"`)
}

func TestQuoteRepository_CreateDuplicateText(t *testing.T) {
	store := newTestStore(t)
	repo := NewQuoteRepository(store.DB())
	ctx := context.Background()

	seedQuote(t, store, "Same words.", "A", 1)

	_, err := repo.Create(ctx, domain.QuoteDraft{Text: "Same words.", Source: "B", Weight: 1})

	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
}

func TestQuoteRepository_Snapshot(t *testing.T) {
	store := newTestStore(t)
	repo := NewQuoteRepository(store.DB())
	ctx := context.Background()

	seedQuote(t, store, "one", "Seneca", 1)
	seedQuote(t, store, "two", "Seneca", 1)
	seedQuote(t, store, "three", "Aurelius", 1)

	snap, err := repo.Snapshot(ctx, "one", "Seneca")
	require.NoError(t, err)
	assert.True(t, snap.TextTaken)
	assert.Equal(t, 2, snap.SourceCount)

	snap, err = repo.Snapshot(ctx, "four", "seneca")
	require.NoError(t, err)
	assert.False(t, snap.TextTaken)
	assert.Zero(t, snap.SourceCount)
}

func TestQuoteRepository_All(t *testing.T) {
	store := newTestStore(t)
	repo := NewQuoteRepository(store.DB())

	a := seedQuote(t, store, "a", "S", 1)
	b := seedQuote(t, store, "b", "S", 2)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, b.ID, all[1].ID)
}

func TestQuoteRepository_Top(t *testing.T) {
	store := newTestStore(t)
	quotes := NewQuoteRepository(store.DB())
	reactions := NewReactionRepository(store.DB())
	ctx := context.Background()

	q1 := seedQuote(t, store, "q1", "S1", 1)
	q2 := seedQuote(t, store, "q2", "S2", 1)
	q3 := seedQuote(t, store, "q3", "S3", 1)
	u1 := seedUser(t, store, "ann")
	u2 := seedUser(t, store, "bob")

	// q2: +2, q3: +1 -1 = 0, q1: 0. Ties break on ID.
	for _, r := range []struct {
		user  uint
		quote uint
		kind  domain.ReactionKind
	}{
		{u1.ID, q2.ID, domain.ReactionLike},
		{u2.ID, q2.ID, domain.ReactionLike},
		{u1.ID, q3.ID, domain.ReactionLike},
		{u2.ID, q3.ID, domain.ReactionDislike},
	} {
		_, err := reactions.Add(ctx, r.user, r.quote, r.kind)
		require.NoError(t, err)
	}

	top, err := quotes.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, q2.ID, top[0].ID)
	assert.Equal(t, 2, top[0].Likes)
	assert.Equal(t, q1.ID, top[1].ID)
	assert.Equal(t, q3.ID, top[2].ID)
	assert.Equal(t, 1, top[2].Likes)
	assert.Equal(t, 1, top[2].Dislikes)

	limited, err := quotes.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, q2.ID, limited[0].ID)
}

func TestQuoteRepository_Filter(t *testing.T) {
	store := newTestStore(t)
	repo := NewQuoteRepository(store.DB())
	ctx := context.Background()

	wisdom := seedQuote(t, store, "Knowing yourself is the beginning of all wisdom.", "Aristotle", 1)
	oscar := seedQuote(t, store, "Be yourself; everyone else is taken.", "Oscar Wilde", 1)
	percent := seedQuote(t, store, "Give 100% effort.", "Coach_Bob", 1)
	emile := seedQuote(t, store, "Être ou ne pas être, voilà la question.", "Émile Zola", 1)

	tests := []struct {
		name   string
		filter domain.QuoteFilter
		want   []uint
	}{
		{"no filter", domain.QuoteFilter{}, []uint{wisdom.ID, oscar.ID, percent.ID, emile.ID}},
		{"source case-insensitive", domain.QuoteFilter{SourceContains: "wilde"}, []uint{oscar.ID}},
		{"search text", domain.QuoteFilter{Search: "YOURSELF"}, []uint{wisdom.ID, oscar.ID}},
		{"search matches source", domain.QuoteFilter{Search: "aristotle"}, []uint{wisdom.ID}},
		{"both filters", domain.QuoteFilter{SourceContains: "oscar", Search: "yourself"}, []uint{oscar.ID}},
		{"percent is literal", domain.QuoteFilter{Search: "100%"}, []uint{percent.ID}},
		{"underscore is literal", domain.QuoteFilter{SourceContains: "o_c"}, nil},
		{"non-ASCII source ignores case", domain.QuoteFilter{SourceContains: "émile"}, []uint{emile.ID}},
		{"non-ASCII search ignores case", domain.QuoteFilter{Search: "ÊTRE OU"}, []uint{emile.ID}},
		{"non-ASCII search matches source", domain.QuoteFilter{Search: "ZOLA"}, []uint{emile.ID}},
		{"after cursor", domain.QuoteFilter{AfterID: wisdom.ID}, []uint{oscar.ID, percent.ID, emile.ID}},
		{"limit", domain.QuoteFilter{Limit: 1}, []uint{wisdom.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Filter(ctx, tt.filter)
			require.NoError(t, err)

			var ids []uint
			for _, q := range got {
				ids = append(ids, q.ID)
			}

			assert.Equal(t, tt.want, ids)
		})
	}
}
