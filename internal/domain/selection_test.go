package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays a scripted sequence of draws.
type fixedSource struct {
	draws []int
	calls []int
}

func (f *fixedSource) IntN(n int) int {
	f.calls = append(f.calls, n)
	v := f.draws[0]
	f.draws = f.draws[1:]

	return v % n
}

func TestPickQuote_Empty(t *testing.T) {
	_, ok := PickQuote(nil, NewRandSource(1))
	assert.False(t, ok)
}

func TestPickQuote_CumulativeWeights(t *testing.T) {
	candidates := []Quote{
		{ID: 1, Weight: 2},
		{ID: 2, Weight: 0},
		{ID: 3, Weight: 5},
	}

	tests := []struct {
		name     string
		draw     int
		expected uint
	}{
		{"first bucket start", 0, 1},
		{"first bucket end", 1, 1},
		{"zero weight skipped", 2, 3},
		{"last bucket end", 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fixedSource{draws: []int{tt.draw}}

			q, ok := PickQuote(candidates, src)

			require.True(t, ok)
			assert.Equal(t, tt.expected, q.ID)
			assert.Equal(t, []int{7}, src.calls, "draw range is the sum of positive weights")
		})
	}
}

func TestPickQuote_AllZeroWeightsIsUniform(t *testing.T) {
	candidates := []Quote{{ID: 1}, {ID: 2}, {ID: 3}}
	src := &fixedSource{draws: []int{2}}

	q, ok := PickQuote(candidates, src)

	require.True(t, ok)
	assert.Equal(t, uint(3), q.ID)
	assert.Equal(t, []int{3}, src.calls)
}

func TestPickQuote_WeightedDistribution(t *testing.T) {
	const trials = 10_000

	candidates := []Quote{{ID: 1, Weight: 1}, {ID: 2, Weight: 3}}
	rng := rand.New(rand.NewPCG(42, 7))
	counts := map[uint]int{}

	for range trials {
		q, ok := PickQuote(candidates, rng)
		require.True(t, ok)
		counts[q.ID]++
	}

	assert.InDelta(t, 0.25, float64(counts[1])/trials, 0.05)
	assert.InDelta(t, 0.75, float64(counts[2])/trials, 0.05)
}

func TestPickQuote_ZeroWeightNeverPickedWhenOthersPositive(t *testing.T) {
	candidates := []Quote{{ID: 1, Weight: 0}, {ID: 2, Weight: 1}}
	rng := NewRandSource(99)

	for range 1_000 {
		q, _ := PickQuote(candidates, rng)
		require.Equal(t, uint(2), q.ID)
	}
}

func TestExcludeViewed(t *testing.T) {
	all := []Quote{{ID: 1}, {ID: 2}, {ID: 3}}

	t.Run("nothing viewed returns input", func(t *testing.T) {
		assert.Equal(t, all, ExcludeViewed(all, nil))
	})

	t.Run("viewed removed preserving order", func(t *testing.T) {
		got := ExcludeViewed(all, map[uint]struct{}{2: {}})
		assert.Equal(t, []Quote{{ID: 1}, {ID: 3}}, got)
	})

	t.Run("all viewed", func(t *testing.T) {
		got := ExcludeViewed(all, map[uint]struct{}{1: {}, 2: {}, 3: {}})
		assert.Empty(t, got)
	})
}

func TestNewRandSource_SeedIsDeterministic(t *testing.T) {
	a := NewRandSource(1234)
	b := NewRandSource(1234)

	for range 50 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
