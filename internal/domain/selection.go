package domain

import (
	"math/rand/v2"
	"sync"
)

// RandSource yields uniform integers in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// lockedSource serializes access to a *rand.Rand shared by request goroutines.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandSource returns a goroutine-safe source. A zero seed draws one from
// the runtime's entropy.
func NewRandSource(seed uint64) RandSource {
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.r.IntN(n)
}

// PickQuote draws one quote from candidates. Quotes with positive weight are
// drawn proportionally to weight; if none has positive weight the draw is
// uniform over all candidates. The second result is false when candidates is
// empty.
func PickQuote(candidates []Quote, rng RandSource) (Quote, bool) {
	if len(candidates) == 0 {
		return Quote{}, false
	}

	total := 0
	for _, q := range candidates {
		if q.Weight > 0 {
			total += q.Weight
		}
	}

	if total == 0 {
		return candidates[rng.IntN(len(candidates))], true
	}

	target := rng.IntN(total)
	for _, q := range candidates {
		if q.Weight <= 0 {
			continue
		}

		if target < q.Weight {
			return q, true
		}

		target -= q.Weight
	}

	// Unreachable while total matches the positive weights above.
	return candidates[len(candidates)-1], true
}

// ExcludeViewed returns the quotes whose IDs are not in viewed, keeping order.
func ExcludeViewed(all []Quote, viewed map[uint]struct{}) []Quote {
	if len(viewed) == 0 {
		return all
	}

	available := make([]Quote, 0, len(all))
	for _, q := range all {
		if _, seen := viewed[q.ID]; !seen {
			available = append(available, q)
		}
	}

	return available
}

// SelectionMode tells whether a pick came from unseen quotes or the
// exhausted-pool fallback.
type SelectionMode string

// Selection modes.
const (
	SelectionFresh     SelectionMode = "fresh"
	SelectionExhausted SelectionMode = "exhausted"
)

// Selection is the outcome of a random-quote request.
type Selection struct {
	Quote Quote
	Mode  SelectionMode

	// Recorded is true when this request created the view history row.
	Recorded bool
}
