// Package selection picks the next backlog item to activate. The logic is
// kept separate from the backlog service the same way a pure calculation
// would be: storage enters through a narrow interface and randomness
// through an injected generator, so tests can pin exact outcomes.
package selection

import (
	"context"
	"math/rand"
	"sync"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

// Strategy names one of the two ways to choose among suggested items.
type Strategy string

const (
	// StrategyMajority picks the item with the most votes, breaking ties
	// uniformly at random.
	StrategyMajority Strategy = "majority"
	// StrategyLottery gives every item voteCount+1 tickets and draws one,
	// so even unvoted items keep a non-zero chance.
	StrategyLottery Strategy = "lottery"
)

// ParseStrategy maps a caller-supplied mode string onto a Strategy.
func ParseStrategy(mode string) (Strategy, error) {
	switch Strategy(mode) {
	case StrategyMajority:
		return StrategyMajority, nil
	case StrategyLottery:
		return StrategyLottery, nil
	}
	return "", apperr.Validationf("unknown selection mode %q", mode)
}

// ItemStorage is the slice of the store the engine needs.
type ItemStorage interface {
	ListItemsByStatus(ctx context.Context, status models.Status) ([]models.Item, error)
	TransitionItemStatus(ctx context.Context, id int64, from, to models.Status) error
}

// Engine selects the next item among those still suggested.
type Engine struct {
	storage ItemStorage

	// rng is engine-local so concurrent requests never contend on the
	// process-wide generator. Access is serialized with mu because
	// rand.Rand is not goroutine safe.
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an engine drawing randomness from rng. Pass a seeded
// generator in tests for deterministic picks.
func New(storage ItemStorage, rng *rand.Rand) *Engine {
	return &Engine{storage: storage, rng: rng}
}

// Pick chooses one suggested item using the given strategy, transitions it
// to active and returns it. With no suggested items it fails with not-found.
func (e *Engine) Pick(ctx context.Context, strategy Strategy) (*models.Item, error) {
	candidates, err := e.storage.ListItemsByStatus(ctx, models.StatusSuggested)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperr.NotFoundf("no suggested items to pick from")
	}

	var chosen *models.Item
	switch strategy {
	case StrategyLottery:
		chosen = e.pickLottery(candidates)
	case StrategyMajority:
		chosen = e.pickMajority(candidates)
	default:
		return nil, apperr.Validationf("unknown selection mode %q", string(strategy))
	}

	// The guarded transition only claims the item while it is still
	// suggested, so two racing picks cannot both activate it.
	if err := e.storage.TransitionItemStatus(ctx, chosen.ID, models.StatusSuggested, models.StatusActive); err != nil {
		return nil, err
	}
	chosen.Status = models.StatusActive
	return chosen, nil
}

// pickMajority returns a uniformly random member of the set of candidates
// tied at the maximum vote count. A single leader needs no randomness.
func (e *Engine) pickMajority(candidates []models.Item) *models.Item {
	maxVotes := candidates[0].VoteCount
	for _, c := range candidates[1:] {
		if c.VoteCount > maxVotes {
			maxVotes = c.VoteCount
		}
	}

	var tied []*models.Item
	for i := range candidates {
		if candidates[i].VoteCount == maxVotes {
			tied = append(tied, &candidates[i])
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	return tied[e.intn(len(tied))]
}

// pickLottery draws from the union of tickets by cumulative weight rather
// than materializing one entry per ticket, preserving the same probability
// mass per candidate.
func (e *Engine) pickLottery(candidates []models.Item) *models.Item {
	total := 0
	for _, c := range candidates {
		total += c.VoteCount + 1
	}

	draw := e.intn(total)
	for i := range candidates {
		draw -= candidates[i].VoteCount + 1
		if draw < 0 {
			return &candidates[i]
		}
	}
	// Unreachable: the draw is bounded by the ticket total.
	return &candidates[len(candidates)-1]
}

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}
