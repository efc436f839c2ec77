package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dreadedbot/group_games_bot/pkg/errors"
	"github.com/dreadedbot/group_games_bot/pkg/utils"
)

// CapitalPair is one capital-city quiz entry.
type CapitalPair struct {
	Country string
	Capital string
}

// CapitalPicker serves capital-city prompts, excluding indices a player has
// already been asked. Acceptance is a normalized exact match.
type CapitalPicker struct {
	pool []CapitalPair

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCapitalPicker(pool []CapitalPair) *CapitalPicker {
	return &CapitalPicker{
		pool: pool,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *CapitalPicker) Pick(exclude []int) (Prompt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pool) == 0 {
		return Prompt{}, errors.New(errors.ErrCodeInternalError, "capital pool is empty")
	}

	excluded := make(map[int]bool, len(exclude))
	for _, i := range exclude {
		excluded[i] = true
	}
	candidates := make([]int, 0, len(p.pool))
	for i := range p.pool {
		if !excluded[i] {
			candidates = append(candidates, i)
		}
	}
	// Every pair already asked: relax the no-repeat constraint rather than
	// fail the round.
	if len(candidates) == 0 {
		for i := range p.pool {
			candidates = append(candidates, i)
		}
	}

	idx := candidates[p.rng.Intn(len(candidates))]
	pair := p.pool[idx]
	want := utils.NormalizeAnswer(pair.Capital)

	return Prompt{
		Index:  idx,
		Text:   fmt.Sprintf("What is the capital of %s?", pair.Country),
		Answer: pair.Capital,
		Accept: func(ans string) bool { return ans == want },
	}, nil
}
