package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/dreadedbot/group_games_bot/pkg/errors"
)

const (
	wordMinLen = 3
	wordMaxLen = 6

	// How many constrained draws to try before relaxing the constraint.
	maxConstrainedDraws = 8
)

// WordPicker serves word-guessing prompts: a random target length and,
// half the time, a required final letter. Any pool word matching the clue's
// constraints is an accepted answer, not just the sampled one.
type WordPicker struct {
	byLen map[int][]string
	valid map[string]bool

	mu  sync.Mutex
	rng *rand.Rand
}

func NewWordPicker(pool []string) *WordPicker {
	p := &WordPicker{
		byLen: make(map[int][]string),
		valid: make(map[string]bool),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, w := range pool {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) < wordMinLen || len(w) > wordMaxLen || !isLowerAlpha(w) || p.valid[w] {
			continue
		}
		p.valid[w] = true
		p.byLen[len(w)] = append(p.byLen[len(w)], w)
	}
	return p
}

// Pick draws a clue by rejection sampling. If the constrained draws all come
// up empty the suffix constraint is dropped, so a non-empty pool always
// yields a prompt.
func (p *WordPicker) Pick(exclude []int) (Prompt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for attempt := 0; attempt < maxConstrainedDraws; attempt++ {
		length := wordMinLen + p.rng.Intn(wordMaxLen-wordMinLen+1)
		var suffix string
		if p.rng.Intn(2) == 1 {
			suffix = string(rune('a' + p.rng.Intn(26)))
		}
		if prompt, ok := p.drawLocked(length, suffix); ok {
			return prompt, nil
		}
	}

	for length := wordMinLen; length <= wordMaxLen; length++ {
		if prompt, ok := p.drawLocked(length, ""); ok {
			return prompt, nil
		}
	}
	return Prompt{}, errors.New(errors.ErrCodeInternalError, "word pool is empty")
}

func (p *WordPicker) drawLocked(length int, suffix string) (Prompt, bool) {
	candidates := p.byLen[length]
	if suffix != "" {
		var filtered []string
		for _, w := range candidates {
			if strings.HasSuffix(w, suffix) {
				filtered = append(filtered, w)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return Prompt{}, false
	}

	word := candidates[p.rng.Intn(len(candidates))]
	clue := fmt.Sprintf("🧠 Guess a %d-letter word", length)
	if suffix != "" {
		clue += fmt.Sprintf(" ending with \"%s\"", suffix)
	}
	clue += "!"

	valid := p.valid
	accept := func(ans string) bool {
		if len(ans) != length {
			return false
		}
		if suffix != "" && !strings.HasSuffix(ans, suffix) {
			return false
		}
		return valid[ans]
	}

	return Prompt{Index: -1, Text: clue, Answer: word, Accept: accept}, true
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
