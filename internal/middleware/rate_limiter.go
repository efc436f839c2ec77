package middleware

import (
	"sync"
	"time"
)

// RateLimiter caps command throughput per user and per chat with fixed
// windows, keeping a noisy group from starving the update workers.
type RateLimiter struct {
	userLimits map[int64]*windowCounter
	chatLimits map[int64]*windowCounter
	mu         sync.Mutex

	userMaxRequests int
	chatMaxRequests int
	window          time.Duration
}

type windowCounter struct {
	requests  int
	resetTime time.Time
}

func NewRateLimiter(userMaxRequests, chatMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[int64]*windowCounter),
		chatLimits:      make(map[int64]*windowCounter),
		userMaxRequests: userMaxRequests,
		chatMaxRequests: chatMaxRequests,
		window:          window,
	}

	go rl.cleanup()

	return rl
}

// Allow reports whether a command from the user in the chat may proceed, and
// counts it when it does.
func (rl *RateLimiter) Allow(userID, chatID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if !allowLocked(rl.userLimits, userID, rl.userMaxRequests, rl.window, now) {
		return false
	}
	return allowLocked(rl.chatLimits, chatID, rl.chatMaxRequests, rl.window, now)
}

func allowLocked(limits map[int64]*windowCounter, key int64, max int, window time.Duration, now time.Time) bool {
	limit, exists := limits[key]
	if !exists || now.After(limit.resetTime) {
		limits[key] = &windowCounter{requests: 1, resetTime: now.Add(window)}
		return true
	}
	if limit.requests >= max {
		return false
	}
	limit.requests++
	return true
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, limit := range rl.userLimits {
			if now.After(limit.resetTime) {
				delete(rl.userLimits, key)
			}
		}
		for key, limit := range rl.chatLimits {
			if now.After(limit.resetTime) {
				delete(rl.chatLimits, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Reset clears all counters (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[int64]*windowCounter)
	rl.chatLimits = make(map[int64]*windowCounter)
}
