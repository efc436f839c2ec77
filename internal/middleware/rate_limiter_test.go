package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterPerUser(t *testing.T) {
	rl := NewRateLimiter(2, 100, time.Minute)

	if !rl.Allow(1, 10) || !rl.Allow(1, 10) {
		t.Fatal("first two requests should be allowed")
	}
	if rl.Allow(1, 10) {
		t.Error("third request in the window should be denied")
	}
	if !rl.Allow(2, 10) {
		t.Error("a different user should not be affected")
	}

	rl.Reset()
	if !rl.Allow(1, 10) {
		t.Error("request after Reset should be allowed")
	}
}

func TestRateLimiterPerChat(t *testing.T) {
	rl := NewRateLimiter(100, 3, time.Minute)

	for i := int64(1); i <= 3; i++ {
		if !rl.Allow(i, 10) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow(4, 10) {
		t.Error("fourth request in the chat window should be denied")
	}
	if !rl.Allow(4, 11) {
		t.Error("a different chat should not be affected")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 100, 10*time.Millisecond)

	if !rl.Allow(1, 10) {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow(1, 10) {
		t.Fatal("second request inside the window should be denied")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow(1, 10) {
		t.Error("request after the window expired should be allowed")
	}
}
