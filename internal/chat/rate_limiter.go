package chat

import (
	"sync"
	"time"
)

// RateLimiter allows up to limit messages per user in each fixed window.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	users  map[string]*userWindow
	now    func() time.Time
}

type userWindow struct {
	count int
	start time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		users:  make(map[string]*userWindow),
		now:    time.Now,
	}
}

// Allow records one message for userID and reports whether it is within the limit.
// A non-positive limit disables limiting.
func (rl *RateLimiter) Allow(userID string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.users[userID]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.users[userID] = &userWindow{count: 1, start: now}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// Cleanup drops users idle for five windows.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, w := range rl.users {
		if now.Sub(w.start) > 5*rl.window {
			delete(rl.users, userID)
		}
	}
}

func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.users)
}
