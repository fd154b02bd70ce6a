package bot

import (
	"golang.org/x/time/rate"
	"sync"
)

// userLimiters hands out one token bucket per user.
type userLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[int64]*rate.Limiter
}

func newUserLimiters(maxRequestsPerSecond float32, burst int) *userLimiters {
	return &userLimiters{
		limit:    rate.Limit(maxRequestsPerSecond),
		burst:    burst,
		limiters: make(map[int64]*rate.Limiter),
	}
}

func (u *userLimiters) Allow(userID int64) bool {
	u.mu.Lock()
	limiter, ok := u.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(u.limit, u.burst)
		u.limiters[userID] = limiter
	}
	u.mu.Unlock()

	return limiter.Allow()
}
