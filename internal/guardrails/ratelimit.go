package guardrails

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultRateLimit  = 10
	DefaultRateWindow = time.Minute
)

// RateLimiter throttles requests per caller. Implementations must be safe
// under concurrent callers sharing the same key.
type RateLimiter interface {
	Allow(ctx context.Context, callerID string) GuardrailResult
}

type fixedWindow struct {
	start time.Time
	count int
}

// FixedWindowLimiter counts requests per caller in a fixed window, resetting
// the window on expiry.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*fixedWindow
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &FixedWindowLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*fixedWindow),
	}
}

func (l *FixedWindowLimiter) Allow(_ context.Context, callerID string) GuardrailResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[callerID]
	if w == nil || now.Sub(w.start) >= l.window {
		w = &fixedWindow{start: now}
		l.windows[callerID] = w
	}

	w.count++
	if w.count > l.limit {
		return Unsafe("rate limit exceeded")
	}
	return SafeWithMetadata(map[string]any{"caller_id": callerID})
}
