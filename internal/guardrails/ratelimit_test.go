package guardrails

import (
	"context"
	"testing"
	"time"
)

func TestFixedWindowLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		result := limiter.Allow(context.Background(), "user-1")
		if !result.IsSafe {
			t.Fatalf("request %d: expected allowed, got %q", i+1, result.Reason)
		}
		if result.Metadata["caller_id"] != "user-1" {
			t.Errorf("request %d: missing caller_id metadata", i+1)
		}
	}

	result := limiter.Allow(context.Background(), "user-1")
	if result.IsSafe {
		t.Fatal("expected request over limit blocked")
	}
	if result.Reason != "rate limit exceeded" {
		t.Errorf("unexpected reason %q", result.Reason)
	}
}

func TestFixedWindowLimiter_PerCaller(t *testing.T) {
	limiter := NewFixedWindowLimiter(1, time.Minute)

	if result := limiter.Allow(context.Background(), "a"); !result.IsSafe {
		t.Fatalf("caller a: expected allowed, got %q", result.Reason)
	}
	if result := limiter.Allow(context.Background(), "b"); !result.IsSafe {
		t.Fatalf("caller b: expected allowed, got %q", result.Reason)
	}
	if result := limiter.Allow(context.Background(), "a"); result.IsSafe {
		t.Fatal("caller a: expected second request blocked")
	}
}

func TestFixedWindowLimiter_WindowReset(t *testing.T) {
	now := time.Now()
	limiter := NewFixedWindowLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }

	if result := limiter.Allow(context.Background(), "x"); !result.IsSafe {
		t.Fatalf("expected first request allowed, got %q", result.Reason)
	}
	if result := limiter.Allow(context.Background(), "x"); result.IsSafe {
		t.Fatal("expected second request blocked")
	}

	now = now.Add(61 * time.Second)
	if result := limiter.Allow(context.Background(), "x"); !result.IsSafe {
		t.Fatalf("expected request allowed after window reset, got %q", result.Reason)
	}
}

func TestFixedWindowLimiter_Defaults(t *testing.T) {
	limiter := NewFixedWindowLimiter(0, 0)
	if limiter.limit != DefaultRateLimit {
		t.Errorf("expected default limit %d, got %d", DefaultRateLimit, limiter.limit)
	}
	if limiter.window != DefaultRateWindow {
		t.Errorf("expected default window %s, got %s", DefaultRateWindow, limiter.window)
	}
}
