package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterTake(t *testing.T) {
	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		rl := NewRateLimiter()
		for i := 0; i < loginAttemptsPerWindow; i++ {
			if ok, _ := rl.take("10.0.0.1"); !ok {
				t.Fatalf("attempt %d should be allowed", i+1)
			}
		}
		ok, retryAfter := rl.take("10.0.0.1")
		if ok {
			t.Error("attempt past the limit should be rejected")
		}
		if retryAfter <= 0 {
			t.Errorf("expected a positive retry-after, got %v", retryAfter)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter()
		for i := 0; i < loginAttemptsPerWindow; i++ {
			rl.take("10.0.0.1")
		}
		if ok, _ := rl.take("10.0.0.2"); !ok {
			t.Error("a fresh key should not be limited")
		}
	})

	t.Run("an expired window resets the count", func(t *testing.T) {
		rl := NewRateLimiter()
		for i := 0; i < loginAttemptsPerWindow; i++ {
			rl.take("10.0.0.1")
		}
		rl.windows["10.0.0.1"].ends = time.Now().Add(-time.Second)
		if ok, _ := rl.take("10.0.0.1"); !ok {
			t.Error("expected a new window after expiry")
		}
	})
}
