package token

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterAcquire(t *testing.T) {
	rl := NewRateLimiter(2)
	defer rl.Stop()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := rl.Acquire(ctx); err != nil {
			t.Fatalf("Acquire() within limit returned %v", err)
		}
	}
}

func TestRateLimiterAcquireContextExpired(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Stop()

	if err := rl.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire() returned %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.Acquire(ctx)
	if err == nil {
		t.Fatal("Acquire() over limit with expired context returned nil")
	}
}

func TestUsageRecord(t *testing.T) {
	u := NewUsage()
	u.Record(10, 5)
	u.Record(2, 3)

	metrics := u.Metrics()
	if metrics.PromptTokens != 12 {
		t.Errorf("PromptTokens = %d, want 12", metrics.PromptTokens)
	}
	if metrics.CompletionTokens != 8 {
		t.Errorf("CompletionTokens = %d, want 8", metrics.CompletionTokens)
	}
	if metrics.TotalTokens != 20 {
		t.Errorf("TotalTokens = %d, want 20", metrics.TotalTokens)
	}
	if metrics.SuccessfulRequests != 2 {
		t.Errorf("SuccessfulRequests = %d, want 2", metrics.SuccessfulRequests)
	}

	u.Reset()
	if u.Metrics().TotalTokens != 0 {
		t.Error("Reset() did not clear metrics")
	}
}
