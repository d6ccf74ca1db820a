package token

import (
	"context"
	"sync"
	"time"
)

const defaultMaxRPM = 60

// RateLimiter caps the number of requests per minute
type RateLimiter struct {
	maxRPM   int
	used     int
	mu       sync.Mutex
	ticker   *time.Ticker
	shutdown chan struct{}
}

// NewRateLimiter creates a rate limiter allowing maxRPM requests per
// minute. Non-positive values fall back to the default limit.
func NewRateLimiter(maxRPM int) *RateLimiter {
	if maxRPM <= 0 {
		maxRPM = defaultMaxRPM
	}

	rl := &RateLimiter{
		maxRPM:   maxRPM,
		ticker:   time.NewTicker(time.Minute),
		shutdown: make(chan struct{}),
	}

	go rl.resetLoop()
	return rl
}

// Acquire blocks until a request slot is free or the context is done
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	for {
		rl.mu.Lock()
		if rl.used < rl.maxRPM {
			rl.used++
			rl.mu.Unlock()
			return nil
		}
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rl.shutdown:
			return context.Canceled
		case <-time.After(time.Second):
		}
	}
}

// Stop terminates the reset loop and releases waiting callers
func (rl *RateLimiter) Stop() {
	rl.ticker.Stop()
	close(rl.shutdown)
}

func (rl *RateLimiter) resetLoop() {
	for {
		select {
		case <-rl.ticker.C:
			rl.mu.Lock()
			rl.used = 0
			rl.mu.Unlock()
		case <-rl.shutdown:
			return
		}
	}
}
