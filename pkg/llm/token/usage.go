package token

import "sync"

// UsageMetrics is a snapshot of accumulated token usage
type UsageMetrics struct {
	TotalTokens        int `json:"total_tokens"`
	PromptTokens       int `json:"prompt_tokens"`
	CompletionTokens   int `json:"completion_tokens"`
	SuccessfulRequests int `json:"successful_requests"`
}

// Usage accumulates token usage across requests. Safe for concurrent
// use by providers shared between chains.
type Usage struct {
	mu      sync.Mutex
	metrics UsageMetrics
}

// NewUsage creates an empty usage accumulator
func NewUsage() *Usage {
	return &Usage{}
}

// Record adds the token counts of a completed request
func (u *Usage) Record(promptTokens, completionTokens int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.metrics.PromptTokens += promptTokens
	u.metrics.CompletionTokens += completionTokens
	u.metrics.TotalTokens += promptTokens + completionTokens
	u.metrics.SuccessfulRequests++
}

// Metrics returns a snapshot of the accumulated usage
func (u *Usage) Metrics() UsageMetrics {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.metrics
}

// Reset clears all accumulated usage
func (u *Usage) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.metrics = UsageMetrics{}
}
