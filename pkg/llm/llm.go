package llm

import (
	"context"
	"fmt"

	"github.com/chaincall/chain-go/pkg/core"
	"github.com/chaincall/chain-go/pkg/llm/token"
	"github.com/chaincall/chain-go/pkg/types"
)

// BaseProvider provides common functionality for LLM providers
type BaseProvider struct {
	config      *core.LLMConfig
	usage       *token.Usage
	rateLimiter *token.RateLimiter
	counter     *token.Counter
}

// NewBaseProvider creates a new base provider with token management
func NewBaseProvider(config *core.LLMConfig) (*BaseProvider, error) {
	if config == nil {
		config = core.NewLLMConfig()
	}

	counter, err := token.NewCounter(config.Model)
	if err != nil {
		return nil, err
	}

	return &BaseProvider{
		config:      config,
		usage:       token.NewUsage(),
		rateLimiter: token.NewRateLimiter(config.MaxRPM),
		counter:     counter,
	}, nil
}

// GetConfig returns the current configuration
func (p *BaseProvider) GetConfig() *core.LLMConfig {
	return p.config
}

// GetTokenUsage returns the current token usage metrics
func (p *BaseProvider) GetTokenUsage() token.UsageMetrics {
	return p.usage.Metrics()
}

// ResetTokenUsage resets the token usage metrics
func (p *BaseProvider) ResetTokenUsage() {
	p.usage.Reset()
}

// CheckTokenLimit checks if the input would exceed the model's context limit
func (p *BaseProvider) CheckTokenLimit(messages []types.Message) error {
	if !p.config.EnableTokenCheck {
		return nil
	}

	count, err := p.counter.CountMessagesTokens(messages)
	if err != nil {
		return err
	}

	if count > p.counter.GetContextSize() {
		return ErrTokenLimitExceeded
	}

	return nil
}

// RecordUsage tracks token usage reported by a completed request
func (p *BaseProvider) RecordUsage(promptTokens, completionTokens int) {
	p.usage.Record(promptTokens, completionTokens)
}

// WaitForRateLimit blocks until the rate limiter admits a request.
// It fails with ErrRateLimitExceeded when the context expires before
// a slot frees up.
func (p *BaseProvider) WaitForRateLimit(ctx context.Context) error {
	if err := p.rateLimiter.Acquire(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
	}
	return nil
}

// Stop stops the provider's background processes
func (p *BaseProvider) Stop() {
	p.rateLimiter.Stop()
}
