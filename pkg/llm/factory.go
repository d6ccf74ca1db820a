package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/chaincall/chain-go/pkg/core"
)

// NewProvider creates a new LLM provider based on the configuration
func NewProvider(ctx context.Context, config *core.LLMConfig) (core.LLMProvider, error) {
	switch {
	case config == nil:
		return nil, fmt.Errorf("config is required")
	case config.Model == "":
		return nil, fmt.Errorf("model name is required")
	}

	// Check provider based on model prefix
	if strings.HasPrefix(config.Model, "gemini-") {
		return NewGeminiStudioProvider(ctx, config)
	}

	// Default to OpenAI
	return NewOpenAIProvider(config)
}

// GetDefaultModel returns the default model for a provider
func GetDefaultModel(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-pro"
	default:
		return "gpt-4"
	}
}
