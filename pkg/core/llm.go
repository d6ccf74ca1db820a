package core

import (
	"context"
	"errors"

	"github.com/chaincall/chain-go/pkg/types"
)

// ErrToolCallsUnsupported is returned when tools are bound to a provider
// that cannot call them
var ErrToolCallsUnsupported = errors.New("provider does not support tool calls")

// ToolChoice controls which tool, if any, the model is required to call
type ToolChoice struct {
	// Mode is one of "auto", "none", "required" or "function"
	Mode string

	// FunctionName is the tool the model must call when Mode is "function"
	FunctionName string
}

// Tool choice modes
const (
	ToolChoiceAuto     = "auto"
	ToolChoiceNone     = "none"
	ToolChoiceRequired = "required"
	ToolChoiceFunction = "function"
)

// AutoToolChoice lets the model decide whether to call a tool
func AutoToolChoice() ToolChoice {
	return ToolChoice{Mode: ToolChoiceAuto}
}

// ForcedToolChoice requires the model to call the named tool
func ForcedToolChoice(name string) ToolChoice {
	return ToolChoice{Mode: ToolChoiceFunction, FunctionName: name}
}

// LLMConfig holds configuration for an LLM provider
type LLMConfig struct {
	Model            string
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	Stop             []string
	APIKey           string
	BaseURL          string
	APIVersion       string
	Timeout          float64
	MaxRPM           int  // Maximum requests per minute
	EnableTokenCheck bool // Whether to enable token counting and limits
}

// NewLLMConfig creates a new LLM configuration with default values
func NewLLMConfig() *LLMConfig {
	return &LLMConfig{
		Temperature:      0.7,
		MaxTokens:        2000,
		TopP:             1.0,
		FrequencyPenalty: 0.0,
		PresencePenalty:  0.0,
		MaxRPM:           60,
		EnableTokenCheck: true,
	}
}

// LLMProvider defines the interface for language model providers
type LLMProvider interface {
	// Chat generates a response in a chat conversation
	Chat(ctx context.Context, messages []types.Message) (*types.Message, error)

	// ChatWithTools generates a response with the given tools available.
	// The returned message may carry tool calls instead of text content.
	ChatWithTools(ctx context.Context, messages []types.Message, functions []types.Function, choice ToolChoice) (*types.Message, error)

	// GetConfig returns the current configuration
	GetConfig() *LLMConfig

	// SupportsToolCalls returns whether the provider supports tool calling
	SupportsToolCalls() bool

	// GetContextWindowSize returns the context window size for the model
	GetContextWindowSize() int
}
