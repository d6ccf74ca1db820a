package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"

	"github.com/chaincall/chain-go/pkg/core"
	"github.com/chaincall/chain-go/pkg/types"
)

// OpenAIProvider implements the LLMProvider interface using OpenAI's API
type OpenAIProvider struct {
	*BaseProvider

	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider instance
func NewOpenAIProvider(config *core.LLMConfig) (*OpenAIProvider, error) {
	if config != nil && config.APIKey == "" {
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if config == nil || config.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set OPENAI_API_KEY)")
	}

	base, err := NewBaseProvider(config)
	if err != nil {
		return nil, err
	}

	clientConf := openai.DefaultConfig(base.config.APIKey)
	if base.config.BaseURL != "" {
		clientConf.BaseURL = base.config.BaseURL
	}

	return &OpenAIProvider{
		BaseProvider: base,
		client:       openai.NewClientWithConfig(clientConf),
	}, nil
}

// Chat generates a response in a chat conversation
func (p *OpenAIProvider) Chat(ctx context.Context, messages []types.Message) (*types.Message, error) {
	return p.ChatWithTools(ctx, messages, nil, core.AutoToolChoice())
}

// ChatWithTools generates a response with tool calling support
func (p *OpenAIProvider) ChatWithTools(ctx context.Context, messages []types.Message, functions []types.Function, choice core.ToolChoice) (*types.Message, error) {
	if err := p.CheckTokenLimit(messages); err != nil {
		return nil, err
	}
	if err := p.WaitForRateLimit(ctx); err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{
		Model:            p.config.Model,
		Messages:         toOpenAIMessages(messages),
		Temperature:      float32(p.config.Temperature),
		MaxTokens:        p.config.MaxTokens,
		TopP:             float32(p.config.TopP),
		FrequencyPenalty: float32(p.config.FrequencyPenalty),
		PresencePenalty:  float32(p.config.PresencePenalty),
		Stop:             p.config.Stop,
	}

	if len(functions) > 0 {
		req.Tools = make([]openai.Tool, len(functions))
		for i, fn := range functions {
			req.Tools[i] = openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        fn.Name,
					Description: fn.Description,
					Parameters:  fn.Parameters,
				},
			}
		}

		toolChoice, err := toOpenAIToolChoice(choice)
		if err != nil {
			return nil, err
		}
		if toolChoice != nil {
			req.ToolChoice = toolChoice
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoCompletion
	}

	p.RecordUsage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	msg := resp.Choices[0].Message
	out := &types.Message{
		Role:       msg.Role,
		Content:    msg.Content,
		Name:       msg.Name,
		ToolCallID: msg.ToolCallID,
		ToolCalls:  fromOpenAIToolCalls(msg.ToolCalls),
	}

	return out, nil
}

// SupportsToolCalls returns whether the provider supports tool calling
func (p *OpenAIProvider) SupportsToolCalls() bool {
	return true
}

// GetContextWindowSize returns the context window size for the model
func (p *OpenAIProvider) GetContextWindowSize() int {
	switch p.config.Model {
	case "gpt-3.5-turbo":
		return 4096
	case "gpt-3.5-turbo-16k":
		return 16384
	case "gpt-4o", "gpt-4o-mini":
		return 128000
	default:
		return 8192
	}
}

func toOpenAIMessages(messages []types.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			Name:       msg.Name,
			ToolCallID: msg.ToolCallID,
			ToolCalls:  toOpenAIToolCalls(msg.ToolCalls),
		}
	}
	return out
}

func toOpenAIToolCalls(calls []types.ToolCall) []openai.ToolCall {
	if len(calls) == 0 {
		return nil
	}

	out := make([]openai.ToolCall, len(calls))
	for i, call := range calls {
		out[i] = openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		}
	}
	return out
}

func fromOpenAIToolCalls(calls []openai.ToolCall) []types.ToolCall {
	if len(calls) == 0 {
		return nil
	}

	out := make([]types.ToolCall, len(calls))
	for i, call := range calls {
		out[i] = types.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
	}
	return out
}

// toOpenAIToolChoice maps a tool choice onto the wire representation.
// A specific function forces that tool, "required" forces any tool.
func toOpenAIToolChoice(choice core.ToolChoice) (any, error) {
	switch choice.Mode {
	case "", core.ToolChoiceAuto:
		return nil, nil
	case core.ToolChoiceNone, core.ToolChoiceRequired:
		return choice.Mode, nil
	case core.ToolChoiceFunction:
		if choice.FunctionName == "" {
			return nil, fmt.Errorf("forced tool choice requires a function name")
		}
		return openai.ToolChoice{
			Type: openai.ToolTypeFunction,
			Function: openai.ToolFunction{
				Name: choice.FunctionName,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported tool choice mode: %s", choice.Mode)
	}
}
