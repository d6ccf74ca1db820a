package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/chaincall/chain-go/pkg/core"
	"github.com/chaincall/chain-go/pkg/types"
)

// GeminiStudioProvider implements the LLMProvider interface for Google's
// Gemini models via AI Studio
type GeminiStudioProvider struct {
	*BaseProvider

	client *genai.Client
}

// NewGeminiStudioProvider creates a new Gemini provider instance using AI Studio
func NewGeminiStudioProvider(ctx context.Context, config *core.LLMConfig) (*GeminiStudioProvider, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GOOGLE_API_KEY)")
	}
	if config.Model == "" {
		config.Model = "gemini-pro"
	}

	base, err := NewBaseProvider(config)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiStudioProvider{
		BaseProvider: base,
		client:       client,
	}, nil
}

// Chat generates a response in a chat conversation
func (p *GeminiStudioProvider) Chat(ctx context.Context, messages []types.Message) (*types.Message, error) {
	return p.ChatWithTools(ctx, messages, nil, core.AutoToolChoice())
}

// ChatWithTools generates a response with tool calling support
func (p *GeminiStudioProvider) ChatWithTools(ctx context.Context, messages []types.Message, functions []types.Function, choice core.ToolChoice) (*types.Message, error) {
	if err := p.CheckTokenLimit(messages); err != nil {
		return nil, err
	}
	if err := p.WaitForRateLimit(ctx); err != nil {
		return nil, err
	}

	model := p.client.GenerativeModel(p.config.Model)
	model.SetTemperature(float32(p.config.Temperature))
	model.SetTopP(float32(p.config.TopP))
	model.SetMaxOutputTokens(int32(p.config.MaxTokens))

	if len(functions) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(functions))
		for i, fn := range functions {
			params, err := toGeminiSchema(fn.Parameters)
			if err != nil {
				return nil, fmt.Errorf("failed to convert schema for tool %q: %w", fn.Name, err)
			}
			decls[i] = &genai.FunctionDeclaration{
				Name:        fn.Name,
				Description: fn.Description,
				Parameters:  params,
			}
		}
		model.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
		model.ToolConfig = toGeminiToolConfig(choice)
	}

	history, last, err := toGeminiContents(messages)
	if err != nil {
		return nil, err
	}

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, last...)
	if err != nil {
		return nil, fmt.Errorf("gemini chat error: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, ErrNoCompletion
	}

	if resp.UsageMetadata != nil {
		p.RecordUsage(int(resp.UsageMetadata.PromptTokenCount), int(resp.UsageMetadata.CandidatesTokenCount))
	}

	return fromGeminiContent(resp.Candidates[0].Content)
}

// SupportsToolCalls returns whether the provider supports tool calling
func (p *GeminiStudioProvider) SupportsToolCalls() bool {
	return true
}

// GetContextWindowSize returns the context window size for the model
func (p *GeminiStudioProvider) GetContextWindowSize() int {
	switch p.config.Model {
	case "gemini-pro", "gemini-1.0-pro":
		return 32768
	case "gemini-pro-vision":
		return 16384
	default:
		return 32768
	}
}

// toGeminiContents splits messages into chat history and the final user turn
func toGeminiContents(messages []types.Message) ([]*genai.Content, []genai.Part, error) {
	if len(messages) == 0 {
		return nil, nil, fmt.Errorf("at least one message is required")
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		content, err := toGeminiContent(msg)
		if err != nil {
			return nil, nil, err
		}
		contents = append(contents, content)
	}

	last := contents[len(contents)-1]
	return contents[:len(contents)-1], last.Parts, nil
}

func toGeminiContent(msg types.Message) (*genai.Content, error) {
	switch msg.Role {
	case types.RoleAssistant:
		parts := make([]genai.Part, 0, 1+len(msg.ToolCalls))
		if msg.Content != "" {
			parts = append(parts, genai.Text(msg.Content))
		}
		for _, call := range msg.ToolCalls {
			var args map[string]any
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return nil, fmt.Errorf("tool call %q has non-object arguments: %w", call.Name, err)
			}
			parts = append(parts, genai.FunctionCall{Name: call.Name, Args: args})
		}
		return &genai.Content{Role: "model", Parts: parts}, nil
	case types.RoleTool:
		var result map[string]any
		if err := json.Unmarshal([]byte(msg.Content), &result); err != nil {
			result = map[string]any{"output": msg.Content}
		}
		return &genai.Content{
			Role:  "user",
			Parts: []genai.Part{genai.FunctionResponse{Name: msg.Name, Response: result}},
		}, nil
	default:
		// Gemini has no system role, system prompts become user turns
		return &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}}, nil
	}
}

func fromGeminiContent(content *genai.Content) (*types.Message, error) {
	if content == nil || len(content.Parts) == 0 {
		return nil, fmt.Errorf("no content parts in Gemini response")
	}

	out := &types.Message{Role: types.RoleAssistant}
	for i, part := range content.Parts {
		switch v := part.(type) {
		case genai.Text:
			out.Content += string(v)
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				return nil, fmt.Errorf("failed to encode function call arguments: %w", err)
			}
			out.ToolCalls = append(out.ToolCalls, types.ToolCall{
				ID:        fmt.Sprintf("call_%d", i),
				Name:      v.Name,
				Arguments: string(args),
			})
		}
	}

	if out.Content == "" && len(out.ToolCalls) == 0 {
		return nil, fmt.Errorf("no text content in Gemini response")
	}

	return out, nil
}

func toGeminiToolConfig(choice core.ToolChoice) *genai.ToolConfig {
	cfg := &genai.FunctionCallingConfig{}
	switch choice.Mode {
	case core.ToolChoiceNone:
		cfg.Mode = genai.FunctionCallingNone
	case core.ToolChoiceRequired:
		cfg.Mode = genai.FunctionCallingAny
	case core.ToolChoiceFunction:
		cfg.Mode = genai.FunctionCallingAny
		cfg.AllowedFunctionNames = []string{choice.FunctionName}
	default:
		cfg.Mode = genai.FunctionCallingAuto
	}
	return &genai.ToolConfig{FunctionCallingConfig: cfg}
}

// toGeminiSchema converts an OpenAPI schema to Gemini's schema representation
func toGeminiSchema(s *openapi3.Schema) (*genai.Schema, error) {
	if s == nil {
		return nil, fmt.Errorf("schema is nil")
	}

	out := &genai.Schema{Description: s.Description}

	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
		out.Required = s.Required
		if len(s.Properties) > 0 {
			out.Properties = make(map[string]*genai.Schema, len(s.Properties))
			for name, ref := range s.Properties {
				prop, err := toGeminiSchema(ref.Value)
				if err != nil {
					return nil, err
				}
				out.Properties[name] = prop
			}
		}
	case "array":
		out.Type = genai.TypeArray
		if s.Items != nil {
			items, err := toGeminiSchema(s.Items.Value)
			if err != nil {
				return nil, err
			}
			out.Items = items
		}
	case "string":
		out.Type = genai.TypeString
		for _, v := range s.Enum {
			if str, ok := v.(string); ok {
				out.Enum = append(out.Enum, str)
			}
		}
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type: %s", s.Type)
	}

	return out, nil
}
