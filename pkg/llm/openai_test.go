package llm

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/chaincall/chain-go/pkg/core"
	"github.com/chaincall/chain-go/pkg/types"
)

func TestToOpenAIToolChoice(t *testing.T) {
	tests := []struct {
		name    string
		choice  core.ToolChoice
		want    any
		wantErr bool
	}{
		{
			name:   "auto maps to nil",
			choice: core.AutoToolChoice(),
			want:   nil,
		},
		{
			name:   "required passes through",
			choice: core.ToolChoice{Mode: core.ToolChoiceRequired},
			want:   "required",
		},
		{
			name:   "none passes through",
			choice: core.ToolChoice{Mode: core.ToolChoiceNone},
			want:   "none",
		},
		{
			name:   "forced function",
			choice: core.ForcedToolChoice("multiply"),
			want: openai.ToolChoice{
				Type:     openai.ToolTypeFunction,
				Function: openai.ToolFunction{Name: "multiply"},
			},
		},
		{
			name:    "forced function without name",
			choice:  core.ToolChoice{Mode: core.ToolChoiceFunction},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			choice:  core.ToolChoice{Mode: "sometimes"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toOpenAIToolChoice(tt.choice)
			if (err != nil) != tt.wantErr {
				t.Fatalf("toOpenAIToolChoice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("toOpenAIToolChoice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToolCallConversion(t *testing.T) {
	calls := []types.ToolCall{
		{ID: "call_1", Name: "multiply", Arguments: `{"number1": 5, "number2": 2.1}`},
	}

	converted := toOpenAIToolCalls(calls)
	if len(converted) != 1 {
		t.Fatalf("expected 1 converted call, got %d", len(converted))
	}
	if converted[0].Type != openai.ToolTypeFunction {
		t.Errorf("expected function tool type, got %s", converted[0].Type)
	}

	back := fromOpenAIToolCalls(converted)
	if len(back) != 1 || back[0] != calls[0] {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, calls)
	}

	if toOpenAIToolCalls(nil) != nil {
		t.Error("expected nil for empty tool calls")
	}
}

func TestNewProviderValidation(t *testing.T) {
	ctx := context.Background()

	if _, err := NewProvider(ctx, nil); err == nil {
		t.Error("expected error for nil config")
	}

	if _, err := NewProvider(ctx, &core.LLMConfig{APIKey: "key"}); err == nil {
		t.Error("expected error for missing model")
	}

	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewProvider(ctx, &core.LLMConfig{Model: "gpt-4"}); err == nil {
		t.Error("expected error for missing API key")
	}

	config := core.NewLLMConfig()
	config.Model = "gpt-4"
	config.APIKey = "test-key"

	provider, err := NewProvider(ctx, config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := provider.(*OpenAIProvider); !ok {
		t.Errorf("expected OpenAI provider for model %q", config.Model)
	}
	if !provider.SupportsToolCalls() {
		t.Error("OpenAI provider should support tool calls")
	}
}

func TestNewProviderKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	config := core.NewLLMConfig()
	config.Model = "gpt-4"

	provider, err := NewProvider(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.GetConfig().APIKey != "env-key" {
		t.Errorf("APIKey = %q, want key from environment", provider.GetConfig().APIKey)
	}
}
