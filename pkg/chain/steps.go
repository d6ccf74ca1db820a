package chain

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/chaincall/chain-go/pkg/core"
	"github.com/chaincall/chain-go/pkg/schema"
	"github.com/chaincall/chain-go/pkg/types"
)

// ModelStep calls a chat model with bound tools
type ModelStep struct {
	provider  core.LLMProvider
	functions []types.Function
	choice    core.ToolChoice
}

// NewModelStep creates a step that calls the provider with the given tools
func NewModelStep(provider core.LLMProvider, functions []types.Function, choice core.ToolChoice) (*ModelStep, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if len(functions) > 0 && !provider.SupportsToolCalls() {
		return nil, fmt.Errorf("%w: model %q", core.ErrToolCallsUnsupported, provider.GetConfig().Model)
	}

	return &ModelStep{
		provider:  provider,
		functions: functions,
		choice:    choice,
	}, nil
}

// Invoke sends the input to the model and stores the response under "message".
// Input is taken from "messages" ([]types.Message) or "input" (string).
func (s *ModelStep) Invoke(ctx context.Context, input Values) (Values, error) {
	messages, err := inputMessages(input)
	if err != nil {
		return nil, err
	}

	response, err := s.provider.ChatWithTools(ctx, messages, s.functions, s.choice)
	if err != nil {
		return nil, err
	}

	output := input.Clone()
	output[KeyMessage] = response
	return output, nil
}

func inputMessages(input Values) ([]types.Message, error) {
	if raw, ok := input[KeyMessages]; ok {
		messages, ok := raw.([]types.Message)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be []types.Message", ErrMissingValue, KeyMessages)
		}
		return messages, nil
	}

	if raw, ok := input[KeyInput]; ok {
		text, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be a string", ErrMissingValue, KeyInput)
		}
		return []types.Message{types.UserMessage(text)}, nil
	}

	return nil, fmt.Errorf("%w: need %q or %q", ErrMissingValue, KeyMessages, KeyInput)
}

// ToolArgsStep extracts and validates the arguments of a named tool call
// from the model response
type ToolArgsStep struct {
	toolName string
	schema   *openapi3.Schema
}

// NewToolArgsStep creates a step that parses the named tool's call arguments
func NewToolArgsStep(toolName string, s *openapi3.Schema) *ToolArgsStep {
	return &ToolArgsStep{toolName: toolName, schema: s}
}

// Invoke validates the tool call arguments against the declared schema.
// On success it stores the decoded arguments under "arguments" and the raw
// JSON under "raw_arguments". A schema violation yields a
// *schema.ValidationError carrying the model's raw output.
func (s *ToolArgsStep) Invoke(ctx context.Context, input Values) (Values, error) {
	raw, ok := input[KeyMessage]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingValue, KeyMessage)
	}
	message, ok := raw.(*types.Message)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be *types.Message", ErrMissingValue, KeyMessage)
	}

	call := message.FirstToolCall(s.toolName)
	if call == nil {
		return nil, fmt.Errorf("%w: tool %q (model said: %s)", ErrNoToolCall, s.toolName, message.Content)
	}

	arguments, err := schema.DecodeArguments(s.toolName, s.schema, call.Arguments)
	if err != nil {
		return nil, err
	}

	output := input.Clone()
	output[KeyArguments] = arguments
	output[KeyRawArguments] = call.Arguments
	return output, nil
}

// ToolStep executes a tool with previously validated arguments
type ToolStep struct {
	tool core.Tool
}

// NewToolStep creates a step that executes the given tool
func NewToolStep(tool core.Tool) *ToolStep {
	return &ToolStep{tool: tool}
}

// Invoke executes the tool with "raw_arguments" and stores the result
// under "output"
func (s *ToolStep) Invoke(ctx context.Context, input Values) (Values, error) {
	raw, ok := input[KeyRawArguments]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingValue, KeyRawArguments)
	}
	arguments, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a string", ErrMissingValue, KeyRawArguments)
	}

	result, err := s.tool.Execute(ctx, arguments)
	if err != nil {
		return nil, fmt.Errorf("tool %q execution failed: %w", s.tool.Name(), err)
	}

	output := input.Clone()
	output[KeyOutput] = result
	return output, nil
}

// ToolChain builds the standard model → parse arguments → execute tool
// sequence for a single forced tool.
func ToolChain(name string, provider core.LLMProvider, tool core.Tool) (*Sequence, error) {
	modelStep, err := NewModelStep(provider, []types.Function{core.ToFunction(tool)}, core.ForcedToolChoice(tool.Name()))
	if err != nil {
		return nil, err
	}

	return NewSequence(name,
		modelStep,
		NewToolArgsStep(tool.Name(), tool.Schema()),
		NewToolStep(tool),
	), nil
}
