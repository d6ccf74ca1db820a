package core

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/chaincall/chain-go/pkg/types"
)

// Tool represents a capability that a model can request to invoke
type Tool interface {
	// Name returns the name of the tool
	Name() string

	// Description returns a description of what the tool does
	Description() string

	// Schema returns the JSON schema for the tool's arguments
	Schema() *openapi3.Schema

	// Execute executes the tool with validated JSON arguments
	Execute(ctx context.Context, arguments string) (string, error)
}

// ToFunction converts a tool to a function definition for model binding
func ToFunction(tool Tool) types.Function {
	return types.Function{
		Name:        tool.Name(),
		Description: tool.Description(),
		Parameters:  tool.Schema(),
	}
}
