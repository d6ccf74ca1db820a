package tools

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
)

// BaseTool provides a base implementation of the Tool interface
type BaseTool struct {
	name        string
	description string
	schema      *openapi3.Schema
}

// NewBaseTool creates a new BaseTool instance
func NewBaseTool(name, description string, schema *openapi3.Schema) *BaseTool {
	return &BaseTool{
		name:        name,
		description: description,
		schema:      schema,
	}
}

// Name returns the name of the tool
func (t *BaseTool) Name() string {
	return t.name
}

// Description returns a description of what the tool does
func (t *BaseTool) Description() string {
	return t.description
}

// Schema returns the JSON schema for the tool's arguments
func (t *BaseTool) Schema() *openapi3.Schema {
	return t.schema
}

// Execute executes the tool with the given arguments
func (t *BaseTool) Execute(ctx context.Context, arguments string) (string, error) {
	return "", nil
}
