package types

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Function represents a callable tool definition offered to a model
type Function struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Parameters is the JSON schema for the tool's arguments,
	// always an object schema at the top level
	Parameters *openapi3.Schema `json:"parameters"`
}
