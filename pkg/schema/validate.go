package schema

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidationError is returned when a model's tool-call arguments do not
// conform to the tool's declared schema. Raw preserves the malformed
// output so callers can log or recover from it.
type ValidationError struct {
	ToolName string
	Raw      string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tool %q arguments failed validation: %v (raw output: %s)", e.ToolName, e.Err, e.Raw)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateArguments checks raw JSON tool-call arguments against a schema.
// A nil return means the arguments are safe to pass to the tool.
func ValidateArguments(toolName string, s *openapi3.Schema, raw string) error {
	if s == nil {
		return fmt.Errorf("tool %q has no schema", toolName)
	}

	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return &ValidationError{
			ToolName: toolName,
			Raw:      raw,
			Err:      fmt.Errorf("arguments are not valid JSON: %w", err),
		}
	}

	if err := s.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return &ValidationError{
			ToolName: toolName,
			Raw:      raw,
			Err:      err,
		}
	}

	return nil
}

// DecodeArguments validates raw arguments and decodes them into a map
func DecodeArguments(toolName string, s *openapi3.Schema, raw string) (map[string]interface{}, error) {
	if err := ValidateArguments(toolName, s, raw); err != nil {
		return nil, err
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("failed to decode arguments: %w", err)
	}

	return args, nil
}
