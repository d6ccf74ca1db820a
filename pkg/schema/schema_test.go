package schema

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
)

func TestBuilders(t *testing.T) {
	tests := []struct {
		name     string
		schema   *openapi3.Schema
		wantType string
	}{
		{"number", Number("a number"), "number"},
		{"integer", Integer("an integer"), "integer"},
		{"string", String("a string"), "string"},
		{"boolean", Boolean("a boolean"), "boolean"},
		{"enum", Enum("an enum", "a", "b"), "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.schema.Type)
			assert.NotEmpty(t, tt.schema.Description)
		})
	}
}

func TestObjectBuilder(t *testing.T) {
	s := Object(map[string]*openapi3.Schema{
		"count": Integer("How many"),
	}, "count")

	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"count"}, s.Required)
	assert.Contains(t, s.Properties, "count")
	assert.Equal(t, "How many", s.Properties["count"].Value.Description)
}
