// Package schema builds and validates tool argument schemas.
package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Object creates an object schema with the given properties
func Object(properties map[string]*openapi3.Schema, required ...string) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for name, prop := range properties {
		s.WithProperty(name, prop)
	}
	s.Required = required
	return s
}

// Number creates a number schema with a description
func Number(description string) *openapi3.Schema {
	s := openapi3.NewFloat64Schema()
	s.Description = description
	return s
}

// Integer creates an integer schema with a description
func Integer(description string) *openapi3.Schema {
	s := openapi3.NewIntegerSchema()
	s.Description = description
	return s
}

// String creates a string schema with a description
func String(description string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	s.Description = description
	return s
}

// Boolean creates a boolean schema with a description
func Boolean(description string) *openapi3.Schema {
	s := openapi3.NewBoolSchema()
	s.Description = description
	return s
}

// Enum creates a string schema restricted to the given values
func Enum(description string, values ...string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	s.Description = description
	enum := make([]interface{}, len(values))
	for i, v := range values {
		enum[i] = v
	}
	s.Enum = enum
	return s
}
