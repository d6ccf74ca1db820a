package tools

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	registry, err := NewRegistry(&Calculator{}, NewHTTPTool())
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	if _, ok := registry.Get("calculator"); !ok {
		t.Error("calculator should be registered")
	}
	if _, ok := registry.Get("missing"); ok {
		t.Error("should not find unregistered tool")
	}

	// Duplicate registration
	if err := registry.Register(&Calculator{}); err == nil {
		t.Error("expected error registering duplicate tool")
	}

	functions := registry.Functions()
	if len(functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(functions))
	}
	if functions[0].Name != "calculator" || functions[1].Name != "http" {
		t.Errorf("functions out of registration order: %v, %v", functions[0].Name, functions[1].Name)
	}
	if functions[0].Parameters == nil {
		t.Error("function parameters schema should not be nil")
	}
}
