package tools

import (
	"fmt"
	"sync"

	"github.com/chaincall/chain-go/pkg/core"
	"github.com/chaincall/chain-go/pkg/types"
)

// Registry holds the tools available to a chain or provider
type Registry struct {
	mu    sync.RWMutex
	tools map[string]core.Tool
	order []string
}

// NewRegistry creates a new tool registry
func NewRegistry(tools ...core.Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]core.Tool)}
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a tool to the registry
func (r *Registry) Register(tool core.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name is required")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}

	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Get returns the tool with the given name
func (r *Registry) Get(name string) (core.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Functions returns function definitions for all registered tools,
// in registration order, for binding to a model
func (r *Registry) Functions() []types.Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	functions := make([]types.Function, 0, len(r.order))
	for _, name := range r.order {
		functions = append(functions, core.ToFunction(r.tools[name]))
	}
	return functions
}
