package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/chaincall/chain-go/pkg/core"
)

// CacheHandler handles caching of tool execution results
type CacheHandler struct {
	cache map[string]string
	mu    sync.RWMutex
}

// NewCacheHandler creates a new cache handler instance
func NewCacheHandler() *CacheHandler {
	return &CacheHandler{
		cache: make(map[string]string),
	}
}

// Add adds a tool execution result to the cache
func (c *CacheHandler) Add(tool, arguments, output string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[c.generateKey(tool, arguments)] = output
}

// Read retrieves a cached tool execution result
func (c *CacheHandler) Read(tool, arguments string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, exists := c.cache[c.generateKey(tool, arguments)]
	return result, exists
}

// Clear clears all cached entries
func (c *CacheHandler) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]string)
}

// generateKey generates a cache key from tool name and arguments
func (c *CacheHandler) generateKey(tool, arguments string) string {
	return fmt.Sprintf("%s-%s", tool, arguments)
}

// CachedTool wraps a tool so repeated calls with identical arguments
// reuse the previous result
type CachedTool struct {
	tool    core.Tool
	handler *CacheHandler
}

// NewCachedTool creates a caching wrapper around a tool
func NewCachedTool(tool core.Tool, handler *CacheHandler) *CachedTool {
	if handler == nil {
		handler = NewCacheHandler()
	}
	return &CachedTool{tool: tool, handler: handler}
}

func (t *CachedTool) Name() string {
	return t.tool.Name()
}

func (t *CachedTool) Description() string {
	return t.tool.Description()
}

func (t *CachedTool) Schema() *openapi3.Schema {
	return t.tool.Schema()
}

func (t *CachedTool) Execute(ctx context.Context, arguments string) (string, error) {
	if output, ok := t.handler.Read(t.tool.Name(), arguments); ok {
		return output, nil
	}

	output, err := t.tool.Execute(ctx, arguments)
	if err != nil {
		return "", err
	}

	t.handler.Add(t.tool.Name(), arguments, output)
	return output, nil
}
