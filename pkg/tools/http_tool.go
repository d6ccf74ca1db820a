package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/chaincall/chain-go/pkg/schema"
)

// HTTPTool provides HTTP request capabilities
type HTTPTool struct {
	client *http.Client
}

// NewHTTPTool creates a new HTTP tool instance
func NewHTTPTool() *HTTPTool {
	return &HTTPTool{
		client: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

func (t *HTTPTool) Name() string {
	return "http"
}

func (t *HTTPTool) Description() string {
	return "Make HTTP requests to external APIs and web services"
}

type HTTPRequest struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    interface{}       `json:"body,omitempty"`
}

func (t *HTTPTool) Schema() *openapi3.Schema {
	headers := openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewStringSchema())
	headers.Description = "HTTP headers to include in the request"
	body := openapi3.NewObjectSchema()
	body.Description = "Request body (for POST, PUT methods)"

	return schema.Object(map[string]*openapi3.Schema{
		"method":  schema.Enum("HTTP method", "GET", "POST", "PUT", "DELETE"),
		"url":     schema.String("Target URL for the request"),
		"headers": headers,
		"body":    body,
	}, "method", "url")
}

func (t *HTTPTool) Execute(ctx context.Context, arguments string) (string, error) {
	var req HTTPRequest
	if err := json.Unmarshal([]byte(arguments), &req); err != nil {
		return "", fmt.Errorf("failed to parse request: %w", err)
	}

	if req.URL == "" {
		return "", fmt.Errorf("URL is required")
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	// Set default content type if not specified
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	response := map[string]interface{}{
		"status_code": resp.StatusCode,
		"headers":     resp.Header,
		"body":        string(body),
	}

	result, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format response: %w", err)
	}

	return string(result), nil
}
