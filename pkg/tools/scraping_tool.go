package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/temoto/robotstxt"

	"github.com/chaincall/chain-go/pkg/schema"
)

// RateLimiter implements a simple interval-based rate limiting mechanism
type RateLimiter struct {
	interval time.Duration
	mu       sync.Mutex
	lastCall time.Time
}

// NewRateLimiter creates a new rate limiter with the specified interval
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Wait blocks until the next request is allowed
func (r *RateLimiter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastCall)
	if elapsed < r.interval {
		time.Sleep(r.interval - elapsed)
	}
	r.lastCall = time.Now()
}

// ScrapingTool provides web scraping capabilities
type ScrapingTool struct {
	client      *http.Client
	rateLimiter *RateLimiter
	userAgent   string
	robotsCache map[string]*robotstxt.RobotsData
}

// NewScrapingTool creates a new web scraping tool instance
func NewScrapingTool(userAgent string) *ScrapingTool {
	if userAgent == "" {
		userAgent = "chain-go/1.0"
	}
	return &ScrapingTool{
		client: &http.Client{
			Timeout: time.Second * 30,
		},
		rateLimiter: NewRateLimiter(time.Second), // 1 request per second
		userAgent:   userAgent,
		robotsCache: make(map[string]*robotstxt.RobotsData),
	}
}

func (t *ScrapingTool) Name() string {
	return "scrape"
}

func (t *ScrapingTool) Description() string {
	return "Extract data from web pages with respect to robots.txt rules"
}

type ScrapingRequest struct {
	URL       string            `json:"url"`
	Selectors map[string]string `json:"selectors"`
	Headers   map[string]string `json:"headers,omitempty"`
	Timeout   int               `json:"timeout,omitempty"`
}

type ScrapingResult struct {
	URL   string            `json:"url"`
	Data  map[string]string `json:"data"`
	Title string            `json:"title,omitempty"`
}

func (t *ScrapingTool) Schema() *openapi3.Schema {
	selectors := openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewStringSchema())
	selectors.Description = "Map of CSS selectors to extract data (key: name, value: selector)"
	headers := openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewStringSchema())
	headers.Description = "Custom HTTP headers for the request"

	return schema.Object(map[string]*openapi3.Schema{
		"url":       schema.String("URL of the web page to scrape"),
		"selectors": selectors,
		"headers":   headers,
		"timeout":   schema.Integer("Request timeout in seconds"),
	}, "url", "selectors")
}

func (t *ScrapingTool) Execute(ctx context.Context, arguments string) (string, error) {
	var req ScrapingRequest
	if err := json.Unmarshal([]byte(arguments), &req); err != nil {
		return "", fmt.Errorf("failed to parse scraping request: %w", err)
	}

	if req.URL == "" {
		return "", fmt.Errorf("URL is required")
	}

	if len(req.Selectors) == 0 {
		return "", fmt.Errorf("at least one selector is required")
	}

	parsedURL, err := url.Parse(req.URL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if allowed, err := t.checkRobotsTxt(parsedURL); err != nil {
		return "", fmt.Errorf("failed to check robots.txt: %w", err)
	} else if !allowed {
		return "", fmt.Errorf("URL is not allowed by robots.txt")
	}

	t.rateLimiter.Wait()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", req.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", t.userAgent)
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if req.Timeout > 0 {
		t.client.Timeout = time.Duration(req.Timeout) * time.Second
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := ScrapingResult{
		URL:  req.URL,
		Data: make(map[string]string),
	}

	result.Title = doc.Find("title").Text()

	for name, selector := range req.Selectors {
		selection := doc.Find(selector)
		if selection.Length() > 0 {
			text := strings.TrimSpace(selection.First().Text())
			result.Data[name] = text
		}
	}

	formatted, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format result: %w", err)
	}

	return string(formatted), nil
}

func (t *ScrapingTool) checkRobotsTxt(parsedURL *url.URL) (bool, error) {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsedURL.Scheme, parsedURL.Host)

	if robots, ok := t.robotsCache[parsedURL.Host]; ok {
		return robots.TestAgent(parsedURL.Path, t.userAgent), nil
	}

	resp, err := http.Get(robotsURL)
	if err != nil {
		return true, nil // Assume allowed if robots.txt is unavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return true, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, nil
	}

	robots, err := robotstxt.FromString(string(body))
	if err != nil {
		return true, nil
	}

	t.robotsCache[parsedURL.Host] = robots

	return robots.TestAgent(parsedURL.Path, t.userAgent), nil
}
