// Package newsapi is the news search provider client. Two operations are
// consumed: top headlines by country+category and keyword search across a
// recency window. Non-2xx responses surface as *ProviderError; the
// orchestrator catches them per call.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"newsagent/internal/article"
	"newsagent/internal/metrics"
)

const (
	defaultBaseURL = "https://newsapi.org/v2"

	// Free-tier keys throttle hard; pace requests instead of bursting.
	requestsPerSecond = 2
	requestBurst      = 4

	defaultHeadlinesPageSize = 30
	defaultSearchPageSize    = 50
)

// ProviderError is a non-success response from the provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func New(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

type response struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []article.Raw `json:"articles"`
	Code         string        `json:"code"`
	Message      string        `json:"message"`
}

// TopHeadlines fetches country+category headlines. The endpoint takes no
// language parameter. category may be empty.
func (c *Client) TopHeadlines(ctx context.Context, country, category string, pageSize int) ([]article.Raw, error) {
	if pageSize <= 0 {
		pageSize = defaultHeadlinesPageSize
	}
	params := url.Values{}
	params.Set("country", country)
	if category != "" {
		params.Set("category", category)
	}
	params.Set("pageSize", strconv.Itoa(pageSize))
	return c.get(ctx, "/top-headlines", params)
}

// Everything searches by query over the last `days` days, English, sorted by
// publish time.
func (c *Client) Everything(ctx context.Context, query string, days, pageSize int) ([]article.Raw, error) {
	if days <= 0 {
		days = 2
	}
	if pageSize <= 0 {
		pageSize = defaultSearchPageSize
	}
	since := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", since)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(pageSize))
	return c.get(ctx, "/everything", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]article.Raw, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	metrics.Global.IncrementProviderCalls()

	params.Set("apiKey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.Global.IncrementProviderErrors()
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.Global.IncrementProviderErrors()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return r.Articles, nil
}
