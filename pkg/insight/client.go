// Package insight is a Go client for the feedback insight HTTP API.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultTimeout = 30 * time.Second

// Client is the insight API client
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*retryablehttp.Client)

// WithTimeout sets the per-request HTTP timeout (default: 30 seconds).
func WithTimeout(timeout time.Duration) Option {
	return func(c *retryablehttp.Client) {
		if timeout > 0 {
			c.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryMax enables up to n retries on connection errors and 5xx responses.
// The default is no retries.
func WithRetryMax(n int) Option {
	return func(c *retryablehttp.Client) {
		if n >= 0 {
			c.RetryMax = n
		}
	}
}

// NewClient creates a client for the API served at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.HTTPClient.Timeout = defaultTimeout
	retryClient.Logger = nil // Disable logging by default
	// Return the last response instead of a generic "giving up" error so APIError can be built.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	for _, opt := range opts {
		opt(retryClient)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: retryClient,
	}
}

// Health calls GET /health and returns the reported status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}

	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}

	return out.Status, nil
}

// ListFeedback calls GET /feedback.
func (c *Client) ListFeedback(ctx context.Context) ([]FeedbackRecord, error) {
	var out []FeedbackRecord
	if err := c.do(ctx, http.MethodGet, "/feedback", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// AnalyzeFeedback calls POST /analyze_feedback for text.
func (c *Client) AnalyzeFeedback(ctx context.Context, text string) (*Sentiment, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var out Sentiment
	if err := c.do(ctx, http.MethodPost, "/analyze_feedback", body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Summary calls GET /summary.
func (c *Client) Summary(ctx context.Context, params SummaryParams) (*Summary, error) {
	query := url.Values{}
	if params.Humanize {
		query.Set("humanize", "true")
	}

	if params.MaxSentences > 0 {
		query.Set("max_sentences", strconv.Itoa(params.MaxSentences))
	}

	if params.MaxWords > 0 {
		query.Set("max_words", strconv.Itoa(params.MaxWords))
	}

	path := "/summary"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out Summary
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reqBody any
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("Failed to close response body", "error", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil {
			apiErr.Detail = strings.TrimSpace(string(data))
		}

		apiErr.StatusCode = resp.StatusCode

		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
