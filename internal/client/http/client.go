package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"go.uber.org/zap"
)

// RequestOption modifies an outgoing request
type RequestOption func(*http.Request)

// ClientOption modifies the client
type ClientOption func(*HTTPClient)

// HTTPError is returned for responses with a status of 400 or above
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// RetryConfig bounds the retry behaviour of a client
type RetryConfig struct {
	MaxRetries           int
	InitialInterval      time.Duration
	MaxInterval          time.Duration
	MaxElapsedTime       time.Duration
	RetryableStatusCodes []int
}

// MetricsCollector receives one observation per logical request
type MetricsCollector interface {
	ObserveRequest(method, path string, statusCode int, duration time.Duration, err error)
}

// DefaultRetryConfig retries transient failures three times within 10s
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:           3,
		InitialInterval:      100 * time.Millisecond,
		MaxInterval:          2 * time.Second,
		MaxElapsedTime:       10 * time.Second,
		RetryableStatusCodes: []int{408, 429, 500, 502, 503, 504},
	}
}

// HTTPClient is a JSON client with bounded exponential-backoff retries
type HTTPClient struct {
	httpClient     *http.Client
	baseURL        string
	defaultHeaders map[string]string
	retryConfig    *RetryConfig
	metrics        MetricsCollector
}

// NewHTTPClient creates a client with the given options
func NewHTTPClient(options ...ClientOption) *HTTPClient {
	client := &HTTPClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		retryConfig: DefaultRetryConfig(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// WithBaseURL sets the URL every request path is joined to
func WithBaseURL(baseURL string) ClientOption {
	return func(c *HTTPClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport replaces the underlying round tripper
func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient.Transport = transport
	}
}

// WithRetryConfig sets the retry configuration; nil disables retries
func WithRetryConfig(config *RetryConfig) ClientOption {
	return func(c *HTTPClient) {
		c.retryConfig = config
	}
}

// WithMetricsCollector attaches a metrics collector
func WithMetricsCollector(collector MetricsCollector) ClientOption {
	return func(c *HTTPClient) {
		c.metrics = collector
	}
}

// WithDefaultHeader adds a header to every request
func WithDefaultHeader(key, value string) ClientOption {
	return func(c *HTTPClient) {
		c.defaultHeaders[key] = value
	}
}

// WithHeader sets a header on one request
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// WithQueryParam adds a query parameter to one request
func WithQueryParam(key, value string) RequestOption {
	return func(req *http.Request) {
		q := req.URL.Query()
		q.Add(key, value)
		req.URL.RawQuery = q.Encode()
	}
}

// GetJSON performs a GET and decodes the JSON response into target
func (c *HTTPClient) GetJSON(ctx context.Context, path string, target interface{}, options ...RequestOption) error {
	body, err := c.DoRequest(ctx, http.MethodGet, path, nil, options...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// PostJSON performs a POST with a JSON body and decodes the response into
// target when target is not nil
func (c *HTTPClient) PostJSON(ctx context.Context, path string, payload, target interface{}, options ...RequestOption) error {
	body, err := c.DoRequest(ctx, http.MethodPost, path, payload, options...)
	if err != nil {
		return err
	}
	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// DoRequest sends the request, retrying transport errors and retryable
// statuses, and returns the response body
func (c *HTTPClient) DoRequest(ctx context.Context, method, path string, payload interface{}, options ...RequestOption) ([]byte, error) {
	start := time.Now()
	fullURL := c.resolve(path)

	var encoded []byte
	if payload != nil {
		var err error
		if encoded, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var (
		status int
		body   []byte
	)
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(encoded))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for key, value := range c.defaultHeaders {
			req.Header.Set(key, value)
		}
		for _, option := range options {
			option(req)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if status >= 400 {
			httpErr := &HTTPError{StatusCode: status, Method: method, URL: req.URL.String(), Body: string(body)}
			if c.retryable(status) {
				return httpErr
			}
			return backoff.Permanent(httpErr)
		}
		return nil
	}

	var err error
	if c.retryConfig != nil && c.retryConfig.MaxRetries > 0 {
		expBackoff := backoff.NewExponentialBackOff()
		expBackoff.InitialInterval = c.retryConfig.InitialInterval
		expBackoff.MaxInterval = c.retryConfig.MaxInterval
		expBackoff.MaxElapsedTime = c.retryConfig.MaxElapsedTime
		policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(c.retryConfig.MaxRetries)), ctx)
		err = backoff.Retry(attempt, policy)
	} else {
		err = attempt()
	}

	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, path, status, duration, err)
	}

	if err != nil {
		logger.Warn("HTTP request failed",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	logger.Debug("HTTP request successful",
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", status),
		zap.Duration("duration", duration))
	return body, nil
}

func (c *HTTPClient) resolve(path string) string {
	if c.baseURL == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *HTTPClient) retryable(status int) bool {
	if c.retryConfig == nil {
		return false
	}
	for _, code := range c.retryConfig.RetryableStatusCodes {
		if code == status {
			return true
		}
	}
	return false
}
