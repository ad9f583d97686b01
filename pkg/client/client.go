// Package client is the REST data service of the admin screens: one typed
// resource per entity over the /api endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	appctx "github.com/Ramsey-B/babyshop/pkg/context"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

const (
	// DefaultTimeout is the default request timeout
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum response body size (10MB)
	MaxResponseSize = 10 * 1024 * 1024

	contentTypeJSON       = "application/json"
	contentTypeMergePatch = "application/merge-patch+json"
)

// Config holds the API client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Authorization is sent as is, e.g. "Bearer <token>".
	Authorization string
}

// Client sends JSON requests to the babyshop API
type Client struct {
	client  *http.Client
	baseURL string
	auth    string
	logger  ectologger.Logger
}

// NewClient creates a new API client
func NewClient(cfg Config, logger ectologger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		auth:    cfg.Authorization,
		logger:  logger,
	}
}

// Error is a non-2xx API response
type Error struct {
	StatusCode int
	Message    string
	ErrorKey   string
	EntityName string
	RequestID  string
}

func (e *Error) Error() string {
	if e.ErrorKey != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.ErrorKey)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Message   string         `json:"message"`
	RequestID string         `json:"request_id"`
	Meta      map[string]any `json:"meta"`
}

type request struct {
	method      string
	path        string
	query       url.Values
	contentType string
	body        any
}

// do sends req and decodes a 2xx JSON response into out (when out is not nil)
func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, span := tracing.StartSpan(ctx, "client."+req.method+" "+req.path)
	defer span.End()

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	if req.body != nil {
		contentType := req.contentType
		if contentType == "" {
			contentType = contentTypeJSON
		}
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.auth != "" {
		httpReq.Header.Set("Authorization", c.auth)
	}
	if requestID := appctx.GetRequestID(ctx); requestID != "" {
		httpReq.Header.Set("X-Request-Id", requestID)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Errorf("HTTP request failed: %s %s", req.method, target)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > MaxResponseSize {
		return fmt.Errorf("response body too large: %d bytes (max %d)", len(data), MaxResponseSize)
	}

	c.logger.WithContext(ctx).Debugf("HTTP %s %s -> %d (%s)", req.method, target, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func decodeError(statusCode int, data []byte) *Error {
	apiErr := &Error{StatusCode: statusCode, Message: http.StatusText(statusCode)}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	if body.Message != "" {
		apiErr.Message = body.Message
	}
	apiErr.RequestID = body.RequestID
	if key, ok := body.Meta["error_key"].(string); ok {
		apiErr.ErrorKey = key
	}
	if entity, ok := body.Meta["entity_name"].(string); ok {
		apiErr.EntityName = entity
	}
	return apiErr
}
