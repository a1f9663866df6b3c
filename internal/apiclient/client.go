// Package apiclient is the JSON transport used by the auth service and repositories.
// It builds requests, attaches credentials and decodes response envelopes,
// leaving their interpretation to the caller.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"tasky/internal/service"
)

const (
	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-ID"

	// DefaultTimeout is used when no HTTP client is supplied.
	DefaultTimeout = 10 * time.Second

	// maxBodySize bounds how much of a response body is read.
	maxBodySize = 10 << 20
)

// Client sends requests relative to a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	logger     *zap.Logger
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (for testing or custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimit caps outgoing requests at perSecond with the given burst.
// A non-positive perSecond leaves requests unthrottled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// New creates a client. tokens may be nil, in which case no request is authorized.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestOptions struct {
	skipAuth bool
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

// SkipAuth sends the request without an Authorization header even when a token is stored.
func SkipAuth() RequestOption {
	return func(o *requestOptions) { o.skipAuth = true }
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

// Post issues a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts...)
}

// Put issues a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, body, opts...)
}

// Delete issues a DELETE request. body may be nil.
func (c *Client) Delete(ctx context.Context, path string, body any, opts ...RequestOption) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, body, opts...)
}

// Do sends one request and decodes the response envelope.
// Non-2xx responses with a decodable body are returned as envelopes, not errors;
// only request, network and decode failures are errors (service.KindTransport).
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Envelope, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, service.WrapError(service.KindTransport, "failed to encode request body", err)
		}
		payload = bytes.NewReader(data)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, service.WrapError(service.KindTransport, "request cancelled", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), payload)
	if err != nil {
		return nil, service.WrapError(service.KindTransport, "failed to build request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	authorized := !o.skipAuth && c.authorize(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, service.WrapError(service.KindTransport, "request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
		zap.Bool("auth", authorized),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &service.Error{Kind: service.KindTransport, Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	env, err := decodeEnvelope(raw, resp.StatusCode)
	if err != nil {
		return nil, &service.Error{Kind: service.KindTransport, Status: resp.StatusCode, Message: "malformed response", Err: err}
	}
	return env, nil
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// authorize sets the bearer header when a token is available and reports whether it did.
func (c *Client) authorize(req *http.Request) bool {
	if c.tokens == nil {
		return false
	}
	tok, err := c.tokens.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		return false
	}
	tok.SetAuthHeader(req)
	return true
}

func decodeEnvelope(raw []byte, status int) (*Envelope, error) {
	env := &Envelope{StatusCode: status}
	if len(bytes.TrimSpace(raw)) == 0 {
		env.Success = isSuccessStatus(status)
		return env, nil
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
