package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/auth"
	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// Client is the request pipeline shared by every resource client. Each call
// attaches auth headers, sends with the verb's retry policy, checks the
// status and, for GET, follows pagination links.
type Client struct {
	baseURL      string
	basePath     string
	baseOrigin   string
	tokenManager auth.TokenManager
	httpClient   *http.Client
	standard     *retryablehttp.Client
	post         *retryablehttp.Client
	logger       *zap.Logger
	userAgent    string
	followLinks  bool
	cache        harbor.Cache
	cacheTTL     time.Duration

	standardPolicy RetryPolicy
	postPolicy     RetryPolicy
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the pooled HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds a single attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRetryConfig adjusts the standard policy. Zero values keep the defaults.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if retryMax > 0 {
			c.standardPolicy.MaxRetries = retryMax
		}

		if waitMin > 0 {
			c.standardPolicy.WaitMin = waitMin
			c.postPolicy.WaitMin = waitMin
		}

		if waitMax > 0 {
			c.standardPolicy.WaitMax = waitMax
			c.postPolicy.WaitMax = waitMax
		}
	}
}

// WithRetryBudget sets the total retry time of the standard policy.
func WithRetryBudget(budget time.Duration) Option {
	return func(c *Client) {
		if budget > 0 {
			c.standardPolicy.Budget = budget
		}
	}
}

// WithRetryPolicy replaces the standard policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.standardPolicy = policy
	}
}

// WithPostRetryPolicy replaces the POST policy.
func WithPostRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.postPolicy = policy
	}
}

// WithFollowLinks toggles pagination link following.
func WithFollowLinks(follow bool) Option {
	return func(c *Client) {
		c.followLinks = follow
	}
}

// WithCache caches successful GET results for ttl.
func WithCache(cache harbor.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// NewClient creates a new HTTP client for baseURL. A nil tokenManager sends
// requests without an Authorization header.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		tokenManager:   tokenManager,
		httpClient:     cleanhttp.DefaultPooledClient(),
		logger:         zap.NewNop(),
		userAgent:      constants.DefaultUserAgent,
		followLinks:    true,
		cacheTTL:       constants.DefaultCacheTTL,
		standardPolicy: StandardPolicy(),
		postPolicy:     PostPolicy(),
	}

	client.httpClient.Timeout = constants.DefaultHTTPTimeout

	for _, opt := range opts {
		opt(client)
	}

	parsed, err := url.Parse(client.baseURL)
	if err == nil {
		client.basePath = strings.TrimRight(parsed.Path, "/")
		client.baseOrigin = parsed.Scheme + "://" + parsed.Host
	}

	client.standard = newRetryableClient(client.httpClient, client.standardPolicy, client.logger)
	client.post = newRetryableClient(client.httpClient, client.postPolicy, client.logger)

	return client
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Logger returns the client's logger.
func (c *Client) Logger() *zap.Logger {
	return c.logger
}

// Close releases idle pooled connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Do sends req through the pipeline. On a status error the Response is
// returned alongside the error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Method != http.MethodGet {
		resp, err := c.send(ctx, req)
		if err == nil && c.cache != nil {
			clearErr := c.InvalidateCache(ctx)
			if clearErr != nil {
				c.logger.Warn("failed to invalidate cache", zap.Error(clearErr))
			}
		}

		return resp, err
	}

	follow := c.followLinks && !req.NoFollow

	cacheKey := ""
	if c.cache != nil {
		cacheKey = c.cacheKey(ctx, req, follow)
		if cached := c.cacheLookup(ctx, cacheKey); cached != nil {
			return cached, nil
		}
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return resp, err
	}

	if follow && !resp.Absent {
		resp, err = c.paginate(ctx, req, resp)
		if err != nil {
			return resp, err
		}
	}

	if cacheKey != "" && !resp.Absent {
		c.cacheStore(ctx, cacheKey, resp)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.resolveURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	headers, err := c.headers(ctx, req.Headers)
	if err != nil {
		return nil, err
	}

	var rawBody interface{}

	if req.Body != nil {
		data, err := encodeBody(req.Body)
		if err != nil {
			return nil, err
		}

		rawBody = data

		if _, set := headers[constants.HeaderContentType]; !set {
			headers[constants.HeaderContentType] = constants.MediaTypeJSON
		}
	}

	retryClient := c.standard
	if req.Method == http.MethodPost {
		retryClient = c.post
	}

	httpReq, err := retryablehttp.NewRequestWithContext(withRetryStart(ctx), req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	c.logger.Debug("HTTP request", zap.String("method", req.Method), zap.String("url", target))

	start := time.Now()

	httpResp, err := retryClient.Do(httpReq)
	if err != nil {
		return nil, c.wrapTransportError(req.Method, target, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.wrapTransportError(req.Method, target, err)
	}

	c.logger.Debug("HTTP response",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}

	absent, err := harbor.CheckStatus(httpResp.StatusCode, body, req.MissingOK, &harbor.HTTPError{
		Method:     req.Method,
		URL:        target,
		StatusCode: httpResp.StatusCode,
	})
	if err != nil {
		c.logUnparsedError(err)

		return resp, err
	}

	resp.Absent = absent

	return resp, nil
}

func (c *Client) headers(ctx context.Context, extra map[string]string) (map[string]string, error) {
	withAgent := map[string]string{constants.HeaderUserAgent: c.userAgent}
	for key, value := range extra {
		withAgent[key] = value
	}

	if c.tokenManager == nil {
		headers := map[string]string{constants.HeaderAccept: constants.MediaTypeJSON}
		for key, value := range withAgent {
			headers[key] = value
		}

		return headers, nil
	}

	headers, err := auth.RequestHeaders(ctx, c.tokenManager, withAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth token: %w", err)
	}

	return headers, nil
}

func (c *Client) wrapTransportError(method, target string, err error) error {
	var transportErr *harbor.TransportError
	if errors.As(err, &transportErr) {
		transportErr.Method = method
		transportErr.URL = target

		return transportErr
	}

	return &harbor.TransportError{Method: method, URL: target, Err: err}
}

func (c *Client) logUnparsedError(err error) {
	var statusErr *harbor.StatusError
	if !errors.As(err, &statusErr) {
		return
	}

	if len(statusErr.Errors) == 0 && len(bytes.TrimSpace(statusErr.Body)) > 0 {
		c.logger.Debug("unable to parse error response",
			zap.Int("status", statusErr.StatusCode),
			zap.ByteString("body", statusErr.Body),
		)
	}
}

// resolveURL turns a request path into an absolute URL. Absolute URLs pass
// through; paths already under the base path resolve against the base origin.
func (c *Client) resolveURL(path string, query url.Values) (string, error) {
	if c.baseURL == "" && !strings.Contains(path, "://") {
		return "", constants.ErrBaseURLRequired
	}

	var target string

	switch {
	case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
		target = path
	case c.basePath != "" && strings.HasPrefix(path, c.basePath+"/"):
		target = c.baseOrigin + path
	case path == "" || strings.HasPrefix(path, "/") || strings.HasPrefix(path, "?"):
		target = c.baseURL + path
	default:
		target = c.baseURL + "/" + path
	}

	if len(query) == 0 {
		return target, nil
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("failed to parse request URL: %w", err)
	}

	merged := parsed.Query()
	for key, values := range query {
		for _, value := range values {
			merged.Add(key, value)
		}
	}

	parsed.RawQuery = merged.Encode()

	return parsed.String(), nil
}

func encodeBody(body interface{}) ([]byte, error) {
	switch typed := body.(type) {
	case []byte:
		return typed, nil
	case json.RawMessage:
		return typed, nil
	case string:
		return []byte(typed), nil
	case io.Reader:
		data, err := io.ReadAll(typed)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", constants.ErrUnsupportedBody, err)
		}

		return data, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		return data, nil
	}
}
