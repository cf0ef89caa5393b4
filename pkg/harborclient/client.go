package harborclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/client"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// Option adjusts the configuration built by the convenience constructors.
type Option func(*harbor.Config)

// WithLogger sets the logger used for transport and pagination events.
func WithLogger(logger *zap.Logger) Option {
	return func(config *harbor.Config) {
		config.Logger = logger
	}
}

// WithHTTPClient replaces the pooled HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(config *harbor.Config) {
		config.HTTPClient = httpClient
	}
}

// WithAPIVersion selects the API version appended to the URL.
func WithAPIVersion(version string) Option {
	return func(config *harbor.Config) {
		config.APIVersion = version
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(config *harbor.Config) {
		config.UserAgent = userAgent
	}
}

// WithRetryBudget bounds the time spent retrying GET, PUT, PATCH and DELETE.
func WithRetryBudget(budget time.Duration) Option {
	return func(config *harbor.Config) {
		config.RetryBudget = budget
	}
}

// WithCache caches GET results in backend for ttl.
func WithCache(backend harbor.Cache, ttl time.Duration) Option {
	return func(config *harbor.Config) {
		config.CacheBackend = backend
		config.Cache = &harbor.CacheConfig{Type: harbor.CacheTypeMemory, TTL: ttl}
	}
}

// New creates a new Harbor API client. URLs without a scheme default to https.
func New(ctx context.Context, config *harbor.Config) (harbor.Client, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is required", harbor.ErrConfiguration)
	}

	normalized := *config

	normalized.URL = strings.TrimSpace(normalized.URL)
	if normalized.URL != "" && !strings.HasPrefix(normalized.URL, "http://") && !strings.HasPrefix(normalized.URL, "https://") {
		normalized.URL = "https://" + normalized.URL
	}

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithPassword creates a new client for a user or robot account.
func NewWithPassword(ctx context.Context, url, username, secret string, opts ...Option) (harbor.Client, error) {
	config := &harbor.Config{
		URL:      url,
		Username: username,
		Secret:   secret,
	}

	for _, opt := range opts {
		opt(config)
	}

	return New(ctx, config)
}

// NewWithToken creates a new client from a pre-encoded base64 "username:secret" token.
func NewWithToken(ctx context.Context, url, token string, opts ...Option) (harbor.Client, error) {
	config := &harbor.Config{
		URL:         url,
		Credentials: token,
	}

	for _, opt := range opts {
		opt(config)
	}

	return New(ctx, config)
}

// NormalizeURL returns the base URL a client built from rawURL and version
// would use.
func NormalizeURL(rawURL, version string) string {
	return client.NormalizeURL(rawURL, version)
}
