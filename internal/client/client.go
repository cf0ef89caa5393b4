package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/auth"
	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// Client implements the harbor.Client interface.
type Client struct {
	httpClient   *internalhttp.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       *zap.Logger
	ownedCache   harbor.Cache

	// Resource clients
	users     harbor.UsersClient
	scanAll   harbor.ScanAllClient
	scans     harbor.ScansClient
	artifacts harbor.ArtifactsClient
	scanners  harbor.ScannersClient
	retention harbor.RetentionClient
	projects  harbor.ProjectsClient
	system    harbor.SystemClient
}

// NormalizeURL strips trailing slashes and makes sure the URL ends in exactly
// one API version segment. An empty version leaves the URL untouched.
func NormalizeURL(rawURL, version string) string {
	normalized := strings.TrimRight(rawURL, "/")
	if version == "" {
		return normalized
	}

	// Only the path is inspected so hosts like api.example.com are not mistaken
	// for an API segment.
	path := normalized
	if parsed, err := url.Parse(normalized); err == nil && parsed.Host != "" {
		path = parsed.Path
	}

	switch {
	case strings.Contains(path, constants.APIVersionMarker):
	case strings.Contains(path, constants.APISegment):
		normalized += "/" + version
	default:
		normalized += constants.APISegment + "/" + version
	}

	return strings.TrimRight(normalized, "/")
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *harbor.Config, cache harbor.Cache) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.RetryBudget > 0 {
		httpOpts = append(httpOpts, internalhttp.WithRetryBudget(config.RetryBudget))
	}

	if config.DisableLinkFollowing {
		httpOpts = append(httpOpts, internalhttp.WithFollowLinks(false))
	}

	if cache != nil {
		ttl := constants.DefaultCacheTTL
		if config.Cache != nil && config.Cache.TTL > 0 {
			ttl = config.Cache.TTL
		}

		httpOpts = append(httpOpts, internalhttp.WithCache(cache, ttl))
	}

	return httpOpts
}

// New creates a new Harbor API client.
func New(ctx context.Context, config *harbor.Config) (*Client, error) {
	tokenManager, err := auth.NewBasicAuth(config.Username, config.Secret, config.Credentials)
	if err != nil {
		return nil, err
	}

	return NewWithTokenManager(ctx, config, tokenManager)
}

// NewWithTokenManager creates a new Harbor API client with a custom token manager.
func NewWithTokenManager(_ context.Context, config *harbor.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("%w: %w", harbor.ErrConfiguration, constants.ErrBaseURLRequired)
	}

	if tokenManager == nil {
		return nil, harbor.ErrMissingCredentials
	}

	version := config.APIVersion
	if version == "" {
		version = constants.DefaultAPIVersion
	}

	baseURL := NormalizeURL(config.URL, version)

	cache := config.CacheBackend

	var ownedCache harbor.Cache

	if cache == nil && config.Cache != nil && config.Cache.Type != harbor.CacheTypeNone {
		created, err := harbor.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache: %w", err)
		}

		cache = created
		ownedCache = created
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := internalhttp.NewClient(baseURL, tokenManager, createHTTPClientOptions(config, cache)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       logger,
		ownedCache:   ownedCache,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.users = NewUsersClient(c.httpClient)
	c.scanAll = NewScanAllClient(c.httpClient, c.logger)
	c.scans = NewScansClient(c.httpClient, c.logger)
	c.artifacts = NewArtifactsClient(c.httpClient, c.logger)
	c.scanners = NewScannersClient(c.httpClient)
	c.retention = NewRetentionClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.system = NewSystemClient(c.httpClient)
}

// BaseURL implements harbor.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Close implements harbor.Client.Close.
func (c *Client) Close() {
	c.httpClient.Close()

	if closer, ok := c.ownedCache.(interface{ Close() }); ok {
		closer.Close()
	}
}

// GetJSON implements harbor.Client.GetJSON.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", path, err)
	}

	return resp.JSON()
}

// GetText implements harbor.Client.GetText.
func (c *Client) GetText(ctx context.Context, path string, query url.Values) (string, error) {
	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:   http.MethodGet,
		Path:     path,
		Query:    query,
		Headers:  map[string]string{constants.HeaderAccept: "text/plain"},
		NoFollow: true,
	})
	if err != nil {
		return "", fmt.Errorf("getting %s: %w", path, err)
	}

	return resp.Text(), nil
}

// Resource client accessors

// Users implements harbor.Client.Users.
func (c *Client) Users() harbor.UsersClient {
	return c.users
}

// ScanAll implements harbor.Client.ScanAll.
func (c *Client) ScanAll() harbor.ScanAllClient {
	return c.scanAll
}

// Scans implements harbor.Client.Scans.
func (c *Client) Scans() harbor.ScansClient {
	return c.scans
}

// Artifacts implements harbor.Client.Artifacts.
func (c *Client) Artifacts() harbor.ArtifactsClient {
	return c.artifacts
}

// Scanners implements harbor.Client.Scanners.
func (c *Client) Scanners() harbor.ScannersClient {
	return c.scanners
}

// Retention implements harbor.Client.Retention.
func (c *Client) Retention() harbor.RetentionClient {
	return c.retention
}

// Projects implements harbor.Client.Projects.
func (c *Client) Projects() harbor.ProjectsClient {
	return c.projects
}

// System implements harbor.Client.System.
func (c *Client) System() harbor.SystemClient {
	return c.system
}

var _ harbor.Client = (*Client)(nil)
