package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// SystemClient implements harbor.SystemClient.
type SystemClient struct {
	httpClient *internalhttp.Client
}

// NewSystemClient creates a new system client.
func NewSystemClient(httpClient *internalhttp.Client) *SystemClient {
	return &SystemClient{
		httpClient: httpClient,
	}
}

// Ping implements harbor.SystemClient.Ping.
func (c *SystemClient) Ping(ctx context.Context) (string, error) {
	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:   http.MethodGet,
		Path:     constants.PathPing,
		Headers:  map[string]string{constants.HeaderAccept: "text/plain"},
		NoFollow: true,
	})
	if err != nil {
		return "", fmt.Errorf("pinging harbor: %w", err)
	}

	return resp.Text(), nil
}

// Health implements harbor.SystemClient.Health.
func (c *SystemClient) Health(ctx context.Context) (*harbor.OverallHealthStatus, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathHealth, nil)
	if err != nil {
		return nil, fmt.Errorf("getting health: %w", err)
	}

	return decode[harbor.OverallHealthStatus](resp, "health status")
}

// Info implements harbor.SystemClient.Info.
func (c *SystemClient) Info(ctx context.Context) (*harbor.SystemInfo, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathSystemInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("getting system info: %w", err)
	}

	return decode[harbor.SystemInfo](resp, "system info")
}

// CheckCompatibility implements harbor.SystemClient.CheckCompatibility.
// The result is returned alongside ErrIncompatibleServer when the server is
// outside the supported range or its version cannot be parsed.
func (c *SystemClient) CheckCompatibility(ctx context.Context) (*harbor.CompatibilityResult, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}

	result := harbor.CheckServerVersion(info.HarborVersion, "")
	if !result.IsCompatible() {
		return &result, fmt.Errorf("%w: %s", harbor.ErrIncompatibleServer, result.Message)
	}

	return &result, nil
}

// GetCVEAllowlist implements harbor.SystemClient.GetCVEAllowlist.
func (c *SystemClient) GetCVEAllowlist(ctx context.Context) (*harbor.CVEAllowlist, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathCVEAllowlist, nil)
	if err != nil {
		return nil, fmt.Errorf("getting system CVE allowlist: %w", err)
	}

	return decode[harbor.CVEAllowlist](resp, "CVE allowlist")
}

// UpdateCVEAllowlist implements harbor.SystemClient.UpdateCVEAllowlist.
func (c *SystemClient) UpdateCVEAllowlist(ctx context.Context, allowlist *harbor.CVEAllowlist) error {
	_, err := c.httpClient.Put(ctx, constants.PathCVEAllowlist, allowlist)
	if err != nil {
		return fmt.Errorf("updating system CVE allowlist: %w", err)
	}

	return nil
}

// TestOIDC implements harbor.SystemClient.TestOIDC.
func (c *SystemClient) TestOIDC(ctx context.Context, req *harbor.OIDCTestReq) error {
	err := harbor.Validate(req)
	if err != nil {
		return fmt.Errorf("invalid OIDC test request: %w", err)
	}

	_, err = c.httpClient.Post(ctx, constants.PathOIDCPing, req)
	if err != nil {
		return fmt.Errorf("testing OIDC endpoint: %w", err)
	}

	return nil
}
