package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestSystemClient(t *testing.T) {
	t.Parallel()

	runEndpointTests(t, []endpointTest{
		{
			Name: "ping",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.System().Ping(ctx)
			},
			Response: stubResponse{
				Body:    "Pong",
				Headers: map[string]string{constants.HeaderContentType: "text/plain"},
			},
			WantMethod:  http.MethodGet,
			WantPath:    constants.PathPing,
			WantHeaders: map[string]string{constants.HeaderAccept: "text/plain"},
			Check: func(t *testing.T, result any) {
				assert.Equal(t, "Pong", result)
			},
		},
		{
			Name: "health",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.System().Health(ctx)
			},
			Response: stubResponse{Body: `{
				"status": "unhealthy",
				"components": [
					{"name": "core", "status": "healthy"},
					{"name": "jobservice", "status": "unhealthy", "error": "connection refused"}
				]
			}`},
			WantMethod: http.MethodGet,
			WantPath:   constants.PathHealth,
			Check: func(t *testing.T, result any) {
				health, ok := result.(*harbor.OverallHealthStatus)
				require.True(t, ok)
				assert.Equal(t, "unhealthy", health.Status)
				require.Len(t, health.Components, 2)
				assert.Equal(t, "connection refused", health.Components[1].Error)
			},
		},
		{
			Name: "info",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.System().Info(ctx)
			},
			Response:   stubResponse{Body: `{"harbor_version":"v2.10.1-a1b2c3d4","auth_mode":"db_auth","has_ca_root":false}`},
			WantMethod: http.MethodGet,
			WantPath:   constants.PathSystemInfo,
			Check: func(t *testing.T, result any) {
				info, ok := result.(*harbor.SystemInfo)
				require.True(t, ok)
				assert.Equal(t, "db_auth", info.AuthMode)
				assert.Equal(t, "v2.10.1-a1b2c3d4", info.HarborVersion)
			},
		},
		{
			Name: "get CVE allowlist",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.System().GetCVEAllowlist(ctx)
			},
			Response:   stubResponse{Body: `{"id":1,"project_id":0,"expires_at":1735689600,"items":[{"cve_id":"CVE-2023-1234"}]}`},
			WantMethod: http.MethodGet,
			WantPath:   constants.PathCVEAllowlist,
			Check: func(t *testing.T, result any) {
				allowlist, ok := result.(*harbor.CVEAllowlist)
				require.True(t, ok)
				require.Len(t, allowlist.Items, 1)
				assert.Equal(t, "CVE-2023-1234", allowlist.Items[0].CVEID)
				require.NotNil(t, allowlist.ExpiresAt)
				assert.Equal(t, int64(1735689600), *allowlist.ExpiresAt)
			},
		},
		{
			Name: "update CVE allowlist",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.System().UpdateCVEAllowlist(ctx, &harbor.CVEAllowlist{
					Items: []harbor.CVEAllowlistItem{{CVEID: "CVE-2024-0001"}},
				})
			},
			WantMethod: http.MethodPut,
			WantPath:   constants.PathCVEAllowlist,
			WantBody:   `{"items":[{"cve_id":"CVE-2024-0001"}]}`,
		},
		{
			Name: "test OIDC",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.System().TestOIDC(ctx, &harbor.OIDCTestReq{
					URL:        "https://sso.example.com/realms/harbor",
					VerifyCert: swag.Bool(true),
				})
			},
			WantMethod: http.MethodPost,
			WantPath:   constants.PathOIDCPing,
			WantBody:   `{"url":"https://sso.example.com/realms/harbor","verify_cert":true}`,
		},
		{
			Name: "server error",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.System().Health(ctx)
			},
			Response: stubResponse{
				Status: http.StatusInternalServerError,
				Body:   `{"errors":[{"code":"UNKNOWN","message":"internal error"}]}`,
			},
			WantMethod: http.MethodGet,
			WantErr:    harbor.ErrInternalServerError,
		},
	})
}

func TestSystemClient_CheckCompatibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		version    string
		wantStatus harbor.CompatibilityStatus
		wantErr    bool
	}{
		{name: "release build", version: "v2.10.1-a1b2c3d4", wantStatus: harbor.Compatible},
		{name: "plain version", version: "2.0.0", wantStatus: harbor.Compatible},
		{name: "v1 server", version: "v1.10.17-6a6b8b7a", wantStatus: harbor.Incompatible, wantErr: true},
		{name: "unparseable", version: "dev", wantStatus: harbor.CompatibilityUnknown, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, stubResponse{Body: `{"harbor_version":"` + tt.version + `"}`})
			client := newTestClient(t, server)

			result, err := client.System().CheckCompatibility(context.Background())
			if tt.wantErr {
				require.ErrorIs(t, err, harbor.ErrIncompatibleServer)
			} else {
				require.NoError(t, err)
			}

			require.NotNil(t, result)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.version, result.ServerVersion)
			assert.Equal(t, harbor.SupportedServerRange, result.SupportedRange)
		})
	}
}

func TestSystemClient_TestOIDCValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := newTestClient(t, server)

	err := client.System().TestOIDC(context.Background(), nil)

	var validationErr *harbor.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, server.Requests())
}
