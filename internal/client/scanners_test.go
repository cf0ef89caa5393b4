package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

const testScanner = `{
	"uuid": "6f1e3b2a",
	"name": "Trivy",
	"url": "http://trivy-adapter:8080",
	"vendor": "Aqua Security",
	"is_default": true,
	"health": "healthy"
}`

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestScannersClient(t *testing.T) {
	t.Parallel()

	runEndpointTests(t, []endpointTest{
		{
			Name: "create",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().Create(ctx, &harbor.ScannerRegistrationReq{
					Name:           "Trivy",
					URL:            "http://trivy-adapter:8080",
					SkipCertVerify: swag.Bool(false),
				})
			},
			Response: stubResponse{
				Status:  http.StatusCreated,
				Headers: map[string]string{constants.HeaderLocation: "/api/v2.0/scanners/6f1e3b2a"},
			},
			WantMethod: http.MethodPost,
			WantPath:   constants.PathScanners,
			WantBody:   `{"name":"Trivy","url":"http://trivy-adapter:8080","skip_certVerify":false}`,
			Check: func(t *testing.T, result any) {
				assert.Equal(t, "/api/v2.0/scanners/6f1e3b2a", result)
			},
		},
		{
			Name: "list",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().List(ctx, &harbor.ListOptions{Query: "name=Trivy"})
			},
			Response:   stubResponse{Body: "[" + testScanner + "]"},
			WantMethod: http.MethodGet,
			WantPath:   constants.PathScanners,
			WantQuery:  url.Values{"q": {"name=Trivy"}},
			Check: func(t *testing.T, result any) {
				scanners, ok := result.([]harbor.ScannerRegistration)
				require.True(t, ok)
				require.Len(t, scanners, 1)
				assert.True(t, scanners[0].IsDefault)
			},
		},
		{
			Name: "get",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().Get(ctx, "6f1e3b2a")
			},
			Response:   stubResponse{Body: testScanner},
			WantMethod: http.MethodGet,
			WantPath:   "/scanners/6f1e3b2a",
			Check: func(t *testing.T, result any) {
				scanner, ok := result.(*harbor.ScannerRegistration)
				require.True(t, ok)
				assert.Equal(t, "Aqua Security", scanner.Vendor)
			},
		},
		{
			Name: "update",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Scanners().Update(ctx, "6f1e3b2a", &harbor.ScannerRegistrationReq{
					Name:     "Trivy",
					URL:      "http://trivy-adapter:8081",
					Disabled: swag.Bool(true),
				})
			},
			WantMethod: http.MethodPut,
			WantPath:   "/scanners/6f1e3b2a",
			WantBody:   `{"name":"Trivy","url":"http://trivy-adapter:8081","disabled":true}`,
		},
		{
			Name: "delete",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().Delete(ctx, "6f1e3b2a", false)
			},
			Response:   stubResponse{Body: testScanner},
			WantMethod: http.MethodDelete,
			WantPath:   "/scanners/6f1e3b2a",
			Check: func(t *testing.T, result any) {
				scanner, ok := result.(*harbor.ScannerRegistration)
				require.True(t, ok)
				assert.Equal(t, "6f1e3b2a", scanner.UUID)
			},
		},
		{
			Name: "delete missing tolerated",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().Delete(ctx, "6f1e3b2a", true)
			},
			Response:   stubResponse{Status: http.StatusNotFound},
			WantMethod: http.MethodDelete,
			Check: func(t *testing.T, result any) {
				scanner, _ := result.(*harbor.ScannerRegistration)
				assert.Nil(t, scanner)
			},
		},
		{
			Name: "delete with empty result",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().Delete(ctx, "6f1e3b2a", false)
			},
			Response:   stubResponse{Body: `{}`},
			WantMethod: http.MethodDelete,
			WantErr:    harbor.ErrEmptyDeleteResult,
		},
		{
			Name: "delete with no body",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().Delete(ctx, "6f1e3b2a", false)
			},
			WantMethod: http.MethodDelete,
			WantErr:    harbor.ErrClient,
		},
		{
			Name: "set default",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Scanners().SetDefault(ctx, "6f1e3b2a", false)
			},
			WantMethod: http.MethodPatch,
			WantPath:   "/scanners/6f1e3b2a",
			WantBody:   `{"is_default":false}`,
		},
		{
			Name: "ping",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Scanners().Ping(ctx, &harbor.ScannerRegistrationSettings{
					Name: "Trivy",
					URL:  "http://trivy-adapter:8080",
				})
			},
			WantMethod: http.MethodPost,
			WantPath:   constants.PathScannersPing,
			WantBody:   `{"name":"Trivy","url":"http://trivy-adapter:8080"}`,
		},
		{
			Name: "ping unreachable adapter",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Scanners().Ping(ctx, &harbor.ScannerRegistrationSettings{
					Name: "Trivy",
					URL:  "http://nowhere:8080",
				})
			},
			Response: stubResponse{
				Status: http.StatusBadRequest,
				Body:   `{"errors":[{"code":"BAD_REQUEST","message":"failed to ping scanner"}]}`,
			},
			WantMethod: http.MethodPost,
			WantErr:    harbor.ErrBadRequest,
		},
		{
			Name: "metadata",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Scanners().Metadata(ctx, "6f1e3b2a")
			},
			Response: stubResponse{Body: `{
				"scanner": {"name": "Trivy", "vendor": "Aqua Security", "version": "v0.50.0"},
				"capabilities": [{
					"consumes_mime_types": ["application/vnd.oci.image.manifest.v1+json"],
					"produces_mime_types": ["application/vnd.security.vulnerability.report; version=1.1"]
				}],
				"properties": {"harbor.scanner-adapter/scanner-type": "os-package-vulnerability"}
			}`},
			WantMethod: http.MethodGet,
			WantPath:   "/scanners/6f1e3b2a/metadata",
			Check: func(t *testing.T, result any) {
				metadata, ok := result.(*harbor.ScannerAdapterMetadata)
				require.True(t, ok)
				require.NotNil(t, metadata.Scanner)
				assert.Equal(t, "v0.50.0", metadata.Scanner.Version)
				require.Len(t, metadata.Capabilities, 1)
				assert.Equal(t, "os-package-vulnerability", metadata.Properties["harbor.scanner-adapter/scanner-type"])
			},
		},
	})
}

func TestScannersClient_CreateValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := newTestClient(t, server)

	_, err := client.Scanners().Create(context.Background(), nil)
	require.Error(t, err)

	var validationErr *harbor.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, server.Requests())
}
