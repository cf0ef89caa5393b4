package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestProjectsClient(t *testing.T) {
	t.Parallel()

	runEndpointTests(t, []endpointTest{
		{
			Name: "get by name",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Projects().Get(ctx, harbor.ProjectName("library"))
			},
			Response: stubResponse{Body: `{
				"project_id": 1,
				"name": "library",
				"owner_name": "admin",
				"repo_count": 4,
				"creation_time": "2024-01-01T00:00:00.000Z",
				"metadata": {"public": "true", "auto_scan": "true"}
			}`},
			WantMethod:  http.MethodGet,
			WantPath:    "/projects/library",
			WantHeaders: map[string]string{constants.HeaderIsResourceName: "true"},
			Check: func(t *testing.T, result any) {
				project, ok := result.(*harbor.Project)
				require.True(t, ok)
				assert.Equal(t, int64(4), project.RepoCount)
				require.NotNil(t, project.Metadata)
				assert.Equal(t, "true", project.Metadata.AutoScan)
				require.NotNil(t, project.CreationTime)
			},
		},
		{
			Name: "get by id",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Projects().Get(ctx, harbor.ProjectID(42))
			},
			Response:    stubResponse{Body: `{"project_id":42,"name":"team"}`},
			WantMethod:  http.MethodGet,
			WantPath:    "/projects/42",
			WantHeaders: map[string]string{constants.HeaderIsResourceName: "false"},
		},
		{
			Name: "get metadata",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Projects().GetMetadata(ctx, harbor.ProjectName("library"))
			},
			Response:   stubResponse{Body: `{"public":"false","severity":"high","prevent_vul":"true"}`},
			WantMethod: http.MethodGet,
			WantPath:   "/projects/library/metadatas",
			Check: func(t *testing.T, result any) {
				metadata, ok := result.(*harbor.ProjectMetadata)
				require.True(t, ok)
				assert.Equal(t, "high", metadata.Severity)
				assert.Equal(t, "true", metadata.PreventVul)
			},
		},
		{
			Name: "set metadata",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Projects().SetMetadata(ctx, harbor.ProjectName("library"), &harbor.ProjectMetadata{
					AutoScan: "true",
				})
			},
			WantMethod: http.MethodPost,
			WantPath:   "/projects/library/metadatas",
			WantBody:   `{"auto_scan":"true"}`,
		},
		{
			Name: "get metadata entry",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Projects().GetMetadataEntry(ctx, harbor.ProjectName("library"), "auto_scan")
			},
			Response:   stubResponse{Body: `{"auto_scan":"true"}`},
			WantMethod: http.MethodGet,
			WantPath:   "/projects/library/metadatas/auto_scan",
			Check: func(t *testing.T, result any) {
				assert.Equal(t, map[string]string{"auto_scan": "true"}, result)
			},
		},
		{
			Name: "update metadata entry",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Projects().UpdateMetadataEntry(ctx, harbor.ProjectID(1), "severity",
					map[string]string{"severity": "critical"})
			},
			WantMethod: http.MethodPut,
			WantPath:   "/projects/1/metadatas/severity",
			WantBody:   `{"severity":"critical"}`,
		},
		{
			Name: "delete metadata entry",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.Projects().DeleteMetadataEntry(ctx, harbor.ProjectName("library"), "severity")
			},
			WantMethod: http.MethodDelete,
			WantPath:   "/projects/library/metadatas/severity",
		},
		{
			Name: "missing project",
			Call: func(ctx context.Context, c *Client) (any, error) {
				return c.Projects().Get(ctx, harbor.ProjectName("nope"))
			},
			Response: stubResponse{
				Status: http.StatusNotFound,
				Body:   `{"errors":[{"code":"NOT_FOUND","message":"project nope not found"}]}`,
			},
			WantMethod: http.MethodGet,
			WantErr:    harbor.ErrNotFound,
		},
	})
}

func TestProjectsClient_NameEscaping(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, stubResponse{Body: `{"name":"a b"}`})
	client := newTestClient(t, server)

	_, err := client.Projects().Get(context.Background(), harbor.ProjectName("a b"))
	require.NoError(t, err)
	assert.Equal(t, apiPrefix+"/projects/a%20b", server.LastRequest(t).EscapedPath)
}
