package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// ProjectsClient implements harbor.ProjectsClient.
type ProjectsClient struct {
	httpClient *internalhttp.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *internalhttp.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

func projectPath(ref harbor.ProjectRef) string {
	return constants.PathProjects + "/" + url.PathEscape(ref.String())
}

func metadataPath(ref harbor.ProjectRef, name string) string {
	path := projectPath(ref) + "/metadatas"
	if name != "" {
		path += "/" + url.PathEscape(name)
	}

	return path
}

// resourceNameHeaders tells Harbor how to interpret the project segment.
func resourceNameHeaders(ref harbor.ProjectRef) map[string]string {
	return map[string]string{constants.HeaderIsResourceName: strconv.FormatBool(ref.IsName())}
}

func getProject(ctx context.Context, httpClient *internalhttp.Client, ref harbor.ProjectRef) (*harbor.Project, error) {
	resp, err := httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodGet,
		Path:    projectPath(ref),
		Headers: resourceNameHeaders(ref),
	})
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", ref, err)
	}

	return decode[harbor.Project](resp, "project")
}

// Get implements harbor.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, ref harbor.ProjectRef) (*harbor.Project, error) {
	return getProject(ctx, c.httpClient, ref)
}

// GetMetadata implements harbor.ProjectsClient.GetMetadata.
func (c *ProjectsClient) GetMetadata(ctx context.Context, ref harbor.ProjectRef) (*harbor.ProjectMetadata, error) {
	resp, err := c.httpClient.Get(ctx, metadataPath(ref, ""), nil)
	if err != nil {
		return nil, fmt.Errorf("getting project %s metadata: %w", ref, err)
	}

	return decode[harbor.ProjectMetadata](resp, "project metadata")
}

// SetMetadata implements harbor.ProjectsClient.SetMetadata.
func (c *ProjectsClient) SetMetadata(ctx context.Context, ref harbor.ProjectRef, metadata *harbor.ProjectMetadata) error {
	_, err := c.httpClient.Post(ctx, metadataPath(ref, ""), metadata)
	if err != nil {
		return fmt.Errorf("setting project %s metadata: %w", ref, err)
	}

	return nil
}

// GetMetadataEntry implements harbor.ProjectsClient.GetMetadataEntry.
func (c *ProjectsClient) GetMetadataEntry(ctx context.Context, ref harbor.ProjectRef, name string) (map[string]string, error) {
	resp, err := c.httpClient.Get(ctx, metadataPath(ref, name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting project %s metadata %s: %w", ref, name, err)
	}

	body, err := resp.JSON()
	if err != nil {
		return nil, fmt.Errorf("parsing project metadata %s: %w", name, err)
	}

	var entry map[string]string

	err = json.Unmarshal(body, &entry)
	if err != nil {
		return nil, fmt.Errorf("parsing project metadata %s: %w", name, err)
	}

	return entry, nil
}

// UpdateMetadataEntry implements harbor.ProjectsClient.UpdateMetadataEntry.
func (c *ProjectsClient) UpdateMetadataEntry(ctx context.Context, ref harbor.ProjectRef, name string, value map[string]string) error {
	_, err := c.httpClient.Put(ctx, metadataPath(ref, name), value)
	if err != nil {
		return fmt.Errorf("updating project %s metadata %s: %w", ref, name, err)
	}

	return nil
}

// DeleteMetadataEntry implements harbor.ProjectsClient.DeleteMetadataEntry.
func (c *ProjectsClient) DeleteMetadataEntry(ctx context.Context, ref harbor.ProjectRef, name string) error {
	_, err := c.httpClient.Delete(ctx, metadataPath(ref, name))
	if err != nil {
		return fmt.Errorf("deleting project %s metadata %s: %w", ref, name, err)
	}

	return nil
}
