package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// ArtifactsClient implements harbor.ArtifactsClient.
type ArtifactsClient struct {
	httpClient *internalhttp.Client
	logger     *zap.Logger
}

// NewArtifactsClient creates a new artifacts client.
func NewArtifactsClient(httpClient *internalhttp.Client, logger *zap.Logger) *ArtifactsClient {
	return &ArtifactsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

func vulnerabilityHeaders(mimeType string) map[string]string {
	if mimeType == "" {
		mimeType = constants.MediaTypeVulnerabilityReport
	}

	return map[string]string{constants.HeaderAcceptVulnerability: mimeType}
}

// List implements harbor.ArtifactsClient.List.
func (c *ArtifactsClient) List(ctx context.Context, project, repository string, opts *harbor.ArtifactListOptions) ([]harbor.Artifact, error) {
	mimeType := ""
	if opts != nil {
		mimeType = opts.MimeType
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodGet,
		Path:    repositoryPath(project, repository) + "/artifacts",
		Query:   opts.Values(),
		Headers: vulnerabilityHeaders(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}

	return decodeList[harbor.Artifact](resp, "artifacts list")
}

// Get implements harbor.ArtifactsClient.Get.
func (c *ArtifactsClient) Get(ctx context.Context, project, repository, reference string, opts *harbor.ArtifactListOptions) (*harbor.Artifact, error) {
	mimeType := ""
	if opts != nil {
		mimeType = opts.MimeType
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodGet,
		Path:    artifactPath(project, repository, reference),
		Query:   opts.Values(),
		Headers: vulnerabilityHeaders(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("getting artifact: %w", err)
	}

	return decode[harbor.Artifact](resp, "artifact")
}

// Delete implements harbor.ArtifactsClient.Delete.
func (c *ArtifactsClient) Delete(ctx context.Context, project, repository, reference string, missingOK bool) error {
	_, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:    http.MethodDelete,
		Path:      artifactPath(project, repository, reference),
		MissingOK: missingOK,
	})
	if err != nil {
		return fmt.Errorf("deleting artifact: %w", err)
	}

	return nil
}

// Copy implements harbor.ArtifactsClient.Copy. source has the form
// "project/repository:tag" or "project/repository@digest".
func (c *ArtifactsClient) Copy(ctx context.Context, project, repository, source string) (string, error) {
	path := repositoryPath(project, repository) + "/artifacts"

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   path,
		Query:  url.Values{"from": {source}},
	})
	if err != nil {
		return "", fmt.Errorf("copying artifact: %w", err)
	}

	warnUnexpectedStatus(c.logger, "copy artifact request", path, resp.StatusCode, http.StatusCreated)

	return resp.Location(), nil
}

// AddLabel implements harbor.ArtifactsClient.AddLabel.
func (c *ArtifactsClient) AddLabel(ctx context.Context, project, repository, reference string, label *harbor.Label) error {
	_, err := c.httpClient.Post(ctx, artifactPath(project, repository, reference)+"/labels", label)
	if err != nil {
		return fmt.Errorf("adding artifact label: %w", err)
	}

	return nil
}

// CreateTag implements harbor.ArtifactsClient.CreateTag.
func (c *ArtifactsClient) CreateTag(ctx context.Context, project, repository, reference string, tag *harbor.Tag) (string, error) {
	err := harbor.Validate(tag)
	if err != nil {
		return "", fmt.Errorf("invalid tag: %w", err)
	}

	path := artifactPath(project, repository, reference) + "/tags"

	resp, err := c.httpClient.Post(ctx, path, tag)
	if err != nil {
		return "", fmt.Errorf("creating artifact tag: %w", err)
	}

	warnUnexpectedStatus(c.logger, "create tag request", path, resp.StatusCode, http.StatusCreated)

	return resp.Location(), nil
}

// ListTags implements harbor.ArtifactsClient.ListTags.
func (c *ArtifactsClient) ListTags(ctx context.Context, project, repository, reference string, opts *harbor.TagListOptions) ([]harbor.Tag, error) {
	resp, err := c.httpClient.Get(ctx, artifactPath(project, repository, reference)+"/tags", opts.Values())
	if err != nil {
		return nil, fmt.Errorf("listing artifact tags: %w", err)
	}

	return decodeList[harbor.Tag](resp, "tags list")
}

// DeleteTag implements harbor.ArtifactsClient.DeleteTag.
func (c *ArtifactsClient) DeleteTag(ctx context.Context, project, repository, reference, tag string, missingOK bool) error {
	_, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:    http.MethodDelete,
		Path:      artifactPath(project, repository, reference) + "/tags/" + url.PathEscape(tag),
		MissingOK: missingOK,
	})
	if err != nil {
		return fmt.Errorf("deleting artifact tag: %w", err)
	}

	return nil
}

// ListAccessories implements harbor.ArtifactsClient.ListAccessories.
func (c *ArtifactsClient) ListAccessories(ctx context.Context, project, repository, reference string, opts *harbor.ListOptions) ([]harbor.Accessory, error) {
	resp, err := c.httpClient.Get(ctx, artifactPath(project, repository, reference)+"/accessories", opts.Values())
	if err != nil {
		return nil, fmt.Errorf("listing artifact accessories: %w", err)
	}

	return decodeList[harbor.Accessory](resp, "accessories list")
}

// GetVulnerabilities implements harbor.ArtifactsClient.GetVulnerabilities.
// The response maps MIME types to reports; a missing or empty entry for
// mimeType is reported as not found rather than as an error.
func (c *ArtifactsClient) GetVulnerabilities(
	ctx context.Context, project, repository, reference, mimeType string,
) (*harbor.HarborVulnerabilityReport, bool, error) {
	if mimeType == "" {
		mimeType = constants.MediaTypeVulnerabilityReport
	}

	path := artifactPath(project, repository, reference) + "/additions/vulnerabilities"

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodGet,
		Path:    path,
		Headers: vulnerabilityHeaders(mimeType),
	})
	if err != nil {
		return nil, false, fmt.Errorf("getting artifact vulnerabilities: %w", err)
	}

	body, err := resp.JSON()
	if err != nil {
		c.logger.Warn("vulnerabilities response has no body", zap.String("path", path))

		return nil, false, nil
	}

	var reports map[string]json.RawMessage

	err = json.Unmarshal(body, &reports)
	if err != nil {
		c.logger.Warn("vulnerabilities response is not an object", zap.String("path", path))

		return nil, false, nil
	}

	raw, ok := reports[mimeType]
	if !ok || isEmptyJSON(raw) {
		c.logger.Warn("no vulnerability report for MIME type",
			zap.String("path", path),
			zap.String("mime_type", mimeType),
		)

		return nil, false, nil
	}

	report, err := harbor.Construct[harbor.HarborVulnerabilityReport](raw)
	if err != nil {
		return nil, false, fmt.Errorf("parsing vulnerability report: %w", err)
	}

	return report, true, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return len(bytes.TrimSpace(raw)) == 0
	}

	switch typed := value.(type) {
	case nil:
		return true
	case map[string]any:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	case string:
		return typed == ""
	default:
		return false
	}
}
