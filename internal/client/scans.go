package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
)

// ScansClient implements harbor.ScansClient.
type ScansClient struct {
	httpClient *internalhttp.Client
	logger     *zap.Logger
}

// NewScansClient creates a new scans client.
func NewScansClient(httpClient *internalhttp.Client, logger *zap.Logger) *ScansClient {
	return &ScansClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// ScanArtifact implements harbor.ScansClient.ScanArtifact.
func (c *ScansClient) ScanArtifact(ctx context.Context, project, repository, reference string) error {
	path := artifactPath(project, repository, reference) + "/scan"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("scanning artifact: %w", err)
	}

	warnUnexpectedStatus(c.logger, "scan request", path, resp.StatusCode, http.StatusAccepted)

	return nil
}

// GetReportLog implements harbor.ScansClient.GetReportLog.
func (c *ScansClient) GetReportLog(ctx context.Context, project, repository, reference, reportID string) (string, error) {
	path := artifactPath(project, repository, reference) + "/scan/" + url.PathEscape(reportID) + "/log"

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:   http.MethodGet,
		Path:     path,
		Headers:  map[string]string{constants.HeaderAccept: "text/plain"},
		NoFollow: true,
	})
	if err != nil {
		return "", fmt.Errorf("getting scan report log: %w", err)
	}

	return resp.Text(), nil
}

// StopScan implements harbor.ScansClient.StopScan.
func (c *ScansClient) StopScan(ctx context.Context, project, repository, reference string) error {
	path := artifactPath(project, repository, reference) + "/scan/stop"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("stopping artifact scan: %w", err)
	}

	warnUnexpectedStatus(c.logger, "stop scan request", path, resp.StatusCode, http.StatusAccepted)

	return nil
}

func warnUnexpectedStatus(logger *zap.Logger, operation, path string, status, expected int) {
	if status == expected {
		return
	}

	logger.Warn(operation+" returned unexpected status",
		zap.String("path", path),
		zap.Int("status", status),
		zap.Int("expected", expected),
	)
}
