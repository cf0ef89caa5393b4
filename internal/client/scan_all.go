package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// ScanAllClient implements harbor.ScanAllClient.
type ScanAllClient struct {
	httpClient *internalhttp.Client
	logger     *zap.Logger
}

// NewScanAllClient creates a new scan-all client.
func NewScanAllClient(httpClient *internalhttp.Client, logger *zap.Logger) *ScanAllClient {
	return &ScanAllClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Metrics implements harbor.ScanAllClient.Metrics.
func (c *ScanAllClient) Metrics(ctx context.Context) (*harbor.Stats, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathScanAllMetrics, nil)
	if err != nil {
		return nil, fmt.Errorf("getting scan all metrics: %w", err)
	}

	return decode[harbor.Stats](resp, "scan all metrics")
}

// GetSchedule implements harbor.ScanAllClient.GetSchedule.
func (c *ScanAllClient) GetSchedule(ctx context.Context) (*harbor.Schedule, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathScanAllSchedule, nil)
	if err != nil {
		return nil, fmt.Errorf("getting scan all schedule: %w", err)
	}

	return decode[harbor.Schedule](resp, "scan all schedule")
}

// CreateSchedule implements harbor.ScanAllClient.CreateSchedule.
func (c *ScanAllClient) CreateSchedule(ctx context.Context, schedule *harbor.Schedule) (string, error) {
	resp, err := c.httpClient.Post(ctx, constants.PathScanAllSchedule, schedule)
	if err != nil {
		return "", fmt.Errorf("creating scan all schedule: %w", err)
	}

	warnUnexpectedStatus(c.logger, "create scan all schedule", constants.PathScanAllSchedule, resp.StatusCode, http.StatusCreated)

	return resp.Location(), nil
}

// UpdateSchedule implements harbor.ScanAllClient.UpdateSchedule.
func (c *ScanAllClient) UpdateSchedule(ctx context.Context, schedule *harbor.Schedule) error {
	_, err := c.httpClient.Put(ctx, constants.PathScanAllSchedule, schedule)
	if err != nil {
		return fmt.Errorf("updating scan all schedule: %w", err)
	}

	return nil
}

// Stop implements harbor.ScanAllClient.Stop.
func (c *ScanAllClient) Stop(ctx context.Context) error {
	_, err := c.httpClient.Post(ctx, constants.PathScanAllStop, nil)
	if err != nil {
		return fmt.Errorf("stopping scan all job: %w", err)
	}

	return nil
}
