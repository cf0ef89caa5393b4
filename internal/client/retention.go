package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// RetentionClient implements harbor.RetentionClient.
type RetentionClient struct {
	httpClient *internalhttp.Client
}

// NewRetentionClient creates a new retention client.
func NewRetentionClient(httpClient *internalhttp.Client) *RetentionClient {
	return &RetentionClient{
		httpClient: httpClient,
	}
}

func policyPath(policyID int64) string {
	return constants.PathRetention + "/" + int64Segment(policyID)
}

func executionPath(policyID, executionID int64) string {
	return policyPath(policyID) + "/executions/" + int64Segment(executionID)
}

// ProjectRetentionID implements harbor.RetentionClient.ProjectRetentionID.
// A project without a retention policy is reported as not found.
func (c *RetentionClient) ProjectRetentionID(ctx context.Context, ref harbor.ProjectRef) (int64, error) {
	project, err := getProject(ctx, c.httpClient, ref)
	if err != nil {
		return 0, err
	}

	if project.Metadata == nil || project.Metadata.RetentionID == "" {
		return 0, harbor.NewStatusError(http.StatusNotFound, []harbor.APIError{{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("project %s has no retention ID", ref),
		}}, nil)
	}

	id, err := project.Metadata.RetentionID.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", harbor.ErrRetentionID, project.Metadata.RetentionID, err)
	}

	return id, nil
}

// GetPolicy implements harbor.RetentionClient.GetPolicy.
func (c *RetentionClient) GetPolicy(ctx context.Context, policyID int64) (*harbor.RetentionPolicy, error) {
	resp, err := c.httpClient.Get(ctx, policyPath(policyID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting retention policy %d: %w", policyID, err)
	}

	return decode[harbor.RetentionPolicy](resp, "retention policy")
}

// CreatePolicy implements harbor.RetentionClient.CreatePolicy.
func (c *RetentionClient) CreatePolicy(ctx context.Context, policy *harbor.RetentionPolicy) (string, error) {
	err := harbor.Validate(policy)
	if err != nil {
		return "", fmt.Errorf("invalid retention policy: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, constants.PathRetention, policy)
	if err != nil {
		return "", fmt.Errorf("creating retention policy: %w", err)
	}

	return resp.Location(), nil
}

// UpdatePolicy implements harbor.RetentionClient.UpdatePolicy.
func (c *RetentionClient) UpdatePolicy(ctx context.Context, policyID int64, policy *harbor.RetentionPolicy) error {
	err := harbor.Validate(policy)
	if err != nil {
		return fmt.Errorf("invalid retention policy: %w", err)
	}

	_, err = c.httpClient.Put(ctx, policyPath(policyID), policy)
	if err != nil {
		return fmt.Errorf("updating retention policy %d: %w", policyID, err)
	}

	return nil
}

// DeletePolicy implements harbor.RetentionClient.DeletePolicy.
func (c *RetentionClient) DeletePolicy(ctx context.Context, policyID int64) error {
	_, err := c.httpClient.Delete(ctx, policyPath(policyID))
	if err != nil {
		return fmt.Errorf("deleting retention policy %d: %w", policyID, err)
	}

	return nil
}

// Metadata implements harbor.RetentionClient.Metadata.
func (c *RetentionClient) Metadata(ctx context.Context) (*harbor.RetentionMetadata, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathRetentionMetadata, nil)
	if err != nil {
		return nil, fmt.Errorf("getting retention metadata: %w", err)
	}

	return decode[harbor.RetentionMetadata](resp, "retention metadata")
}

// ListExecutions implements harbor.RetentionClient.ListExecutions.
func (c *RetentionClient) ListExecutions(ctx context.Context, policyID int64, page, pageSize int) ([]harbor.RetentionExecution, error) {
	resp, err := c.httpClient.Get(ctx, policyPath(policyID)+"/executions", pageValues(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("listing retention executions: %w", err)
	}

	return decodeList[harbor.RetentionExecution](resp, "retention executions")
}

// StartExecution implements harbor.RetentionClient.StartExecution.
func (c *RetentionClient) StartExecution(ctx context.Context, policyID int64, dryRun bool) (string, error) {
	body := map[string]bool{"dry_run": dryRun}

	resp, err := c.httpClient.Post(ctx, policyPath(policyID)+"/executions", body)
	if err != nil {
		return "", fmt.Errorf("starting retention execution: %w", err)
	}

	return resp.Location(), nil
}

// StopExecution implements harbor.RetentionClient.StopExecution.
func (c *RetentionClient) StopExecution(ctx context.Context, policyID, executionID int64) error {
	body := map[string]string{"action": "stop"}

	_, err := c.httpClient.Patch(ctx, executionPath(policyID, executionID), body)
	if err != nil {
		return fmt.Errorf("stopping retention execution %d: %w", executionID, err)
	}

	return nil
}

// ListTasks implements harbor.RetentionClient.ListTasks.
func (c *RetentionClient) ListTasks(ctx context.Context, policyID, executionID int64, page, pageSize int) ([]harbor.RetentionExecutionTask, error) {
	resp, err := c.httpClient.Get(ctx, executionPath(policyID, executionID)+"/tasks", pageValues(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("listing retention tasks: %w", err)
	}

	return decodeList[harbor.RetentionExecutionTask](resp, "retention tasks")
}

// TaskLog implements harbor.RetentionClient.TaskLog.
func (c *RetentionClient) TaskLog(ctx context.Context, policyID, executionID, taskID int64) (string, error) {
	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:   http.MethodGet,
		Path:     executionPath(policyID, executionID) + "/tasks/" + int64Segment(taskID),
		Headers:  map[string]string{constants.HeaderAccept: "text/plain"},
		NoFollow: true,
	})
	if err != nil {
		return "", fmt.Errorf("getting retention task log: %w", err)
	}

	return resp.Text(), nil
}
