package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// ScannersClient implements harbor.ScannersClient.
type ScannersClient struct {
	httpClient *internalhttp.Client
}

// NewScannersClient creates a new scanners client.
func NewScannersClient(httpClient *internalhttp.Client) *ScannersClient {
	return &ScannersClient{
		httpClient: httpClient,
	}
}

func scannerPath(registrationID string) string {
	return constants.PathScanners + "/" + url.PathEscape(registrationID)
}

// Create implements harbor.ScannersClient.Create.
func (c *ScannersClient) Create(ctx context.Context, request *harbor.ScannerRegistrationReq) (string, error) {
	err := harbor.Validate(request)
	if err != nil {
		return "", fmt.Errorf("invalid scanner registration: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, constants.PathScanners, request)
	if err != nil {
		return "", fmt.Errorf("creating scanner registration: %w", err)
	}

	return resp.Location(), nil
}

// List implements harbor.ScannersClient.List.
func (c *ScannersClient) List(ctx context.Context, opts *harbor.ListOptions) ([]harbor.ScannerRegistration, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathScanners, opts.Values())
	if err != nil {
		return nil, fmt.Errorf("listing scanners: %w", err)
	}

	return decodeList[harbor.ScannerRegistration](resp, "scanners list")
}

// Get implements harbor.ScannersClient.Get.
func (c *ScannersClient) Get(ctx context.Context, registrationID string) (*harbor.ScannerRegistration, error) {
	resp, err := c.httpClient.Get(ctx, scannerPath(registrationID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting scanner %s: %w", registrationID, err)
	}

	return decode[harbor.ScannerRegistration](resp, "scanner")
}

// Update implements harbor.ScannersClient.Update.
func (c *ScannersClient) Update(ctx context.Context, registrationID string, request *harbor.ScannerRegistrationReq) error {
	err := harbor.Validate(request)
	if err != nil {
		return fmt.Errorf("invalid scanner registration: %w", err)
	}

	_, err = c.httpClient.Put(ctx, scannerPath(registrationID), request)
	if err != nil {
		return fmt.Errorf("updating scanner %s: %w", registrationID, err)
	}

	return nil
}

// Delete implements harbor.ScannersClient.Delete. Harbor answers with the
// removed registration. When missingOK is set and the scanner does not exist,
// Delete returns (nil, nil).
func (c *ScannersClient) Delete(ctx context.Context, registrationID string, missingOK bool) (*harbor.ScannerRegistration, error) {
	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:    http.MethodDelete,
		Path:      scannerPath(registrationID),
		MissingOK: missingOK,
	})
	if err != nil {
		return nil, fmt.Errorf("deleting scanner %s: %w", registrationID, err)
	}

	if resp.Absent {
		return nil, nil
	}

	if resp.IsEmptyObject() {
		return nil, fmt.Errorf("deleting scanner %s: %w", registrationID, harbor.ErrEmptyDeleteResult)
	}

	return decode[harbor.ScannerRegistration](resp, "deleted scanner")
}

// SetDefault implements harbor.ScannersClient.SetDefault.
func (c *ScannersClient) SetDefault(ctx context.Context, registrationID string, isDefault bool) error {
	_, err := c.httpClient.Patch(ctx, scannerPath(registrationID), &harbor.IsDefault{IsDefault: isDefault})
	if err != nil {
		return fmt.Errorf("setting default scanner %s: %w", registrationID, err)
	}

	return nil
}

// Ping implements harbor.ScannersClient.Ping.
func (c *ScannersClient) Ping(ctx context.Context, settings *harbor.ScannerRegistrationSettings) error {
	err := harbor.Validate(settings)
	if err != nil {
		return fmt.Errorf("invalid scanner settings: %w", err)
	}

	_, err = c.httpClient.Post(ctx, constants.PathScannersPing, settings)
	if err != nil {
		return fmt.Errorf("pinging scanner: %w", err)
	}

	return nil
}

// Metadata implements harbor.ScannersClient.Metadata.
func (c *ScannersClient) Metadata(ctx context.Context, registrationID string) (*harbor.ScannerAdapterMetadata, error) {
	resp, err := c.httpClient.Get(ctx, scannerPath(registrationID)+"/metadata", nil)
	if err != nil {
		return nil, fmt.Errorf("getting scanner %s metadata: %w", registrationID, err)
	}

	return decode[harbor.ScannerAdapterMetadata](resp, "scanner metadata")
}
