package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// UsersClient implements harbor.UsersClient.
type UsersClient struct {
	httpClient *internalhttp.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *internalhttp.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// SearchByUsername implements harbor.UsersClient.SearchByUsername.
func (c *UsersClient) SearchByUsername(ctx context.Context, username string, opts *harbor.ListOptions) ([]harbor.UserSearchRespItem, error) {
	query := opts.Values()
	query.Set("username", username)

	resp, err := c.httpClient.Get(ctx, constants.PathUsersSearch, query)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	return decodeList[harbor.UserSearchRespItem](resp, "user search results")
}

// List implements harbor.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, opts *harbor.ListOptions) ([]harbor.UserResp, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathUsers, opts.Values())
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return decodeList[harbor.UserResp](resp, "users list")
}

// Current implements harbor.UsersClient.Current.
func (c *UsersClient) Current(ctx context.Context) (*harbor.UserResp, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathCurrentUser, nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return decode[harbor.UserResp](resp, "current user")
}

// CurrentPermissions implements harbor.UsersClient.CurrentPermissions.
// An empty scope lists permissions across all scopes.
func (c *UsersClient) CurrentPermissions(ctx context.Context, scope string, relative bool) ([]harbor.Permission, error) {
	query := url.Values{}
	if scope != "" {
		query.Set("scope", scope)
		query.Set("relative", strconv.FormatBool(relative))
	}

	resp, err := c.httpClient.Get(ctx, constants.PathCurrentUserPermissions, query)
	if err != nil {
		return nil, fmt.Errorf("getting current user permissions: %w", err)
	}

	return decodeList[harbor.Permission](resp, "permissions")
}
