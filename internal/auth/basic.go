package auth

import (
	"context"
	"encoding/base64"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// TokenManager supplies the Basic token placed in the Authorization header.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// BasicAuth holds a base64 encoded "username:secret" token.
type BasicAuth struct {
	token string
}

// NewBasicAuth builds the token from username and secret when both are set,
// falling back to credentials, which must already be encoded.
func NewBasicAuth(username, secret, credentials string) (*BasicAuth, error) {
	token, err := resolveToken(username, secret, credentials)
	if err != nil {
		return nil, err
	}

	return &BasicAuth{token: token}, nil
}

// EncodeCredentials returns base64("username:secret").
func EncodeCredentials(username, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + secret))
}

// GetToken returns the token fixed at construction.
func (b *BasicAuth) GetToken(_ context.Context) (string, error) {
	return b.token, nil
}

func resolveToken(username, secret, credentials string) (string, error) {
	if username != "" && secret != "" {
		return EncodeCredentials(username, secret), nil
	}

	if credentials != "" {
		return credentials, nil
	}

	return "", harbor.ErrMissingCredentials
}

// Headers returns the Authorization and Accept headers for token merged with
// extra. Entries in extra override the defaults.
func Headers(token string, extra map[string]string) map[string]string {
	headers := map[string]string{
		constants.HeaderAuthorization: "Basic " + token,
		constants.HeaderAccept:        constants.MediaTypeJSON,
	}

	for key, value := range extra {
		headers[key] = value
	}

	return headers
}

// RequestHeaders resolves the token from manager and builds the header set.
func RequestHeaders(ctx context.Context, manager TokenManager, extra map[string]string) (map[string]string, error) {
	token, err := manager.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	return Headers(token, extra), nil
}
