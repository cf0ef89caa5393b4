package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harbor-client/internal/auth"
	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &harbor.Config{Username: "admin", Secret: "secret"})
		require.Error(t, err)
		require.ErrorIs(t, err, harbor.ErrConfiguration)
		assert.ErrorIs(t, err, constants.ErrBaseURLRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &harbor.Config{URL: "https://harbor.example.com"})
		require.ErrorIs(t, err, harbor.ErrMissingCredentials)
		assert.ErrorIs(t, err, harbor.ErrConfiguration)
	})

	t.Run("creates client with username and secret", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &harbor.Config{
			URL:      "https://harbor.example.com/",
			Username: "admin",
			Secret:   "Harbor12345",
		})
		require.NoError(t, err)
		t.Cleanup(client.Close)

		assert.Equal(t, "https://harbor.example.com/api/v2.0", client.BaseURL())

		token, err := client.GetTokenManager().GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "YWRtaW46SGFyYm9yMTIzNDU=", token)
	})

	t.Run("creates client with pre-encoded credentials", func(t *testing.T) {
		t.Parallel()

		client, err := New(context.Background(), &harbor.Config{
			URL:         "https://harbor.example.com",
			Credentials: "YWRtaW46SGFyYm9yMTIzNDU=",
			APIVersion:  "v2.1",
		})
		require.NoError(t, err)
		t.Cleanup(client.Close)

		assert.Equal(t, "https://harbor.example.com/api/v2.1", client.BaseURL())
	})

	t.Run("rejects nil token manager", func(t *testing.T) {
		t.Parallel()

		_, err := NewWithTokenManager(context.Background(), &harbor.Config{URL: "https://harbor.example.com"}, nil)
		assert.ErrorIs(t, err, harbor.ErrMissingCredentials)
	})

	t.Run("rejects unsupported cache type", func(t *testing.T) {
		t.Parallel()

		_, err := New(context.Background(), &harbor.Config{
			URL:      "https://harbor.example.com",
			Username: "admin",
			Secret:   "secret",
			Cache:    &harbor.CacheConfig{Type: "redis"},
		})
		assert.ErrorIs(t, err, harbor.ErrUnsupportedCacheType)
	})
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		version string
		want    string
	}{
		{"bare host", "https://harbor.example.com", "v2.0", "https://harbor.example.com/api/v2.0"},
		{"trailing slashes", "https://harbor.example.com///", "v2.0", "https://harbor.example.com/api/v2.0"},
		{"api segment", "https://harbor.example.com/api", "v2.0", "https://harbor.example.com/api/v2.0"},
		{"api segment with slash", "https://harbor.example.com/api/", "v2.0", "https://harbor.example.com/api/v2.0"},
		{"versioned", "https://harbor.example.com/api/v2.0", "v2.0", "https://harbor.example.com/api/v2.0"},
		{"other version kept", "https://harbor.example.com/api/v3/", "v2.0", "https://harbor.example.com/api/v3"},
		{"prefixed path", "https://example.com/harbor", "v2.0", "https://example.com/harbor/api/v2.0"},
		{"api host", "https://api.example.com", "v2.0", "https://api.example.com/api/v2.0"},
		{"empty version", "https://harbor.example.com/", "", "https://harbor.example.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, NormalizeURL(tt.url, tt.version))
		})
	}
}

func TestNewWithTokenManager(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, stubResponse{Body: `{"user_id":7,"username":"robot"}`})

	tokenManager, err := auth.NewBasicAuth("", "", "cm9ib3Q6c2VjcmV0")
	require.NoError(t, err)

	client, err := NewWithTokenManager(context.Background(), &harbor.Config{URL: server.URL}, tokenManager)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	user, err := client.Users().Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "robot", user.Username)
	assert.Equal(t, "Basic cm9ib3Q6c2VjcmV0", server.LastRequest(t).Header.Get(constants.HeaderAuthorization))
}

func TestClient_GetJSON(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, stubResponse{Body: `{"with_notary":false}`})
	client := newTestClient(t, server)

	raw, err := client.GetJSON(context.Background(), "/systeminfo", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"with_notary":false}`, string(raw))

	request := server.LastRequest(t)
	assert.Equal(t, apiPrefix+"/systeminfo", request.Path)
	assert.Equal(t, "Basic YWRtaW46SGFyYm9yMTIzNDU=", request.Header.Get(constants.HeaderAuthorization))
	assert.Equal(t, constants.MediaTypeJSON, request.Header.Get(constants.HeaderAccept))
}

func TestClient_GetJSON_NotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, stubResponse{
		Status: http.StatusNotFound,
		Body:   `{"errors":[{"code":"NOT_FOUND","message":"no such thing"}]}`,
	})
	client := newTestClient(t, server)

	_, err := client.GetJSON(context.Background(), "/missing", nil)
	require.ErrorIs(t, err, harbor.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, harbor.StatusCode(err))
}

func TestClient_GetText(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, stubResponse{
		Body:    "Pong",
		Headers: map[string]string{constants.HeaderContentType: "text/plain"},
	})
	client := newTestClient(t, server)

	text, err := client.GetText(context.Background(), "/ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "Pong", text)
	assert.Equal(t, "text/plain", server.LastRequest(t).Header.Get(constants.HeaderAccept))
}

func TestClient_OwnedCache(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, stubResponse{Body: `{"status":"healthy"}`})
	client := newTestClient(t, server, func(config *harbor.Config) {
		config.Cache = &harbor.CacheConfig{Type: harbor.CacheTypeMemory, TTL: time.Minute}
	})

	for i := 0; i < 3; i++ {
		health, err := client.System().Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "healthy", health.Status)
	}

	assert.Len(t, server.Requests(), 1)
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := newTestClient(t, server)

	assert.NotNil(t, client.Users())
	assert.NotNil(t, client.ScanAll())
	assert.NotNil(t, client.Scans())
	assert.NotNil(t, client.Artifacts())
	assert.NotNil(t, client.Scanners())
	assert.NotNil(t, client.Retention())
	assert.NotNil(t, client.Projects())
	assert.NotNil(t, client.System())
}
