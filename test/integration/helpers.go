//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
	"github.com/fivetwenty-io/harbor-client/pkg/harborclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	URL      string
	Username string
	Secret   string
	Project  string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	project := os.Getenv("HARBOR_TEST_PROJECT")
	if project == "" {
		project = "library"
	}

	return &TestConfig{
		URL:      os.Getenv("HARBOR_URL"),
		Username: os.Getenv("HARBOR_USERNAME"),
		Secret:   os.Getenv("HARBOR_SECRET"),
		Project:  project,
		Verbose:  os.Getenv("HARBOR_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.URL == "" {
		t.Skip("HARBOR_URL not set, skipping integration test")
	}

	if config.Username == "" || config.Secret == "" {
		t.Skip("HARBOR_USERNAME or HARBOR_SECRET not set, skipping integration test")
	}
}

// NewClient connects to the configured Harbor instance
func (config *TestConfig) NewClient(t *testing.T) harbor.Client {
	t.Helper()

	var opts []harborclient.Option
	if config.Verbose {
		opts = append(opts, harborclient.WithLogger(zaptest.NewLogger(t)))
	}

	client, err := harborclient.NewWithPassword(context.Background(), config.URL, config.Username, config.Secret, opts...)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}
