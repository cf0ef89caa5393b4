package harborclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// EnvPrefix is the prefix of environment variables read by LoadConfig.
const EnvPrefix = "HARBOR"

// configKeys are the settings LoadConfig binds to environment variables.
var configKeys = []string{
	"url",
	"username",
	"secret",
	"credentials",
	"api_version",
	"http_timeout",
	"retry_max",
	"retry_wait_min",
	"retry_wait_max",
	"retry_budget",
	"user_agent",
	"disable_link_following",
	"cache.type",
	"cache.max_size",
	"cache.ttl",
	"cache.nats.url",
	"cache.nats.bucket",
	"cache.nats.ttl",
}

// LoadConfig reads a client configuration from the YAML file at path, when
// it exists, and from HARBOR_* environment variables, which take precedence.
// Nested keys use underscores, e.g. HARBOR_CACHE_TTL. Durations accept Go
// duration strings such as "30s".
func LoadConfig(path string) (*harbor.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range configKeys {
		err := v.BindEnv(key)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		_, err := os.Stat(path)

		switch {
		case err == nil:
			v.SetConfigFile(path)

			err = v.ReadInConfig()
			if err != nil {
				return nil, fmt.Errorf("failed to read configuration: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	var config harbor.Config

	err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the non-secret settings of config to path as YAML.
// Secret and Credentials are never persisted.
func SaveConfig(path string, config *harbor.Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is required", harbor.ErrConfiguration)
	}

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
