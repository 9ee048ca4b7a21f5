/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/rs/zerolog"
)

var (
	errInvalidConfigSource = errors.New("invalid CONFIG_SOURCE value")
)

const (
	configSourceFile = "file"
	configSourceEnv  = "env"

	// DefaultEnvPrefix prefixes every process setting read with CONFIG_SOURCE=env.
	DefaultEnvPrefix = "NETSNAP_"
	// CredentialsEnvPrefix prefixes the shared device credentials.
	CredentialsEnvPrefix = "DEVICE_"
)

// Config holds the configuration loading dependencies.
type Config struct {
	defaultLoader ConfigLoader
	logger        logger.Logger
}

// NewConfig initializes a new Config instance with a default file loader and logger.
// If logger is nil, a stderr logger at warn level is used.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = createBasicLogger()
	}

	return &Config{
		defaultLoader: &FileConfigLoader{logger: log},
		logger:        log,
	}
}

func createBasicLogger() logger.Logger {
	return logger.Wrap(zerolog.New(os.Stderr).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Logger())
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}

// LoadAndValidate loads a configuration from the source selected by
// CONFIG_SOURCE and validates it. With the file source an empty path skips
// loading, leaving cfg to its defaults.
func (c *Config) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	if err := c.loadWithSource(ctx, path, cfg); err != nil {
		return models.NewDeviceError(models.KindConfiguration, "", "load config", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return models.NewDeviceError(models.KindConfiguration, "", "validate config", err)
	}

	return nil
}

func (c *Config) loadWithSource(ctx context.Context, path string, cfg interface{}) error {
	source := strings.ToLower(os.Getenv("CONFIG_SOURCE"))

	switch source {
	case configSourceEnv:
		prefix := os.Getenv("CONFIG_ENV_PREFIX")
		if prefix == "" {
			prefix = DefaultEnvPrefix
		}

		return NewEnvConfigLoader(c.logger, prefix).Load(ctx, path, cfg)
	case configSourceFile, "":
		if path == "" {
			c.logger.Debug().Msg("No configuration file given, using defaults")

			return nil
		}

		return c.defaultLoader.Load(ctx, path, cfg)
	default:
		return fmt.Errorf("%w: %s (expected '%s' or '%s')",
			errInvalidConfigSource, source, configSourceFile, configSourceEnv)
	}
}

// LoadCredentials reads DEVICE_USERNAME, DEVICE_PASSWORD and DEVICE_SECRET.
// Every missing variable is reported in a single configuration error.
func (c *Config) LoadCredentials(ctx context.Context) (*models.Credentials, error) {
	creds := &models.Credentials{}

	if err := NewEnvConfigLoader(c.logger, CredentialsEnvPrefix).Load(ctx, "", creds); err != nil {
		return nil, models.NewDeviceError(models.KindConfiguration, "", "load credentials", err)
	}

	if err := creds.Validate(); err != nil {
		return nil, err
	}

	return creds, nil
}
