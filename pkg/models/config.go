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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDevicesFile    = "inventory.csv"
	DefaultBackupDir      = "network-backup"
	DefaultInventoryFile  = "automation_inventory.csv"
	DefaultSSHPort        = 22
	DefaultConnectTimeout = Duration(30 * time.Second)
	DefaultAuthTimeout    = Duration(30 * time.Second)
)

var (
	errInvalidDuration       = errors.New("invalid duration")
	errNegativeDuration      = errors.New("duration must not be negative")
	errInvalidSSHPort        = errors.New("ssh_port must be between 1 and 65535")
	errMissingDeviceUsername = errors.New("DEVICE_USERNAME is not set")
	errMissingDevicePassword = errors.New("DEVICE_PASSWORD is not set")
	errMissingDeviceSecret   = errors.New("DEVICE_SECRET is not set")
	errTimeoutMustBePositive = errors.New("must be positive")
)

// Duration is a time.Duration that unmarshals from Go duration strings
// ("30s") or from bare numbers, which are read as whole seconds.
type Duration time.Duration

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON renders the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value * float64(time.Second)))

		return nil
	case string:
		return d.parse(value)
	default:
		return errInvalidDuration
	}
}

// MarshalYAML renders the duration as a Go duration string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar, got %v", errInvalidDuration, node.Tag)
	}

	return d.parse(node.Value)
}

func (d *Duration) parse(value string) error {
	value = strings.TrimSpace(value)

	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		*d = Duration(time.Duration(secs * float64(time.Second)))

		return nil
	}

	dur, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

// Config is the process configuration shared by the backup and inventory runs.
type Config struct {
	DevicesFile    string         `json:"devices_file" yaml:"devices_file"`
	BackupDir      string         `json:"backup_dir" yaml:"backup_dir"`
	InventoryFile  string         `json:"inventory_file" yaml:"inventory_file"`
	SSHPort        int            `json:"ssh_port" yaml:"ssh_port"`
	ConnectTimeout Duration       `json:"connect_timeout" yaml:"connect_timeout"`
	AuthTimeout    Duration       `json:"auth_timeout" yaml:"auth_timeout"`
	CommandTimeout Duration       `json:"command_timeout" yaml:"command_timeout"` // 0 disables the round-trip bound
	MetricsFile    string         `json:"metrics_file" yaml:"metrics_file"`
	Logging        *logger.Config `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	_ = cfg.Validate()

	return cfg
}

// Validate fills defaults and reports every invalid field at once.
func (c *Config) Validate() error {
	if c.DevicesFile == "" {
		c.DevicesFile = DefaultDevicesFile
	}

	if c.BackupDir == "" {
		c.BackupDir = DefaultBackupDir
	}

	if c.InventoryFile == "" {
		c.InventoryFile = DefaultInventoryFile
	}

	if c.SSHPort == 0 {
		c.SSHPort = DefaultSSHPort
	}

	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}

	if c.AuthTimeout == 0 {
		c.AuthTimeout = DefaultAuthTimeout
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	var result *multierror.Error

	if c.SSHPort < 1 || c.SSHPort > 65535 {
		result = multierror.Append(result, errInvalidSSHPort)
	}

	if c.ConnectTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("connect_timeout: %w", errTimeoutMustBePositive))
	}

	if c.AuthTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("auth_timeout: %w", errTimeoutMustBePositive))
	}

	if c.CommandTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("command_timeout: %w", errNegativeDuration))
	}

	return result.ErrorOrNil()
}

// Credentials are the operator credentials shared by every device in a run.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password" sensitive:"true"`
	Secret   string `json:"secret" sensitive:"true"`
}

// Validate reports every missing credential as a single configuration error.
func (c *Credentials) Validate() error {
	var result *multierror.Error

	if c.Username == "" {
		result = multierror.Append(result, errMissingDeviceUsername)
	}

	if c.Password == "" {
		result = multierror.Append(result, errMissingDevicePassword)
	}

	if c.Secret == "" {
		result = multierror.Append(result, errMissingDeviceSecret)
	}

	if err := result.ErrorOrNil(); err != nil {
		return NewDeviceError(KindConfiguration, "", "load credentials", err)
	}

	return nil
}
