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

package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/session/sessiontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deviceList = "IP Address,device_role,device_type,Location\n" +
	"127.0.0.1,core,cisco_ios,dc1\n" +
	",edge,cisco_ios,dc1\n" +
	"127.0.0.2,edge,juniper_junos,dc2\n"

const showVersion = "Cisco IOS Software, C2900 Software (C2900-UNIVERSALK9-M), Version 15.7(3)M3, RELEASE SOFTWARE (fc2)\n" +
	"\n" +
	"R1 uptime is 1 week, 2 days\n" +
	"Cisco CISCO2911/K9 (revision 1.0) with 487424K/36864K bytes of memory.\n" +
	"Processor board ID FTX1234ABCD"

func setCredentials(t *testing.T) {
	t.Helper()

	t.Setenv("CONFIG_SOURCE", "")
	t.Setenv("DEVICE_USERNAME", "automation")
	t.Setenv("DEVICE_PASSWORD", "hunter2")
	t.Setenv("DEVICE_SECRET", "enable-me")
}

// testConfig writes a device list and a config file pointing at a fake
// device and returns the loaded configuration.
func testConfig(t *testing.T, extra map[string]interface{}) *models.Config {
	t.Helper()

	port := sessiontest.Start(t, &sessiontest.Device{
		Hostname: "R1",
		Username: "automation",
		Password: "hunter2",
		Secret:   "enable-me",
		Responses: map[string]string{
			"show running-config": "hostname R1\n!\nend",
			"show version":        showVersion,
		},
	})

	dir := t.TempDir()
	devicesFile := filepath.Join(dir, "inventory.csv")
	require.NoError(t, os.WriteFile(devicesFile, []byte(deviceList), 0o600))

	raw := map[string]interface{}{
		"devices_file":    devicesFile,
		"backup_dir":      filepath.Join(dir, "backups"),
		"inventory_file":  filepath.Join(dir, "automation_inventory.csv"),
		"ssh_port":        port,
		"connect_timeout": "5s",
		"auth_timeout":    "5s",
		"command_timeout": "5s",
	}

	for k, v := range extra {
		raw[k] = v
	}

	data, err := json.Marshal(raw)
	require.NoError(t, err)

	configFile := filepath.Join(dir, "netsnap.json")
	require.NoError(t, os.WriteFile(configFile, data, 0o600))

	cfg, err := LoadConfig(context.Background(), &CmdConfig{ConfigFile: configFile}, logger.NewTestLogger())
	require.NoError(t, err)

	return cfg
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	cfg, err := LoadConfig(context.Background(), &CmdConfig{SubCmd: CmdBackup}, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, models.DefaultDevicesFile, cfg.DevicesFile)
	assert.Equal(t, models.DefaultBackupDir, cfg.BackupDir)
	assert.Equal(t, models.DefaultInventoryFile, cfg.InventoryFile)
	assert.Equal(t, models.DefaultSSHPort, cfg.SSHPort)
	assert.Equal(t, models.Duration(30*time.Second), cfg.ConnectTimeout)
	assert.Zero(t, cfg.CommandTimeout)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	configFile := filepath.Join(t.TempDir(), "netsnap.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("devices_file: file.csv\nbackup_dir: file-backups\nssh_port: 2222\n"), 0o600))

	cfg, err := LoadConfig(context.Background(), &CmdConfig{
		ConfigFile: configFile,
		BackupDir:  "flag-backups",
		OutputFile: "flag.csv",
	}, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, "file.csv", cfg.DevicesFile)
	assert.Equal(t, "flag-backups", cfg.BackupDir)
	assert.Equal(t, "flag.csv", cfg.InventoryFile)
	assert.Equal(t, 2222, cfg.SSHPort)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	configFile := filepath.Join(t.TempDir(), "netsnap.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"ssh_port": 70000}`), 0o600))

	_, err := LoadConfig(context.Background(), &CmdConfig{ConfigFile: configFile}, logger.NewTestLogger())
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestRunRequiresCredentials(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")
	t.Setenv("DEVICE_USERNAME", "automation")
	t.Setenv("DEVICE_PASSWORD", "")
	t.Setenv("DEVICE_SECRET", "")

	cfg := models.DefaultConfig()
	cfg.DevicesFile = filepath.Join(t.TempDir(), "missing.csv")

	for _, cmd := range []string{CmdBackup, CmdInventory} {
		summary, err := Run(context.Background(), &CmdConfig{SubCmd: cmd}, cfg, logger.NewTestLogger())

		require.ErrorIs(t, err, models.ErrConfiguration, cmd)
		assert.Contains(t, err.Error(), "DEVICE_PASSWORD")
		assert.Contains(t, err.Error(), "DEVICE_SECRET")
		assert.Nil(t, summary)
	}
}

func TestRunRejectsNonRunCommands(t *testing.T) {
	_, err := Run(context.Background(), &CmdConfig{SubCmd: CmdVersion}, models.DefaultConfig(), logger.NewTestLogger())
	assert.ErrorIs(t, err, errUnsupportedMode)

	_, err = Run(context.Background(), &CmdConfig{}, models.DefaultConfig(), logger.NewTestLogger())
	assert.ErrorIs(t, err, errMissingCommand)
}

func TestRunBackupWithMissingDeviceList(t *testing.T) {
	setCredentials(t)

	cfg := models.DefaultConfig()
	cfg.DevicesFile = filepath.Join(t.TempDir(), "missing.csv")
	cfg.BackupDir = filepath.Join(t.TempDir(), "backups")

	summary, err := RunBackup(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Zero(t, summary.Total)
	assert.NoDirExists(t, cfg.BackupDir)
}

func TestRunBackup(t *testing.T) {
	setCredentials(t)

	metricsFile := filepath.Join(t.TempDir(), "netsnap.prom")
	cfg := testConfig(t, map[string]interface{}{"metrics_file": metricsFile})

	summary, err := Run(context.Background(), &CmdConfig{SubCmd: CmdBackup}, cfg, logger.NewTestLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.ByReason[models.KindUnsupportedPlatform])

	path := filepath.Join(cfg.BackupDir, time.Now().Format("20060102"), "R1_127.0.0.1.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hostname R1\n!\nend", string(data))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "netsnap_devices_total")
	assert.Contains(t, string(prom), `reason="unsupported_platform"`)
}

func TestRunInventory(t *testing.T) {
	setCredentials(t)

	cfg := testConfig(t, nil)

	summary, err := Run(context.Background(), &CmdConfig{SubCmd: CmdInventory}, cfg, logger.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)

	data, err := os.ReadFile(cfg.InventoryFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ip,hostname,device_type,software_image,version,running_image,hardware,serial,mac_address", lines[0])
	assert.Equal(t, "127.0.0.1,R1,cisco_ios,C2900-UNIVERSALK9-M,15.7(3)M3,,CISCO2911/K9,FTX1234ABCD,", lines[1])
	assert.NotContains(t, string(data), "hunter2")
}
