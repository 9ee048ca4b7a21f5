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

package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return rows
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{
		"ip", "hostname", "device_type", "software_image", "version",
		"running_image", "hardware", "serial", "mac_address",
	}, Columns())
}

func TestProjectFillsMissingColumns(t *testing.T) {
	rec := Project(map[string]string{
		"ip":          "10.0.0.1",
		"hostname":    "R1",
		"device_type": "cisco_ios",
		"hardware":    "X9K",
		"uptime":      "1 week",
		"device_role": "core",
	})

	assert.Equal(t, Record{
		IP:         "10.0.0.1",
		Hostname:   "R1",
		DeviceType: "cisco_ios",
		Hardware:   "X9K",
	}, rec)
}

func TestOpenWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "automation_inventory.csv")

	w, err := Open(path, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, w.Append(map[string]string{
		"ip":          "10.0.0.1",
		"hostname":    "R1",
		"device_type": "cisco_ios",
		"hardware":    "X9K",
	}))
	require.NoError(t, w.Close())

	w, err = Open(path, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, w.Append(map[string]string{"ip": "10.0.0.2", "hostname": "R2"}))
	require.NoError(t, w.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns(), rows[0])
	assert.Equal(t, []string{"10.0.0.1", "R1", "cisco_ios", "", "", "", "X9K", "", ""}, rows[1])
	assert.Equal(t, "10.0.0.2", rows[2][0])

	for _, row := range rows {
		assert.Len(t, row, 9)
	}
}

func TestScenarioRowText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")

	w, err := Open(path, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, w.Append(map[string]string{
		"ip":          "10.0.0.1",
		"hostname":    "R1",
		"device_type": "cisco_ios",
		"hardware":    "X9K",
	}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ip,hostname,device_type,software_image,version,running_image,hardware,serial,mac_address", lines[0])
	assert.Equal(t, "10.0.0.1,R1,cisco_ios,,,,X9K,,", lines[1])
}

func TestAppendQuotesJoinedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")

	w, err := Open(path, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, w.Append(map[string]string{"ip": "10.0.0.5", "serial": "FTX1,FTX2"}))
	require.NoError(t, w.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "FTX1,FTX2", rows[1][7])
}

func TestOpenExistingHeaderlessFileKeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, []byte("10.0.0.9,R9,cisco_ios,,,,,,\n"), 0o600))

	w, err := Open(path, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rows := readRows(t, path)
	assert.Len(t, rows, 1)
}

func TestOpenFailureIsPersistenceError(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir, logger.NewTestLogger())
	require.Error(t, err)

	assert.ErrorIs(t, err, models.ErrPersistence)
}
