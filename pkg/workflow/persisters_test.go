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

package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carverauto/netsnap/pkg/backup"
	"github.com/carverauto/netsnap/pkg/export"
	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collection() *Collection {
	rec := device("10.0.0.1", "cisco_ios")
	rec.Hostname = "R1"

	return &Collection{
		Record:        rec,
		Params:        rec.ConnectParams(platform.CiscoIOS, 22, 0),
		RunningConfig: configResult(),
		Facts:         factsResult("R1"),
	}
}

func TestMergeRecord(t *testing.T) {
	merged := MergeRecord(collection())

	assert.Equal(t, "10.0.0.1", merged["ip"])
	assert.Equal(t, "R1", merged["hostname"])
	assert.Equal(t, "cisco_ios", merged["device_type"])
	assert.Equal(t, "automation", merged["username"])
	assert.Equal(t, "X9K", merged["hardware"])

	for _, key := range []string{"password", "secret", "device_role", "location"} {
		assert.NotContains(t, merged, key)
	}

	for _, value := range merged {
		assert.NotEqual(t, "hunter2", value)
		assert.NotEqual(t, "enable-me", value)
	}
}

func TestMergeRecordFactsWin(t *testing.T) {
	c := collection()
	c.Facts.Records[0]["ip"] = "192.0.2.1"

	assert.Equal(t, "192.0.2.1", MergeRecord(c)["ip"])
}

func TestMergeRecordKeepsSourceDeviceType(t *testing.T) {
	rec := device("10.0.0.2", "arubo_os")
	rec.Hostname = "SW1"

	c := &Collection{
		Record: rec,
		Params: rec.ConnectParams(platform.ArubaOS, 22, 0),
		Facts:  factsResult("SW1"),
	}

	merged := MergeRecord(c)
	assert.Equal(t, "arubo_os", merged["device_type"])
	assert.Equal(t, "10.0.0.2", merged["ip"])
}

func TestMergeRecordWithoutFacts(t *testing.T) {
	c := collection()
	c.Facts = &models.CommandResult{Command: "show version"}

	merged := MergeRecord(c)
	assert.Equal(t, "10.0.0.1", merged["ip"])
	assert.NotContains(t, merged, "hardware")
}

func TestBackupPersister(t *testing.T) {
	root := t.TempDir()
	now := func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }
	store := backup.NewStoreWithClock(root, now, logger.NewTestLogger())

	path, err := NewBackupPersister(store).Persist(context.Background(), collection())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "20240305", "R1_10.0.0.1.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hostname R1\n!", string(data))
}

func TestInventoryPersister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")

	w, err := export.Open(path, logger.NewTestLogger())
	require.NoError(t, err)

	artifact, err := NewInventoryPersister(w).Persist(context.Background(), collection())
	require.NoError(t, err)
	assert.Equal(t, path, artifact)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "10.0.0.1,R1,cisco_ios,,,,X9K,,", lines[1])
	assert.NotContains(t, string(data), "hunter2")
}

type failingWriter struct{}

func (failingWriter) Append(map[string]string) error { return os.ErrClosed }

func (failingWriter) Path() string { return "inventory.csv" }

func TestInventoryPersisterAppendFailure(t *testing.T) {
	artifact, err := NewInventoryPersister(failingWriter{}).Persist(context.Background(), collection())

	require.ErrorIs(t, err, os.ErrClosed)
	assert.Empty(t, artifact)
}
