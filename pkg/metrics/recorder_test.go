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

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDevice(t *testing.T) {
	r := NewRecorder()

	r.ObserveDevice("backup", ResultSuccess, "", time.Second)
	r.ObserveDevice("backup", ResultSuccess, "", 2*time.Second)
	r.ObserveDevice("backup", ResultSkipped, "connection", 30*time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(r.devicesTotal.WithLabelValues("backup", ResultSuccess, "")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.devicesTotal.WithLabelValues("backup", ResultSkipped, "connection")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.deviceDuration))
}

func TestObserveRun(t *testing.T) {
	r := NewRecorder()
	finished := time.Unix(1700000000, 0)

	r.ObserveRun("inventory", 90*time.Second, finished)

	assert.InDelta(t, 90, testutil.ToFloat64(r.runDuration.WithLabelValues("inventory")), 0)
	assert.InDelta(t, 1700000000, testutil.ToFloat64(r.lastRun.WithLabelValues("inventory")), 0)
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveDevice("backup", ResultSkipped, "unsupported_platform", time.Millisecond)
	r.ObserveRun("backup", time.Second, time.Now())

	path := filepath.Join(t.TempDir(), "netsnap.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `netsnap_devices_total{mode="backup",reason="unsupported_platform",result="skipped"} 1`)
	assert.Contains(t, string(data), "netsnap_run_duration_seconds")
	assert.Contains(t, string(data), "netsnap_last_run_timestamp_seconds")
}
