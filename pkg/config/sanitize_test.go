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
	"encoding/json"
	"testing"

	"github.com/carverauto/netsnap/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestSanitizeForLogRemovesSensitiveFields(t *testing.T) {
	creds := models.Credentials{
		Username: "automation",
		Password: "hunter2",
		Secret:   "enable-me",
	}

	data, err := SanitizeForLog(creds)
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &result))

	require.Equal(t, "automation", result["username"])
	require.NotContains(t, result, "password")
	require.NotContains(t, result, "secret")
}

func TestSanitizeForLogKeepsConfig(t *testing.T) {
	data, err := SanitizeForLog(models.DefaultConfig())
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &result))

	require.Equal(t, models.DefaultBackupDir, result["backup_dir"])
	require.Equal(t, "30s", result["connect_timeout"])
}
