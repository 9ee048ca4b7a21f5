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
	"testing"
	"time"

	"github.com/carverauto/netsnap/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSensitiveFields(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected map[string]interface{}
		wantErr  bool
	}{
		{
			name: "credentials drop password and secret",
			input: Credentials{
				Username: "automation",
				Password: "hunter2",
				Secret:   "enable-me",
			},
			expected: map[string]interface{}{
				"username": "automation",
			},
		},
		{
			name: "struct with no sensitive fields",
			input: struct {
				Name   string `json:"name"`
				Value  int    `json:"value"`
				Active bool   `json:"active"`
			}{
				Name:   "test",
				Value:  42,
				Active: true,
			},
			expected: map[string]interface{}{
				"name":   "test",
				"value":  int(42),
				"active": true,
			},
		},
		{
			name: "nested struct with sensitive fields",
			input: struct {
				Name string `json:"name"`
				Auth struct {
					Username string `json:"username"`
					Password string `json:"password" sensitive:"true"`
				} `json:"auth"`
			}{
				Name: "device",
				Auth: struct {
					Username string `json:"username"`
					Password string `json:"password" sensitive:"true"`
				}{
					Username: "admin",
					Password: "secret",
				},
			},
			expected: map[string]interface{}{
				"name": "device",
				"auth": map[string]interface{}{
					"username": "admin",
				},
			},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: map[string]interface{}{},
		},
		{
			name:    "non-struct input",
			input:   "not a struct",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FilterSensitiveFields(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPublicFieldsOfConnectParams(t *testing.T) {
	params := &ConnectParams{
		Platform:       platform.CiscoIOS,
		IP:             "10.0.0.1",
		Port:           22,
		Username:       "automation",
		Password:       "hunter2",
		Secret:         "enable-me",
		ConnectTimeout: Duration(30 * time.Second),
		AuthTimeout:    Duration(30 * time.Second),
		Hostname:       "R1",
	}

	fields := PublicFields(params)

	assert.Equal(t, "10.0.0.1", fields["ip"])
	assert.Equal(t, "cisco_ios", fields["device_type"])
	assert.Equal(t, "R1", fields["hostname"])
	assert.Equal(t, "22", fields["port"])
	assert.Equal(t, "30s", fields["connect_timeout"])
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "secret")
}

func TestConnectParamsStripsRoleAndLocation(t *testing.T) {
	record := &DeviceRecord{
		IP:             "10.0.0.1",
		Username:       "automation",
		Password:       "pw",
		Secret:         "secret",
		DeviceType:     "cisco_ios",
		DeviceRole:     "core",
		Location:       "dc1",
		ConnectTimeout: DefaultConnectTimeout,
		AuthTimeout:    DefaultAuthTimeout,
	}

	params := record.ConnectParams(platform.CiscoIOS, 2222, Duration(time.Minute))
	fields := PublicFields(&params)

	assert.NotContains(t, fields, "device_role")
	assert.NotContains(t, fields, "location")
	assert.Equal(t, "10.0.0.1:2222", params.Address())
	assert.Equal(t, Duration(time.Minute), params.CommandTimeout)
}

func TestAddressDefaultsPort(t *testing.T) {
	params := ConnectParams{IP: "2001:db8::1"}

	assert.Equal(t, "[2001:db8::1]:22", params.Address())
}
