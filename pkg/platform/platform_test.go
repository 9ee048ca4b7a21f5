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

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Platform
		wantErr bool
	}{
		{name: "cisco ios", input: "cisco_ios", want: CiscoIOS},
		{name: "aruba os", input: "aruba_os", want: ArubaOS},
		{name: "legacy aruba alias", input: "arubo_os", want: ArubaOS},
		{name: "case and whitespace", input: "  Cisco_IOS ", want: CiscoIOS},
		{name: "unknown", input: "juniper_junos", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedPlatform)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileCoversAllPlatforms(t *testing.T) {
	for _, p := range All() {
		profile := p.Profile()

		assert.NotEmpty(t, profile.EnableCommand, p)
		assert.NotEmpty(t, profile.PagingCommand, p)
		assert.NotEmpty(t, profile.RunningConfigCommand, p)
		assert.NotEmpty(t, profile.FactsCommand, p)
	}
}

func TestProfileCommands(t *testing.T) {
	assert.Equal(t, "show version", CiscoIOS.Profile().FactsCommand)
	assert.Equal(t, "terminal length 0", CiscoIOS.Profile().PagingCommand)
	assert.Equal(t, "show system", ArubaOS.Profile().FactsCommand)
	assert.Equal(t, "no page", ArubaOS.Profile().PagingCommand)
}

func TestProfilePanicsOnUnknownPlatform(t *testing.T) {
	assert.Panics(t, func() { _ = Platform("bogus").Profile() })
}
