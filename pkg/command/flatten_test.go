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

package command

import (
	"testing"

	"github.com/carverauto/netsnap/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestJoinSplitRoundTrip(t *testing.T) {
	lists := [][]string{
		{"FTX1"},
		{"FTX1", "FTX2"},
		{"WS-C3750X-48P", "WS-C3750X-24P", "C9300-48U"},
		{},
	}

	for _, l := range lists {
		assert.Equal(t, l, SplitValues(JoinValues(l)))
	}
}

func TestJoinSplitEmpty(t *testing.T) {
	assert.Equal(t, "", JoinValues(nil))
	assert.Equal(t, []string{}, SplitValues(""))
}

func TestFlattenFacts(t *testing.T) {
	flat := FlattenFacts(models.Facts{
		"hostname": "R1",
		"serial":   []string{"FTX1", "FTX2"},
		"hardware": []string{},
		"ignored":  42,
	})

	assert.Equal(t, map[string]string{
		"hostname": "R1",
		"serial":   "FTX1,FTX2",
		"hardware": "",
	}, flat)
}
