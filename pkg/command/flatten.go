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
	"strings"

	"github.com/carverauto/netsnap/pkg/models"
)

// Separator joins list-valued facts into a single column.
const Separator = ","

// JoinValues joins values with Separator. JoinValues(nil) is "".
func JoinValues(values []string) string {
	return strings.Join(values, Separator)
}

// SplitValues reverses JoinValues for values that are non-empty and free of
// Separator. SplitValues("") is an empty, non-nil slice.
func SplitValues(joined string) []string {
	if joined == "" {
		return []string{}
	}

	return strings.Split(joined, Separator)
}

// FlattenFacts renders every fact as a string, joining list values.
func FlattenFacts(facts models.Facts) map[string]string {
	flat := make(map[string]string, len(facts))

	for key, value := range facts {
		switch v := value.(type) {
		case string:
			flat[key] = v
		case []string:
			flat[key] = JoinValues(v)
		}
	}

	return flat
}
