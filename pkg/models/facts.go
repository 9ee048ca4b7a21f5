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

// Facts is one structured record extracted from command output. Keys are
// lower-case fact names; values are either string or []string.
type Facts map[string]interface{}

// Str returns the fact as a single string. For list values the first element
// is returned.
func (f Facts) Str(key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}

	return ""
}

// CommandResult is the outcome of one command on a session.
type CommandResult struct {
	Command string  `json:"command"`
	Raw     string  `json:"raw"`
	Records []Facts `json:"records,omitempty"`
}

// First returns the first structured record, or nil for unstructured results.
func (r *CommandResult) First() Facts {
	if r == nil || len(r.Records) == 0 {
		return nil
	}

	return r.Records[0]
}
