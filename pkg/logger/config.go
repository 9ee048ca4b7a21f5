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

package logger

import (
	"os"
	"strconv"
	"strings"
)

// DefaultConfig returns an info-level JSON logger on stdout, overridden by
// LOG_LEVEL, DEBUG, LOG_OUTPUT and LOG_TIME_FORMAT.
func DefaultConfig() *Config {
	config := &Config{
		Level:  "info",
		Output: "stdout",
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Level = v
	}

	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		config.Output = v
	}

	config.TimeFormat = os.Getenv("LOG_TIME_FORMAT")
	config.Debug = envBool("DEBUG")

	return config
}

func envBool(key string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))

	switch value {
	case "yes", "on":
		return true
	}

	b, err := strconv.ParseBool(value)

	return err == nil && b
}
