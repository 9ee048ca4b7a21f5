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

// Package platform describes the device platforms netsnap can talk to and the
// command sequence used for each of them.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedPlatform is returned by Parse for device types netsnap does not know.
var ErrUnsupportedPlatform = errors.New("unsupported device platform")

// Platform is the device_type tag of a device record.
type Platform string

const (
	CiscoIOS Platform = "cisco_ios"
	ArubaOS  Platform = "aruba_os"
)

// aliases maps historical device_type spellings found in existing device
// lists onto their canonical platform.
//
//nolint:gochecknoglobals // read-only lookup table
var aliases = map[string]Platform{
	"arubo_os": ArubaOS,
}

// Profile is the command sequence used against one platform.
type Profile struct {
	EnableCommand        string
	PagingCommand        string
	RunningConfigCommand string
	FactsCommand         string
	ExitCommand          string
}

// All returns every supported platform.
func All() []Platform {
	return []Platform{CiscoIOS, ArubaOS}
}

// Parse resolves a device_type value to a Platform.
func Parse(deviceType string) (Platform, error) {
	tag := strings.ToLower(strings.TrimSpace(deviceType))

	for _, p := range All() {
		if string(p) == tag {
			return p, nil
		}
	}

	if p, ok := aliases[tag]; ok {
		return p, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, deviceType)
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// Profile returns the command sequence for the platform. It panics for values
// that did not come from Parse or the declared constants.
func (p Platform) Profile() Profile {
	switch p {
	case CiscoIOS:
		return Profile{
			EnableCommand:        "enable",
			PagingCommand:        "terminal length 0",
			RunningConfigCommand: "show running-config",
			FactsCommand:         "show version",
			ExitCommand:          "exit",
		}
	case ArubaOS:
		// ArubaOS-Switch "show version" prints only the image and boot ROM.
		// The system name, serial number and base MAC needed for the hostname
		// and inventory columns come from "show system".
		return Profile{
			EnableCommand:        "enable",
			PagingCommand:        "no page",
			RunningConfigCommand: "show running-config",
			FactsCommand:         "show system",
			ExitCommand:          "exit",
		}
	}

	panic(fmt.Sprintf("platform: no profile for %q", string(p)))
}
