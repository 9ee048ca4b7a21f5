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

package cli

import (
	"fmt"
	"io"
)

// ShowHelp writes the usage message to w.
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `netsnap: network device configuration backup and inventory export
Usage:
  netsnap backup [options]
  netsnap inventory [options]
  netsnap version
  netsnap -help

Commands:
  backup       Save the running configuration of every device
  inventory    Append device facts to the inventory CSV
  version      Print the version and exit

Options for backup:
  -config string      path to a JSON or YAML config file
  -devices string     device list CSV (default "inventory.csv")
  -backup-dir string  backup root directory (default "network-backup")

Options for inventory:
  -config string      path to a JSON or YAML config file
  -devices string     device list CSV (default "inventory.csv")
  -out string         inventory CSV to append to (default "automation_inventory.csv")

Environment:
  DEVICE_USERNAME, DEVICE_PASSWORD, DEVICE_SECRET   credentials (required)
  CONFIG_SOURCE=env                                 read config from NETSNAP_* variables
  LOG_LEVEL, LOG_OUTPUT                             logging overrides

Examples:
  # Back up every device listed in inventory.csv
  DEVICE_USERNAME=admin DEVICE_PASSWORD=... DEVICE_SECRET=... netsnap backup

  # Export facts using a config file
  netsnap inventory -config /etc/netsnap/netsnap.yaml -out /srv/inventory.csv
`)
}
