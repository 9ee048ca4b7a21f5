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
	"net"
	"strconv"

	"github.com/carverauto/netsnap/pkg/platform"
)

// DeviceRecord is one row of the device list joined with the shared
// credentials and timeouts of the run.
type DeviceRecord struct {
	IP             string   `json:"ip"`
	Username       string   `json:"username"`
	Password       string   `json:"password" sensitive:"true"`
	Secret         string   `json:"secret" sensitive:"true"`
	DeviceType     string   `json:"device_type"`
	DeviceRole     string   `json:"device_role"`
	Location       string   `json:"location"`
	ConnectTimeout Duration `json:"connect_timeout"`
	AuthTimeout    Duration `json:"auth_timeout"`
	Hostname       string   `json:"hostname,omitempty"`
}

// ConnectParams is a DeviceRecord reduced to what a session needs: role and
// location are not carried over.
type ConnectParams struct {
	Platform       platform.Platform `json:"device_type"`
	IP             string            `json:"ip"`
	Port           int               `json:"port"`
	Username       string            `json:"username"`
	Password       string            `json:"password" sensitive:"true"`
	Secret         string            `json:"secret" sensitive:"true"`
	ConnectTimeout Duration          `json:"connect_timeout"`
	AuthTimeout    Duration          `json:"auth_timeout"`
	CommandTimeout Duration          `json:"command_timeout"`
	Hostname       string            `json:"hostname,omitempty"`
}

// ConnectParams derives the session parameters for the record.
func (d *DeviceRecord) ConnectParams(p platform.Platform, port int, commandTimeout Duration) ConnectParams {
	return ConnectParams{
		Platform:       p,
		IP:             d.IP,
		Port:           port,
		Username:       d.Username,
		Password:       d.Password,
		Secret:         d.Secret,
		ConnectTimeout: d.ConnectTimeout,
		AuthTimeout:    d.AuthTimeout,
		CommandTimeout: commandTimeout,
		Hostname:       d.Hostname,
	}
}

// Address returns the host:port to dial.
func (c *ConnectParams) Address() string {
	port := c.Port
	if port == 0 {
		port = DefaultSSHPort
	}

	return net.JoinHostPort(c.IP, strconv.Itoa(port))
}
