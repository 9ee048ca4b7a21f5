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

// Package sessiontest runs an in-process SSH server that behaves like a
// network device CLI.
package sessiontest

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	gssh "github.com/gliderlabs/ssh"
)

const bannerPause = 50 * time.Millisecond

// Device describes how the emulated device answers.
type Device struct {
	Hostname string
	Username string
	Password string
	Secret   string

	// Privileged starts the session in privileged mode.
	Privileged bool
	// Echo repeats every received line before its output.
	Echo bool
	// PressAnyKey shows a banner that waits for a key before the prompt.
	PressAnyKey bool
	// Banner is written on its own shortly before the first prompt.
	Banner string
	// Responses maps a command line to its output. Lines use \n and are sent
	// with \r\n.
	Responses map[string]string
	// Unresponsive is a command that never gets output or a prompt back.
	Unresponsive string

	mu       sync.Mutex
	received []string
}

// Start serves d on a loopback port until the test ends and returns the port.
func Start(t testing.TB, d *Device) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := &gssh.Server{
		Handler: d.handle,
		PasswordHandler: func(ctx gssh.Context, password string) bool {
			return ctx.User() == d.Username && password == d.Password
		},
	}

	go func() { _ = srv.Serve(ln) }()

	t.Cleanup(func() { _ = srv.Close() })

	return ln.Addr().(*net.TCPAddr).Port
}

// Received returns every line the device read, in order.
func (d *Device) Received() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.received...)
}

func (d *Device) record(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.received = append(d.received, line)
}

func (d *Device) handle(s gssh.Session) {
	mode := ">"
	if d.Privileged {
		mode = "#"
	}

	write := func(text string) {
		_, _ = io.WriteString(s, strings.ReplaceAll(text, "\n", "\r\n"))
	}

	scanner := bufio.NewScanner(s)

	if d.PressAnyKey {
		write("\nPress any key to continue")

		if !scanner.Scan() {
			return
		}
	}

	if d.Banner != "" {
		write("\n" + d.Banner)
		time.Sleep(bannerPause)
	}

	write("\n" + d.Hostname + mode)

	awaitingSecret := false

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		d.record(line)

		if awaitingSecret {
			awaitingSecret = false

			if line == d.Secret {
				mode = "#"
				write("\n" + d.Hostname + mode)
			} else {
				write("\n% Access denied\n\n" + d.Hostname + mode)
			}

			continue
		}

		if d.Echo {
			write(line + "\n")
		}

		switch {
		case d.Unresponsive != "" && line == d.Unresponsive:
			continue
		case line == "exit":
			return
		case line == "enable" && mode == ">":
			write("Password: ")

			awaitingSecret = true

			continue
		case line == "enable":
		default:
			if out, ok := d.Responses[line]; ok {
				write(out + "\n")
			} else if line != "terminal length 0" && line != "no page" {
				write("% Invalid input detected at '^' marker.\n")
			}
		}

		write(d.Hostname + mode)
	}
}
