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

// Package session opens privileged command-line sessions on network devices
// over SSH.
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/platform"
	"golang.org/x/crypto/ssh"
)

const (
	terminalType   = "vt100"
	terminalWidth  = 511
	terminalHeight = 0
)

// Manager opens device sessions.
type Manager struct {
	logger logger.Logger
}

// NewManager returns a Manager logging through log.
func NewManager(log logger.Logger) *Manager {
	return &Manager{logger: log}
}

// Open dials the device, authenticates, starts an interactive shell, elevates
// to privileged mode and disables paging. Every failure is a connection error
// naming the stage that failed; nothing is retried.
func (m *Manager) Open(ctx context.Context, params models.ConnectParams) (Session, error) {
	p, err := platform.Parse(string(params.Platform))
	if err != nil {
		return nil, models.NewDeviceError(models.KindUnsupportedPlatform, params.IP, "open", err)
	}

	addr := params.Address()
	profile := p.Profile()

	fail := func(op string, err error) error {
		return models.NewDeviceError(models.KindConnection, params.IP, op, err)
	}

	dialer := net.Dialer{Timeout: time.Duration(params.ConnectTimeout)}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fail("dial", err)
	}

	authTimeout := time.Duration(params.AuthTimeout)

	var authDeadline time.Time
	if authTimeout > 0 {
		authDeadline = time.Now().Add(authTimeout)
	}

	if err = conn.SetDeadline(authDeadline); err != nil {
		_ = conn.Close()

		return nil, fail("dial", err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig(&params))
	if err != nil {
		_ = conn.Close()

		return nil, fail("authenticate", err)
	}

	client := ssh.NewClient(clientConn, chans, reqs)

	s, err := startShell(client, &params, m.logger)
	if err != nil {
		_ = client.Close()

		return nil, fail("shell", err)
	}

	if err = conn.SetDeadline(time.Time{}); err != nil {
		_ = s.Close()

		return nil, fail("shell", err)
	}

	m.logger.Debug().Str("ip", params.IP).Msg("Shell started")

	if err = s.awaitPrompt(ctx, time.Until(authDeadline), authTimeout > 0); err != nil {
		_ = s.Close()

		return nil, fail("shell", err)
	}

	if err = s.enable(ctx, profile, params.Secret, authTimeout); err != nil {
		_ = s.Close()

		return nil, fail("enable", err)
	}

	if _, err = s.SendCommand(ctx, profile.PagingCommand); err != nil {
		_ = s.Close()

		return nil, fail("paging", err)
	}

	m.logger.Debug().
		Str("ip", params.IP).
		Str("prompt", s.prompt.base).
		Msg("Session ready")

	return s, nil
}

func clientConfig(params *models.ConnectParams) *ssh.ClientConfig {
	password := params.Password

	return &ssh.ClientConfig{
		User: params.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}

				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // device host keys are not verified
		Timeout:         time.Duration(params.ConnectTimeout),
	}
}

// enable moves a user exec session into privileged exec.
func (s *channelSession) enable(ctx context.Context, profile platform.Profile, secret string, timeout time.Duration) error {
	if s.mode == '#' {
		return nil
	}

	if err := s.write(profile.EnableCommand); err != nil {
		return err
	}

	out, idx, err := s.readUntil(ctx, timeout, passwordRe, s.prompt.re)
	if err != nil {
		return err
	}

	if idx == 0 {
		if err = s.write(secret); err != nil {
			return err
		}

		out, idx, err = s.readUntil(ctx, timeout, passwordRe, s.prompt.re)
		if err != nil {
			return err
		}

		if idx == 0 {
			return fmt.Errorf("%w: secret rejected", ErrEnableFailed)
		}
	}

	s.mode = promptMode(out)
	if s.mode != '#' {
		return fmt.Errorf("%w: prompt still in user mode", ErrEnableFailed)
	}

	return nil
}

// IsTimeout reports whether err came from a prompt or dial timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, ErrPromptTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
