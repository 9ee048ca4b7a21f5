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

package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/platform"
	"golang.org/x/crypto/ssh"
)

const (
	readChunkSize = 4096

	// promptSettle is how long the output must stay quiet after a candidate
	// prompt before it is learned.
	promptSettle = 200 * time.Millisecond
)

// channelSession drives an interactive shell channel. A single pump
// goroutine copies channel output into chunks until the session is closed.
type channelSession struct {
	ip             string
	exitCommand    string
	commandTimeout time.Duration
	logger         logger.Logger

	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser

	chunks  chan []byte
	done    chan struct{}
	pumpErr error
	buf     bytes.Buffer

	prompt *prompt
	mode   byte

	closeOnce sync.Once
	closeErr  error
}

func startShell(client *ssh.Client, params *models.ConnectParams, log logger.Logger) (*channelSession, error) {
	sess, err := client.NewSession()
	if err != nil {
		return nil, err
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}

	if err = sess.RequestPty(terminalType, terminalHeight, terminalWidth, modes); err != nil {
		_ = sess.Close()

		return nil, fmt.Errorf("request pty: %w", err)
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		_ = sess.Close()

		return nil, err
	}

	stdout, err := sess.StdoutPipe()
	if err != nil {
		_ = sess.Close()

		return nil, err
	}

	if err = sess.Shell(); err != nil {
		_ = sess.Close()

		return nil, fmt.Errorf("start shell: %w", err)
	}

	s := &channelSession{
		ip:             params.IP,
		exitCommand:    exitCommand(params.Platform),
		commandTimeout: time.Duration(params.CommandTimeout),
		logger:         log,
		client:         client,
		session:        sess,
		stdin:          stdin,
		chunks:         make(chan []byte),
		done:           make(chan struct{}),
	}

	go s.pump(stdout)

	return s, nil
}

func exitCommand(p platform.Platform) string {
	if p == "" {
		return ""
	}

	return p.Profile().ExitCommand
}

func (s *channelSession) pump(r io.Reader) {
	defer close(s.chunks)

	b := make([]byte, readChunkSize)

	for {
		n, err := r.Read(b)
		if n > 0 {
			chunk := append([]byte(nil), b[:n]...)

			select {
			case s.chunks <- chunk:
			case <-s.done:
				return
			}
		}

		if err != nil {
			s.pumpErr = err

			return
		}
	}
}

// awaitPrompt waits for the first prompt after login and learns it. A
// "press any key" banner is acknowledged on the way. A candidate only counts
// once the device stops sending, so banner lines ending in > or # are skipped.
func (s *channelSession) awaitPrompt(ctx context.Context, remaining time.Duration, bounded bool) error {
	if bounded && remaining <= 0 {
		return ErrPromptTimeout
	}

	for {
		out, idx, err := s.readUntil(ctx, remaining, pressAnyKeyRe, anyPromptRe)
		if err != nil {
			return err
		}

		if idx == 0 {
			if err = s.write(""); err != nil {
				return err
			}

			continue
		}

		more, err := s.settle(ctx, out, promptSettle)
		if err != nil {
			return err
		}

		if more {
			continue
		}

		p, mode, ok := learnPrompt(out)
		if !ok {
			return ErrPromptNotFound
		}

		s.prompt = p
		s.mode = mode

		return nil
	}
}

// SendCommand implements Session.
func (s *channelSession) SendCommand(ctx context.Context, command string) (string, error) {
	if err := s.write(command); err != nil {
		return "", err
	}

	out, _, err := s.readUntil(ctx, s.commandTimeout, s.prompt.re)
	if err != nil {
		return "", fmt.Errorf("%q: %w", command, err)
	}

	return cleanOutput(out, command), nil
}

// Close implements Session.
func (s *channelSession) Close() error {
	s.closeOnce.Do(func() {
		if s.exitCommand != "" {
			_ = s.write(s.exitCommand)
		}

		close(s.done)

		_ = s.session.Close()
		s.closeErr = s.client.Close()

		s.logger.Debug().Str("ip", s.ip).Msg("Session closed")
	})

	return s.closeErr
}

func (s *channelSession) write(line string) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	if _, err := io.WriteString(s.stdin, line+"\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

// settle waits up to quiet for more output. When a chunk arrives, consumed is
// put back in front of it so the next read sees the whole text.
func (s *channelSession) settle(ctx context.Context, consumed string, quiet time.Duration) (bool, error) {
	timer := time.NewTimer(quiet)
	defer timer.Stop()

	select {
	case chunk, ok := <-s.chunks:
		if !ok {
			return false, nil
		}

		pending := append([]byte(consumed), s.buf.Bytes()...)
		pending = append(pending, chunk...)

		s.buf.Reset()
		s.buf.Write(pending)

		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// readUntil consumes output until one of res matches the end of the
// buffered text. It returns the consumed text and the index of the matching
// expression. A non-positive timeout waits for ctx only.
func (s *channelSession) readUntil(ctx context.Context, timeout time.Duration, res ...*regexp.Regexp) (string, int, error) {
	var expired <-chan time.Time

	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()

		expired = timer.C
	}

	for {
		data := s.buf.Bytes()

		for i, re := range res {
			if loc := re.FindIndex(data); loc != nil {
				out := string(data[:loc[1]])
				s.buf.Next(loc[1])

				return out, i, nil
			}
		}

		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				if s.pumpErr == nil {
					return "", -1, ErrSessionClosed
				}

				return "", -1, fmt.Errorf("%w: %w", ErrSessionClosed, s.pumpErr)
			}

			s.buf.Write(chunk)
		case <-expired:
			return "", -1, ErrPromptTimeout
		case <-ctx.Done():
			return "", -1, ctx.Err()
		}
	}
}
