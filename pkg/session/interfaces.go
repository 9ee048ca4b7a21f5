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

//go:generate mockgen -destination=mock_session.go -package=session github.com/carverauto/netsnap/pkg/session Session

package session

import "context"

// Session is an open, privileged command-line session on one device.
type Session interface {
	// SendCommand runs command and returns its output without the echoed
	// command line or the trailing prompt.
	SendCommand(ctx context.Context, command string) (string, error)
	// Close ends the session. It is safe to call more than once.
	Close() error
}
