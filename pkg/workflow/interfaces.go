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

//go:generate mockgen -destination=mock_workflow.go -package=workflow github.com/carverauto/netsnap/pkg/workflow SessionOpener,CommandRunner,Persister,MetricsRecorder

package workflow

import (
	"context"
	"time"

	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/platform"
	"github.com/carverauto/netsnap/pkg/session"
)

// SessionOpener opens a privileged session on a device.
type SessionOpener interface {
	Open(ctx context.Context, params models.ConnectParams) (session.Session, error)
}

// CommandRunner runs one command on an open session.
type CommandRunner interface {
	Run(ctx context.Context, sess session.Session, p platform.Platform, command string, structured bool) (*models.CommandResult, error)
}

// Persister stores what was collected from a device and returns a
// description of the artifact written.
type Persister interface {
	Persist(ctx context.Context, c *Collection) (string, error)
}

// MetricsRecorder receives per-device and per-run observations.
type MetricsRecorder interface {
	ObserveDevice(mode, result, reason string, elapsed time.Duration)
	ObserveRun(mode string, elapsed time.Duration, finished time.Time)
}
