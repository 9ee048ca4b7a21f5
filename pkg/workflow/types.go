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

package workflow

import (
	"time"

	"github.com/carverauto/netsnap/pkg/models"
)

// Mode names a top-level run.
type Mode string

const (
	ModeBackup    Mode = "backup"
	ModeInventory Mode = "inventory"
)

// Status is the outcome of one device.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
)

// Collection is everything gathered from one device before it is persisted.
type Collection struct {
	Record        *models.DeviceRecord
	Params        models.ConnectParams
	RunningConfig *models.CommandResult
	Facts         *models.CommandResult
}

// Result is the outcome of one device. Reason and Err are set only when the
// device was skipped; Hostname and Artifact only on success.
type Result struct {
	IP       string             `json:"ip"`
	Hostname string             `json:"hostname,omitempty"`
	Status   Status             `json:"status"`
	Reason   models.FailureKind `json:"reason,omitempty"`
	Err      error              `json:"-"`
	Artifact string             `json:"artifact,omitempty"`
	Elapsed  time.Duration      `json:"elapsed"`
}

// Summary aggregates the results of a run.
type Summary struct {
	RunID        string                     `json:"run_id"`
	Mode         Mode                       `json:"mode"`
	Total        int                        `json:"total"`
	Succeeded    int                        `json:"succeeded"`
	Skipped      int                        `json:"skipped"`
	NotAttempted int                        `json:"not_attempted"`
	ByReason     map[models.FailureKind]int `json:"by_reason"`
	Results      []Result                   `json:"results"`
	Duration     time.Duration              `json:"duration"`
}

func newSummary(runID string, mode Mode, total int) *Summary {
	return &Summary{
		RunID:    runID,
		Mode:     mode,
		Total:    total,
		ByReason: make(map[models.FailureKind]int),
		Results:  make([]Result, 0, total),
	}
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)

	switch r.Status {
	case StatusSuccess:
		s.Succeeded++
	case StatusSkipped:
		s.Skipped++
		s.ByReason[r.Reason]++
	}
}

// Processed is the number of devices that completed every step.
func (s *Summary) Processed() int {
	return s.Succeeded
}
