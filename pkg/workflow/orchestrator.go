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

// Package workflow runs the per-device backup and inventory pipelines.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/platform"
	"github.com/carverauto/netsnap/pkg/session"
	"github.com/google/uuid"
)

var (
	errHostnameMissing = errors.New("facts carry no hostname")
	errPanic           = errors.New("device pipeline panicked")
)

// Options configure an Orchestrator.
type Options struct {
	Mode           Mode
	SSHPort        int
	CommandTimeout models.Duration
}

// Orchestrator processes devices one at a time. A failing device is skipped
// and never stops the batch.
type Orchestrator struct {
	opts      Options
	opener    SessionOpener
	runner    CommandRunner
	persister Persister
	metrics   MetricsRecorder
	logger    logger.Logger
	now       func() time.Time
	newRunID  func() string
}

// NewOrchestrator wires an Orchestrator. metrics may be nil.
func NewOrchestrator(
	opts Options,
	opener SessionOpener,
	runner CommandRunner,
	persister Persister,
	metrics MetricsRecorder,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		opts:      opts,
		opener:    opener,
		runner:    runner,
		persister: persister,
		metrics:   metrics,
		logger:    log,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// Run processes records in order and returns the run summary. Cancelling ctx
// stops the batch before the next device; devices not reached are counted
// as not attempted.
func (o *Orchestrator) Run(ctx context.Context, records []*models.DeviceRecord) *Summary {
	summary := newSummary(o.newRunID(), o.opts.Mode, len(records))
	start := o.now()

	o.logger.Info().
		Str("run_id", summary.RunID).
		Str("mode", string(o.opts.Mode)).
		Int("devices", len(records)).
		Msg("Run started")

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			o.logger.Warn().
				Str("run_id", summary.RunID).
				Err(err).
				Msg("Run cancelled")

			break
		}

		res := o.ProcessDevice(ctx, rec)
		summary.add(res)

		o.observeDevice(&res)
		o.logResult(summary.RunID, &res)
	}

	finished := o.now()
	summary.Duration = finished.Sub(start)
	summary.NotAttempted = summary.Total - len(summary.Results)

	if o.metrics != nil {
		o.metrics.ObserveRun(string(o.opts.Mode), summary.Duration, finished)
	}

	event := o.logger.Info().
		Str("run_id", summary.RunID).
		Str("mode", string(o.opts.Mode)).
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("skipped", summary.Skipped).
		Int("not_attempted", summary.NotAttempted).
		Dur("duration", summary.Duration)

	for reason, n := range summary.ByReason {
		event = event.Int("skipped_"+string(reason), n)
	}

	event.Msg("Run finished")

	return summary
}

// ProcessDevice runs the pipeline for one device. Every error, and any
// panic, is turned into a skipped result.
func (o *Orchestrator) ProcessDevice(ctx context.Context, rec *models.DeviceRecord) (res Result) {
	start := o.now()

	defer func() {
		if r := recover(); r != nil {
			res = skipped(rec.IP, models.KindInternal, "process", fmt.Errorf("%w: %v", errPanic, r))
		}

		res.Elapsed = o.now().Sub(start)
	}()

	return o.pipeline(ctx, rec)
}

func (o *Orchestrator) pipeline(ctx context.Context, rec *models.DeviceRecord) Result {
	p, err := platform.Parse(rec.DeviceType)
	if err != nil {
		return skipped(rec.IP, models.KindUnsupportedPlatform, "classify", err)
	}

	params := rec.ConnectParams(p, o.opts.SSHPort, o.opts.CommandTimeout)

	sess, err := o.opener.Open(ctx, params)
	if err != nil {
		return skipped(rec.IP, models.KindConnection, "connect", err)
	}

	defer func() {
		if cerr := sess.Close(); cerr != nil {
			o.logger.Debug().Str("ip", rec.IP).Err(cerr).Msg("Session close failed")
		}
	}()

	profile := p.Profile()

	runningConfig, err := o.runner.Run(ctx, sess, p, profile.RunningConfigCommand, false)
	if err != nil {
		return skipped(rec.IP, models.KindCommand, "collect running config", err)
	}

	facts, err := o.runner.Run(ctx, sess, p, profile.FactsCommand, true)
	if err != nil {
		return skipped(rec.IP, models.KindCommand, "collect facts", err)
	}

	hostname := strings.TrimSpace(facts.First().Str("hostname"))
	if hostname == "" {
		return skipped(rec.IP, models.KindIdentity, "derive identity", errHostnameMissing)
	}

	rec.Hostname = hostname
	params.Hostname = hostname

	artifact, err := o.persister.Persist(ctx, &Collection{
		Record:        rec,
		Params:        params,
		RunningConfig: runningConfig,
		Facts:         facts,
	})
	if err != nil {
		return skipped(rec.IP, models.KindPersistence, "persist", err)
	}

	return Result{
		IP:       rec.IP,
		Hostname: hostname,
		Status:   StatusSuccess,
		Artifact: artifact,
	}
}

// skipped classifies err by the stage it happened in. A DeviceError of the
// same kind is kept as is so its original operation survives.
func skipped(ip string, kind models.FailureKind, op string, err error) Result {
	var de *models.DeviceError
	if !errors.As(err, &de) || de.Kind != kind {
		de = models.NewDeviceError(kind, ip, op, err)
	} else if de.IP == "" {
		de.IP = ip
	}

	return Result{
		IP:     ip,
		Status: StatusSkipped,
		Reason: kind,
		Err:    de,
	}
}

func (o *Orchestrator) observeDevice(res *Result) {
	if o.metrics == nil {
		return
	}

	o.metrics.ObserveDevice(string(o.opts.Mode), string(res.Status), string(res.Reason), res.Elapsed)
}

func (o *Orchestrator) logResult(runID string, res *Result) {
	if res.Status == StatusSuccess {
		o.logger.Info().
			Str("run_id", runID).
			Str("ip", res.IP).
			Str("hostname", res.Hostname).
			Str("artifact", res.Artifact).
			Dur("elapsed", res.Elapsed).
			Msg("Device processed")

		return
	}

	o.logger.Warn().
		Str("run_id", runID).
		Str("ip", res.IP).
		Str("reason", string(res.Reason)).
		Bool("timeout", session.IsTimeout(res.Err)).
		Err(res.Err).
		Msg("Device skipped")
}
