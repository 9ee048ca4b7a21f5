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

// Package metrics records per-run device outcomes for the node exporter
// textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultSkipped = "skipped"
)

// Recorder holds the metrics of one run in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	devicesTotal   *prometheus.CounterVec
	deviceDuration *prometheus.HistogramVec
	runDuration    *prometheus.GaugeVec
	lastRun        *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		devicesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netsnap_devices_total",
				Help: "Devices processed, by outcome and skip reason",
			},
			[]string{"mode", "result", "reason"},
		),
		deviceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netsnap_device_duration_seconds",
				Help:    "Time spent on a single device",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"mode"},
		),
		runDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "netsnap_run_duration_seconds",
				Help: "Duration of the last run",
			},
			[]string{"mode"},
		),
		lastRun: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "netsnap_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
			[]string{"mode"},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveDevice counts one device outcome. reason is empty on success.
func (r *Recorder) ObserveDevice(mode, result, reason string, elapsed time.Duration) {
	r.devicesTotal.WithLabelValues(mode, result, reason).Inc()
	r.deviceDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveRun records the duration and completion time of a run.
func (r *Recorder) ObserveRun(mode string, elapsed time.Duration, finished time.Time) {
	r.runDuration.WithLabelValues(mode).Set(elapsed.Seconds())
	r.lastRun.WithLabelValues(mode).Set(float64(finished.Unix()))
}

// WriteTextfile atomically writes the registry in text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
