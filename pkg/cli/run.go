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
	"context"
	"fmt"

	"github.com/carverauto/netsnap/pkg/backup"
	"github.com/carverauto/netsnap/pkg/command"
	"github.com/carverauto/netsnap/pkg/config"
	"github.com/carverauto/netsnap/pkg/devices"
	"github.com/carverauto/netsnap/pkg/export"
	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/metrics"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/session"
	"github.com/carverauto/netsnap/pkg/workflow"
)

// LoadConfig loads the process configuration named by the command line and
// applies the path flags on top of it.
func LoadConfig(ctx context.Context, cmd *CmdConfig, log logger.Logger) (*models.Config, error) {
	cfg := &models.Config{}

	if err := config.NewConfig(log).LoadAndValidate(ctx, cmd.ConfigFile, cfg); err != nil {
		return nil, err
	}

	if cmd.DevicesFile != "" {
		cfg.DevicesFile = cmd.DevicesFile
	}

	if cmd.BackupDir != "" {
		cfg.BackupDir = cmd.BackupDir
	}

	if cmd.OutputFile != "" {
		cfg.InventoryFile = cmd.OutputFile
	}

	if data, err := config.SanitizeForLog(cfg); err == nil {
		log.Debug().RawJSON("config", data).Msg("Configuration loaded")
	}

	return cfg, nil
}

// Run starts the run selected by cmd.SubCmd.
func Run(ctx context.Context, cmd *CmdConfig, cfg *models.Config, log logger.Logger) (*workflow.Summary, error) {
	switch cmd.SubCmd {
	case CmdBackup:
		return RunBackup(ctx, cfg, log)
	case CmdInventory:
		return RunInventory(ctx, cfg, log)
	case "":
		return nil, errMissingCommand
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedMode, cmd.SubCmd)
	}
}

// RunBackup saves the running configuration of every listed device under
// cfg.BackupDir. Only a configuration error is returned; device failures
// are in the summary.
func RunBackup(ctx context.Context, cfg *models.Config, log logger.Logger) (*workflow.Summary, error) {
	records, err := loadDevices(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	persister := workflow.NewBackupPersister(backup.NewStore(cfg.BackupDir, log))

	return runWorkflow(ctx, workflow.ModeBackup, cfg, records, persister, log), nil
}

// RunInventory appends the facts of every listed device to
// cfg.InventoryFile.
func RunInventory(ctx context.Context, cfg *models.Config, log logger.Logger) (*workflow.Summary, error) {
	records, err := loadDevices(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	w, err := export.Open(cfg.InventoryFile, log)
	if err != nil {
		return nil, err
	}

	defer func() {
		if cerr := w.Close(); cerr != nil {
			log.Error().Err(cerr).Str("path", w.Path()).Msg("Failed to close inventory file")
		}
	}()

	return runWorkflow(ctx, workflow.ModeInventory, cfg, records, workflow.NewInventoryPersister(w), log), nil
}

// loadDevices reads the credentials, which are required, and the device
// list, which degrades to an empty run when it cannot be read.
func loadDevices(ctx context.Context, cfg *models.Config, log logger.Logger) ([]*models.DeviceRecord, error) {
	creds, err := config.NewConfig(log).LoadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	source := devices.NewSource(cfg.DevicesFile, devices.Options{
		Credentials:    *creds,
		ConnectTimeout: cfg.ConnectTimeout,
		AuthTimeout:    cfg.AuthTimeout,
	}, log)

	records, err := source.Load()
	if err != nil {
		log.Error().
			Err(err).
			Str("path", cfg.DevicesFile).
			Msg("Failed to load device list, nothing to process")

		return nil, nil
	}

	return records, nil
}

func runWorkflow(
	ctx context.Context,
	mode workflow.Mode,
	cfg *models.Config,
	records []*models.DeviceRecord,
	persister workflow.Persister,
	log logger.Logger,
) *workflow.Summary {
	recorder := metrics.NewRecorder()

	orch := workflow.NewOrchestrator(workflow.Options{
		Mode:           mode,
		SSHPort:        cfg.SSHPort,
		CommandTimeout: cfg.CommandTimeout,
	}, session.NewManager(log), command.NewExecutor(log), persister, recorder, log)

	summary := orch.Run(ctx, records)

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("Failed to write metrics textfile")
		}
	}

	return summary
}
