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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/netsnap/pkg/cli"
	"github.com/carverauto/netsnap/pkg/lifecycle"
	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/version"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load configuration")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cmd, err := cli.ParseFlags()
	if err != nil {
		cli.ShowHelp(os.Stderr)

		return err
	}

	if cmd.Help {
		cli.ShowHelp(os.Stdout)

		return nil
	}

	if cmd.SubCmd == cli.CmdVersion {
		fmt.Println(version.GetFullVersion())

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap, err := lifecycle.CreateComponentLogger("netsnap", logger.DefaultConfig())
	if err != nil {
		return err
	}

	cfg, err := cli.LoadConfig(ctx, cmd, bootstrap)
	if err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	if err := lifecycle.InitializeLogger(cfg.Logging); err != nil {
		return err
	}

	runLogger, err := lifecycle.CreateComponentLogger(cmd.SubCmd, cfg.Logging)
	if err != nil {
		return err
	}

	runLogger.Info().
		Str("version", version.GetFullVersion()).
		Str("devices_file", cfg.DevicesFile).
		Msg("Starting netsnap")

	_, err = cli.Run(ctx, cmd, cfg, runLogger)

	return err
}
