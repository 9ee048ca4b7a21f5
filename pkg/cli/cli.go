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

// Package cli parses the netsnap command line and wires the backup and
// inventory runs.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const (
	CmdBackup    = "backup"
	CmdInventory = "inventory"
	CmdVersion   = "version"
)

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

// BackupHandler handles flags for the backup subcommand.
type BackupHandler struct{}

// Parse processes the command-line arguments for the backup subcommand.
func (BackupHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(CmdBackup)
	configFile := fs.String("config", "", "path to a JSON or YAML config file")
	devicesFile := fs.String("devices", "", "device list CSV")
	backupDir := fs.String("backup-dir", "", "backup root directory")

	if err := parse(fs, args); err != nil {
		return fmt.Errorf("parsing backup flags: %w", err)
	}

	cfg.ConfigFile = *configFile
	cfg.DevicesFile = *devicesFile
	cfg.BackupDir = *backupDir

	return nil
}

// InventoryHandler handles flags for the inventory subcommand.
type InventoryHandler struct{}

// Parse processes the command-line arguments for the inventory subcommand.
func (InventoryHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(CmdInventory)
	configFile := fs.String("config", "", "path to a JSON or YAML config file")
	devicesFile := fs.String("devices", "", "device list CSV")
	outputFile := fs.String("out", "", "inventory CSV to append to")

	if err := parse(fs, args); err != nil {
		return fmt.Errorf("parsing inventory flags: %w", err)
	}

	cfg.ConfigFile = *configFile
	cfg.DevicesFile = *devicesFile
	cfg.OutputFile = *outputFile

	return nil
}

// VersionHandler handles the version subcommand, which takes no flags.
type VersionHandler struct{}

// Parse rejects any argument.
func (VersionHandler) Parse(args []string, _ *CmdConfig) error {
	return parse(newFlagSet(CmdVersion), args)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %v", errUnexpectedArgs, fs.Args())
	}

	return nil
}

// ParseFlags parses the process arguments.
func ParseFlags() (*CmdConfig, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args, which exclude the program name. No command at all
// is treated as a request for help.
func ParseArgs(args []string) (*CmdConfig, error) {
	fs := newFlagSet("netsnap")
	help := fs.Bool("help", false, "show help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &CmdConfig{Help: true}, nil
		}

		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := &CmdConfig{
		Help: *help,
		Args: fs.Args(),
	}

	if cfg.Help || len(cfg.Args) == 0 {
		cfg.Help = true

		return cfg, nil
	}

	cfg.SubCmd = cfg.Args[0]

	subcommands := map[string]SubcommandHandler{
		CmdBackup:    BackupHandler{},
		CmdInventory: InventoryHandler{},
		CmdVersion:   VersionHandler{},
	}

	handler, exists := subcommands[cfg.SubCmd]
	if !exists {
		return cfg, fmt.Errorf("%w: %q", errUnknownCommand, cfg.SubCmd)
	}

	if err := handler.Parse(cfg.Args[1:], cfg); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.Help = true

			return cfg, nil
		}

		return cfg, err
	}

	return cfg, nil
}
