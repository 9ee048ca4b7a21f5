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

// Package lifecycle builds the loggers a run hands to its components.
package lifecycle

import (
	"fmt"
	"io"

	"github.com/carverauto/netsnap/pkg/logger"
)

// InitializeLogger initializes the global logger with the provided configuration.
// If config is nil, it uses the default configuration.
func InitializeLogger(config *logger.Config) error {
	if err := logger.Init(config); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// LoggerImpl is a logger.Logger that owns its zerolog instance instead of
// sharing the global one.
type LoggerImpl struct {
	logger.Zero
}

// NewLoggerImpl creates a logger writing to the configured output.
func NewLoggerImpl(config *logger.Config) (*LoggerImpl, error) {
	return NewLoggerWithOutput(config, nil)
}

// NewLoggerWithOutput creates a logger that writes JSON lines to output.
func NewLoggerWithOutput(config *logger.Config, output io.Writer) (*LoggerImpl, error) {
	zl, err := logger.New(config, output)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &LoggerImpl{Zero: logger.Zero{Logger: zl}}, nil
}

// Component returns a child logger tagged with the component name.
func (l *LoggerImpl) Component(component string) *LoggerImpl {
	return &LoggerImpl{Zero: logger.Zero{Logger: l.WithComponent(component)}}
}

// CreateComponentLogger creates a logger for a specific component.
func CreateComponentLogger(component string, config *logger.Config) (logger.Logger, error) {
	loggerImpl, err := NewLoggerImpl(config)
	if err != nil {
		return nil, err
	}

	return loggerImpl.Component(component), nil
}
