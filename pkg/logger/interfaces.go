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

package logger

import (
	"github.com/rs/zerolog"
)

// Logger is the logging surface handed to every component.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	SetLevel(level zerolog.Level)
	SetDebug(debug bool)
}

// Zero adapts a zerolog.Logger to Logger. The event methods come from the
// embedded logger.
type Zero struct {
	zerolog.Logger
}

// Wrap returns zl as a Logger.
func Wrap(zl zerolog.Logger) *Zero {
	return &Zero{Logger: zl}
}

// WithComponent returns a child logger tagged with component.
func (z *Zero) WithComponent(component string) zerolog.Logger {
	return z.Logger.With().Str("component", component).Logger()
}

// SetLevel changes the minimum level of z.
func (z *Zero) SetLevel(level zerolog.Level) {
	z.Logger = z.Logger.Level(level)
}

// SetDebug switches between debug and info level.
func (z *Zero) SetDebug(debug bool) {
	if debug {
		z.SetLevel(zerolog.DebugLevel)

		return
	}

	z.SetLevel(zerolog.InfoLevel)
}

// NewTestLogger returns a Logger that discards everything.
func NewTestLogger() Logger {
	return Wrap(zerolog.Nop())
}
