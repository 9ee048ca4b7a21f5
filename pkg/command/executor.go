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

// Package command runs commands on device sessions and extracts structured
// facts from their output with TextFSM templates.
package command

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/carverauto/netsnap/pkg/platform"
	"github.com/carverauto/netsnap/pkg/session"
	"github.com/sirikothe/gotextfsm"
)

//go:embed templates/*.textfsm
var embeddedTemplates embed.FS

// Executor runs commands and parses their output.
type Executor struct {
	templates fs.FS
	logger    logger.Logger
}

// NewExecutor returns an Executor using the built-in templates.
func NewExecutor(log logger.Logger) *Executor {
	sub, _ := fs.Sub(embeddedTemplates, "templates")

	return NewExecutorWithTemplates(sub, log)
}

// NewExecutorWithTemplates returns an Executor reading templates from fsys.
func NewExecutorWithTemplates(fsys fs.FS, log logger.Logger) *Executor {
	return &Executor{
		templates: fsys,
		logger:    log,
	}
}

// TemplateName is the template file used for command on platform p.
func TemplateName(p platform.Platform, command string) string {
	return fmt.Sprintf("%s_%s.textfsm", p, strings.Join(strings.Fields(command), "_"))
}

// Run sends command on sess. With structured set the output is also parsed;
// a parse failure fails the whole call and no partial result is returned.
func (e *Executor) Run(
	ctx context.Context, sess session.Session, p platform.Platform, command string, structured bool,
) (*models.CommandResult, error) {
	raw, err := sess.SendCommand(ctx, command)
	if err != nil {
		return nil, models.NewDeviceError(models.KindCommand, "", command, err)
	}

	result := &models.CommandResult{
		Command: command,
		Raw:     raw,
	}

	if !structured {
		return result, nil
	}

	records, err := e.Parse(p, command, raw)
	if err != nil {
		return nil, models.NewDeviceError(models.KindCommand, "", command, err)
	}

	result.Records = records

	e.logger.Debug().
		Str("command", command).
		Int("records", len(records)).
		Msg("Parsed command output")

	return result, nil
}

// Parse extracts records from raw using the template for p and command.
// Field names are lower-cased.
func (e *Executor) Parse(p platform.Platform, command, raw string) ([]models.Facts, error) {
	name := TemplateName(p, command)

	tpl, err := fs.ReadFile(e.templates, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateInvalid, name, err)
	}

	fsm := gotextfsm.TextFSM{}
	if err = fsm.ParseString(string(tpl)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateInvalid, name, err)
	}

	parser := gotextfsm.ParserOutput{}
	if err = parser.ParseTextString(raw, fsm, true); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	if len(parser.Dict) == 0 {
		return nil, ErrNoRecords
	}

	records := make([]models.Facts, 0, len(parser.Dict))

	for _, row := range parser.Dict {
		facts := make(models.Facts, len(row))

		for key, value := range row {
			facts[strings.ToLower(key)] = normalizeValue(value)
		}

		records = append(records, facts)
	}

	return records, nil
}

func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return append([]string{}, v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}

		return out
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
