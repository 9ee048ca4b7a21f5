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

// Package devices reads the device list that drives a run.
package devices

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/gocarina/gocsv"
)

var errNoDevicesFile = errors.New("devices file path is empty")

// row is one line of the device list. Headers are matched after trimming,
// and both the spreadsheet-style and the lower-case names are accepted.
type row struct {
	IP         string `csv:"IP Address,ip"`
	DeviceRole string `csv:"device_role"`
	DeviceType string `csv:"device_type"`
	Location   string `csv:"Location,location"`
}

// Options are the run-wide values attached to every record.
type Options struct {
	Credentials    models.Credentials
	ConnectTimeout models.Duration
	AuthTimeout    models.Duration
}

// Source loads device records from a CSV file.
type Source struct {
	path   string
	opts   Options
	logger logger.Logger
}

// NewSource returns a Source reading path.
func NewSource(path string, opts Options, log logger.Logger) *Source {
	return &Source{
		path:   path,
		opts:   opts,
		logger: log,
	}
}

// Load reads the whole file. Rows without an IP address are dropped. A
// missing, unreadable or empty file is a source_load error.
func (s *Source) Load() ([]*models.DeviceRecord, error) {
	if s.path == "" {
		return nil, models.NewDeviceError(models.KindSourceLoad, "", "open", errNoDevicesFile)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, models.NewDeviceError(models.KindSourceLoad, "", "open", err)
	}
	defer func() { _ = f.Close() }()

	records, err := s.decode(f)
	if err != nil {
		return nil, models.NewDeviceError(models.KindSourceLoad, "", "parse",
			fmt.Errorf("%s: %w", s.path, err))
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("devices", len(records)).
		Msg("Loaded device list")

	return records, nil
}

func (s *Source) decode(r io.Reader) ([]*models.DeviceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows []*row
	if err := gocsv.UnmarshalCSV(&trimmingReader{r: reader}, &rows); err != nil {
		return nil, err
	}

	records := make([]*models.DeviceRecord, 0, len(rows))

	for i, r := range rows {
		if r.IP == "" {
			s.logger.Debug().Int("row", i+2).Msg("Skipping device row without IP address")
			continue
		}

		records = append(records, &models.DeviceRecord{
			IP:             r.IP,
			Username:       s.opts.Credentials.Username,
			Password:       s.opts.Credentials.Password,
			Secret:         s.opts.Credentials.Secret,
			DeviceType:     r.DeviceType,
			DeviceRole:     r.DeviceRole,
			Location:       r.Location,
			ConnectTimeout: s.opts.ConnectTimeout,
			AuthTimeout:    s.opts.AuthTimeout,
		})
	}

	return records, nil
}

// trimmingReader trims every cell, headers included, and drops a leading
// UTF-8 byte order mark.
type trimmingReader struct {
	r     *csv.Reader
	first bool
}

func (t *trimmingReader) Read() ([]string, error) {
	rec, err := t.r.Read()
	if err != nil {
		return nil, err
	}

	if !t.first {
		t.first = true

		if len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
	}

	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	return rec, nil
}

func (t *trimmingReader) ReadAll() ([][]string, error) {
	var out [][]string

	for {
		rec, err := t.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return nil, err
		}

		out = append(out, rec)
	}
}
