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

// Package export appends device inventory rows to a CSV file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/gocarina/gocsv"
)

// Record is one inventory row. Field order is the column order.
type Record struct {
	IP            string `csv:"ip"`
	Hostname      string `csv:"hostname"`
	DeviceType    string `csv:"device_type"`
	SoftwareImage string `csv:"software_image"`
	Version       string `csv:"version"`
	RunningImage  string `csv:"running_image"`
	Hardware      string `csv:"hardware"`
	Serial        string `csv:"serial"`
	MACAddress    string `csv:"mac_address"`
}

var columns = []string{
	"ip",
	"hostname",
	"device_type",
	"software_image",
	"version",
	"running_image",
	"hardware",
	"serial",
	"mac_address",
}

// Columns returns the export header in order.
func Columns() []string {
	return append([]string(nil), columns...)
}

// Project picks the export columns out of a merged device record. Absent
// keys become empty cells and extra keys are ignored.
func Project(merged map[string]string) Record {
	return Record{
		IP:            merged["ip"],
		Hostname:      merged["hostname"],
		DeviceType:    merged["device_type"],
		SoftwareImage: merged["software_image"],
		Version:       merged["version"],
		RunningImage:  merged["running_image"],
		Hardware:      merged["hardware"],
		Serial:        merged["serial"],
		MACAddress:    merged["mac_address"],
	}
}

// Writer appends rows to an open export file.
type Writer struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	logger logger.Logger
}

// Open opens path for appending, creating it and its directory when needed.
// The header row is written only when the file is new or empty.
func Open(path string, log logger.Logger) (*Writer, error) {
	fail := func(err error) (*Writer, error) {
		return nil, models.NewDeviceError(models.KindPersistence, "", "open inventory", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fail(err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fail(err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return fail(err)
	}

	if info.Size() == 0 {
		header, err := encode(nil, true)
		if err == nil {
			_, err = f.Write(header)
		}

		if err != nil {
			_ = f.Close()

			return fail(fmt.Errorf("write header: %w", err))
		}

		log.Debug().Str("path", path).Msg("Wrote inventory header")
	}

	return &Writer{
		path:   path,
		file:   f,
		logger: log,
	}, nil
}

// Path returns the export file path.
func (w *Writer) Path() string {
	return w.path
}

// Append projects merged onto the export columns and writes the row with a
// single write call, so either the whole row lands or none of it.
func (w *Writer) Append(merged map[string]string) error {
	rec := Project(merged)

	row, err := encode([]*Record{&rec}, false)
	if err != nil {
		return models.NewDeviceError(models.KindPersistence, rec.IP, "encode inventory row", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err = w.file.Write(row); err != nil {
		return models.NewDeviceError(models.KindPersistence, rec.IP, "append inventory row", err)
	}

	return nil
}

// Close flushes the file to disk and closes it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	syncErr := w.file.Sync()
	closeErr := w.file.Close()

	if syncErr != nil {
		return models.NewDeviceError(models.KindPersistence, "", "sync inventory", syncErr)
	}

	if closeErr != nil {
		return models.NewDeviceError(models.KindPersistence, "", "close inventory", closeErr)
	}

	return nil
}

// encode renders rows in memory. With header set and no rows only the
// header line is produced.
func encode(rows []*Record, header bool) ([]byte, error) {
	var buf bytes.Buffer

	out := gocsv.NewSafeCSVWriter(csv.NewWriter(&buf))

	if rows == nil {
		rows = []*Record{}
	}

	var err error
	if header {
		err = gocsv.MarshalCSV(rows, out)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(rows, out)
	}

	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
