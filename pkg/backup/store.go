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

// Package backup stores running configurations in date-partitioned folders.
package backup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/carverauto/netsnap/pkg/logger"
	"github.com/carverauto/netsnap/pkg/models"
	"github.com/google/renameio"
)

const (
	dateLayout = "20060102"
	dirMode    = 0o750
	fileMode   = 0o600
)

var unsafeNameChars = strings.NewReplacer("/", "_", "\\", "_")

// Store writes backups below a root directory as
// {root}/{YYYYMMDD}/{hostname}_{ip}.txt.
type Store struct {
	root   string
	now    func() time.Time
	logger logger.Logger
}

// NewStore returns a Store rooted at root using the local clock.
func NewStore(root string, log logger.Logger) *Store {
	return NewStoreWithClock(root, time.Now, log)
}

// NewStoreWithClock returns a Store whose capture date comes from now.
func NewStoreWithClock(root string, now func() time.Time, log logger.Logger) *Store {
	return &Store{
		root:   root,
		now:    now,
		logger: log,
	}
}

// Path returns where a backup for hostname and ip captured at t is stored.
func (s *Store) Path(t time.Time, hostname, ip string) string {
	name := fmt.Sprintf("%s_%s.txt", unsafeNameChars.Replace(hostname), unsafeNameChars.Replace(ip))

	return filepath.Join(s.root, t.Format(dateLayout), name)
}

// Save writes content for the device, replacing any backup taken the same
// day. The file is replaced atomically so readers never see a partial
// backup.
func (s *Store) Save(hostname, ip, content string) (string, error) {
	path := s.Path(s.now(), hostname, ip)

	if err := writeFileAtomically(path, []byte(content)); err != nil {
		return "", models.NewDeviceError(models.KindPersistence, ip, "save backup", err)
	}

	s.logger.Info().
		Str("hostname", hostname).
		Str("ip", ip).
		Str("path", path).
		Msg("Backup saved")

	return path, nil
}

func writeFileAtomically(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	t, err := renameio.TempFile(dir, path)
	if err != nil {
		return err
	}

	defer func() {
		_ = t.Cleanup()
	}()

	// Set permissions before writing data; configurations carry secrets.
	if err := t.Chmod(fileMode); err != nil {
		return err
	}

	w := bufio.NewWriter(t)
	if _, err := w.Write(b); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return err
	}

	return t.CloseAtomicallyReplace()
}
