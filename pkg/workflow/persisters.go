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

package workflow

import (
	"context"

	"github.com/carverauto/netsnap/pkg/command"
	"github.com/carverauto/netsnap/pkg/models"
)

// BackupStore saves a device configuration and returns where it went.
type BackupStore interface {
	Save(hostname, ip, content string) (string, error)
}

// InventoryWriter appends one merged device record to the inventory.
type InventoryWriter interface {
	Append(merged map[string]string) error
	Path() string
}

// BackupPersister writes the running configuration to the backup store.
type BackupPersister struct {
	store BackupStore
}

// NewBackupPersister returns a Persister for backup runs.
func NewBackupPersister(store BackupStore) *BackupPersister {
	return &BackupPersister{store: store}
}

// Persist implements Persister.
func (b *BackupPersister) Persist(_ context.Context, c *Collection) (string, error) {
	return b.store.Save(c.Record.Hostname, c.Record.IP, c.RunningConfig.Raw)
}

// InventoryPersister appends the device and its facts to the inventory.
type InventoryPersister struct {
	writer InventoryWriter
}

// NewInventoryPersister returns a Persister for inventory runs.
func NewInventoryPersister(writer InventoryWriter) *InventoryPersister {
	return &InventoryPersister{writer: writer}
}

// Persist implements Persister.
func (i *InventoryPersister) Persist(_ context.Context, c *Collection) (string, error) {
	if err := i.writer.Append(MergeRecord(c)); err != nil {
		return "", err
	}

	return i.writer.Path(), nil
}

// MergeRecord overlays the flattened first fact record on the public
// connection fields of the device. device_type keeps the source spelling
// rather than the resolved platform. Secrets are never included.
func MergeRecord(c *Collection) map[string]string {
	merged := models.PublicFields(&c.Params)
	if c.Record != nil {
		merged["device_type"] = c.Record.DeviceType
	}

	for key, value := range command.FlattenFacts(c.Facts.First()) {
		merged[key] = value
	}

	return merged
}
