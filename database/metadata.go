// Copyright 2025 Lokapal
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lokapal-xyz/lit3-ledger/database/models"
)

// curatorStateID is the fixed primary key of the single governance row
const curatorStateID = 1

// MetadataStore is the SQLite-backed store for entry metadata and
// governance state.
type MetadataStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewMetadataStore opens (or creates) the metadata database. Uses an
// in-memory database when dataDir is empty, useful for testing.
func NewMetadataStore(
	dataDir string,
	logger *slog.Logger,
) (*MetadataStore, error) {
	var metadataDb *gorm.DB
	var err error
	if dataDir == "" {
		// cache=shared allows multiple connections to share the same
		// in-memory database
		metadataDb, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared"),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(dataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(dataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		metadataDbPath := filepath.Join(dataDir, "metadata.sqlite")
		// WAL journal mode, disable sync on write
		metadataConnOpts := "_pragma=journal_mode(WAL)&_pragma=sync(OFF)"
		metadataDb, err = gorm.Open(
			sqlite.Open(
				fmt.Sprintf("file:%s?%s", metadataDbPath, metadataConnOpts),
			),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
	}
	store := &MetadataStore{
		db:     metadataDb,
		logger: logger,
	}
	for _, model := range models.MigrateModels {
		store.logger.Debug(
			fmt.Sprintf("creating table: %#v", model),
			"component", "database",
		)
		if err := store.db.AutoMigrate(model); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// AddEntry inserts a new entry row
func (m *MetadataStore) AddEntry(entry *models.Entry) error {
	if result := m.db.Create(entry); result.Error != nil {
		return result.Error
	}
	return nil
}

// SetEntryDeprecated flips the deprecated flag for the row with the
// given ledger index
func (m *MetadataStore) SetEntryDeprecated(entryIndex uint64) error {
	result := m.db.Model(&models.Entry{}).
		Where("entry_index = ?", entryIndex).
		Update("deprecated", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no entry row with index %d", entryIndex)
	}
	return nil
}

// GetEntries returns all entry rows in ascending ledger-index order
func (m *MetadataStore) GetEntries() ([]models.Entry, error) {
	var entries []models.Entry
	if result := m.db.Order("entry_index").Find(&entries); result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

// GetCuratorState returns the persisted governance row, or nil if the
// database has not been initialized yet
func (m *MetadataStore) GetCuratorState() (*models.CuratorState, error) {
	var state models.CuratorState
	result := m.db.First(&state, curatorStateID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &state, nil
}

// SetCuratorState upserts the single governance row
func (m *MetadataStore) SetCuratorState(state *models.CuratorState) error {
	state.ID = curatorStateID
	if result := m.db.Save(state); result.Error != nil {
		return result.Error
	}
	return nil
}

// Close closes the underlying database connection
func (m *MetadataStore) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
