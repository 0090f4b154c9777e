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
	"io"
	"log/slog"

	"github.com/lokapal-xyz/lit3-ledger/database/models"
	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

// Database bundles the metadata store (entry rows, governance state)
// and the blob store (canonical source text).
type Database struct {
	logger   *slog.Logger
	blob     *BlobStore
	metadata *MetadataStore
	dataDir  string
}

// New creates a new database instance with optional persistence using
// the provided data directory. An empty dataDir keeps everything in
// memory.
func New(logger *slog.Logger, dataDir string) (*Database, error) {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	metadataDb, err := NewMetadataStore(dataDir, logger)
	if err != nil {
		return nil, err
	}
	blobDb, err := NewBlobStore(dataDir, logger)
	if err != nil {
		_ = metadataDb.Close()
		return nil, err
	}
	return &Database{
		logger:   logger,
		blob:     blobDb,
		metadata: metadataDb,
		dataDir:  dataDir,
	}, nil
}

// Blob returns the underlying blob store instance
func (d *Database) Blob() *BlobStore {
	return d.blob
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() *MetadataStore {
	return d.metadata
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Close cleans up the database connections
func (d *Database) Close() error {
	var err error
	metadataErr := d.metadata.Close()
	err = errors.Join(err, metadataErr)
	blobErr := d.blob.Close()
	err = errors.Join(err, blobErr)
	return err
}

// StoreEntry persists a newly archived entry and, when canonical text
// is supplied, its blob
func (d *Database) StoreEntry(entry ledger.Entry, canonicalText []byte) error {
	if len(canonicalText) > 0 && !entry.ContentHash.IsZero() {
		if err := d.blob.PutCanonicalText(entry.ContentHash, canonicalText); err != nil {
			return err
		}
	}
	return d.metadata.AddEntry(entryToModel(entry))
}

// LoadLedgerState reads the persisted entries and governance state back
// into ledger types. Returns a nil CuratorState when the database is
// fresh.
func (d *Database) LoadLedgerState() ([]ledger.Entry, *ledger.CuratorState, error) {
	rows, err := d.metadata.GetEntries()
	if err != nil {
		return nil, nil, err
	}
	entries := make([]ledger.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := modelToEntry(row)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, entry)
	}
	stateRow, err := d.metadata.GetCuratorState()
	if err != nil {
		return nil, nil, err
	}
	if stateRow == nil {
		return entries, nil, nil
	}
	curator, err := ledger.AddressFromBytes(stateRow.Curator)
	if err != nil {
		return nil, nil, err
	}
	pending, err := ledger.AddressFromBytes(stateRow.PendingCurator)
	if err != nil {
		return nil, nil, err
	}
	return entries, &ledger.CuratorState{
		Curator:        curator,
		PendingCurator: pending,
	}, nil
}

// StoreCuratorState persists the governance state
func (d *Database) StoreCuratorState(state ledger.CuratorState) error {
	row := &models.CuratorState{
		Curator: state.Curator.Bytes(),
	}
	if !state.PendingCurator.IsZero() {
		row.PendingCurator = state.PendingCurator.Bytes()
	}
	return d.metadata.SetCuratorState(row)
}

func entryToModel(entry ledger.Entry) *models.Entry {
	row := &models.Entry{
		EntryIndex:   entry.Index,
		Title:        entry.Title,
		Source:       entry.Source,
		Timestamp1:   entry.Timestamp1,
		Timestamp2:   entry.Timestamp2,
		CuratorNote:  entry.CuratorNote,
		PermawebLink: entry.PermawebLink,
		License:      entry.License,
		NftID:        entry.NftID,
		VersionIndex: entry.VersionIndex,
		Deprecated:   entry.Deprecated,
		ArchivedAt:   entry.ArchivedAt,
	}
	// Sentinels persist as NULL rather than zero-filled bytes
	if !entry.NftAddress.IsZero() {
		row.NftAddress = entry.NftAddress.Bytes()
	}
	if !entry.ContentHash.IsZero() {
		row.ContentHash = entry.ContentHash.Bytes()
	}
	return row
}

func modelToEntry(row models.Entry) (ledger.Entry, error) {
	nftAddress, err := ledger.AddressFromBytes(row.NftAddress)
	if err != nil {
		return ledger.Entry{}, err
	}
	contentHash, err := fingerprint.HashFromBytes(row.ContentHash)
	if err != nil {
		return ledger.Entry{}, err
	}
	return ledger.Entry{
		Title:        row.Title,
		Source:       row.Source,
		Timestamp1:   row.Timestamp1,
		Timestamp2:   row.Timestamp2,
		CuratorNote:  row.CuratorNote,
		PermawebLink: row.PermawebLink,
		License:      row.License,
		NftAddress:   nftAddress,
		NftID:        row.NftID,
		ContentHash:  contentHash,
		Index:        row.EntryIndex,
		VersionIndex: row.VersionIndex,
		Deprecated:   row.Deprecated,
		ArchivedAt:   row.ArchivedAt,
	}, nil
}
