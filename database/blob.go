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
	"log/slog"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
)

// ErrBlobNotFound is returned when no canonical text is stored for a
// content hash
var ErrBlobNotFound = errors.New("blob not found")

// canonicalKeyPrefix namespaces canonical-text blobs within the store
var canonicalKeyPrefix = []byte("canonical/")

// BlobStore holds canonical source text in badger, keyed by content
// hash. Text is written once per hash; identical documents share one
// blob by construction.
type BlobStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewBlobStore opens (or creates) the blob database under dataDir. Uses
// an in-memory store when dataDir is empty, useful for testing.
func NewBlobStore(dataDir string, logger *slog.Logger) (*BlobStore, error) {
	var opts badger.Options
	if dataDir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(filepath.Join(dataDir, "blob"))
	}
	// badger's own logger is noisy at INFO; we log open/close ourselves
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}
	return &BlobStore{
		db:     db,
		logger: logger,
	}, nil
}

func canonicalKey(contentHash fingerprint.Hash) []byte {
	return append([]byte{}, append(canonicalKeyPrefix, contentHash.Bytes()...)...)
}

// PutCanonicalText stores the canonical text for a content hash
func (b *BlobStore) PutCanonicalText(
	contentHash fingerprint.Hash,
	text []byte,
) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(canonicalKey(contentHash), text)
	})
	if err != nil {
		return fmt.Errorf("failed to store canonical text: %w", err)
	}
	b.logger.Debug(
		"stored canonical text",
		"contentHash", contentHash.String(),
		"size", len(text),
		"component", "database",
	)
	return nil
}

// GetCanonicalText retrieves the canonical text for a content hash
func (b *BlobStore) GetCanonicalText(
	contentHash fingerprint.Hash,
) ([]byte, error) {
	var text []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(canonicalKey(contentHash))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf(
					"no canonical text for %s: %w",
					contentHash,
					ErrBlobNotFound,
				)
			}
			return err
		}
		text, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return text, nil
}

// Close closes the underlying badger database
func (b *BlobStore) Close() error {
	return b.db.Close()
}
