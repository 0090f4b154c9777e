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

package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokapal-xyz/lit3-ledger/canonical"
	"github.com/lokapal-xyz/lit3-ledger/database"
	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

func testAddress(fill byte) ledger.Address {
	var a ledger.Address
	for i := range a {
		a[i] = fill
	}
	return a
}

func testDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(nil, "")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestStoreAndLoadEntries(t *testing.T) {
	db := testDatabase(t)
	text := canonical.Canonicalize("#Title\n\nBody.\n")
	entry := ledger.Entry{
		Title:        "A Story",
		Source:       "Anonymous",
		License:      "CC0",
		ContentHash:  fingerprint.Sum(text),
		Index:        0,
		VersionIndex: 1,
		ArchivedAt:   time.Now().Truncate(time.Second),
	}
	require.NoError(t, db.StoreEntry(entry, []byte(text)))

	entries, state, err := db.LoadLedgerState()
	require.NoError(t, err)
	assert.Nil(t, state, "fresh database should have no curator state")
	require.Len(t, entries, 1)
	assert.Equal(t, entry.Title, entries[0].Title)
	assert.Equal(t, entry.ContentHash, entries[0].ContentHash)
	assert.Equal(t, uint64(1), entries[0].VersionIndex)
	assert.True(t, entries[0].NftAddress.IsZero())

	// Canonical text round-trips through the blob store
	stored, err := db.Blob().GetCanonicalText(entry.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, text, string(stored))
}

func TestLoadEntriesOrdered(t *testing.T) {
	db := testDatabase(t)
	// Insert out of index order; loading must sort by ledger index
	for _, idx := range []uint64{2, 0, 1} {
		entry := ledger.Entry{
			Title:        "entry",
			Index:        idx,
			VersionIndex: 1,
			ArchivedAt:   time.Now(),
		}
		require.NoError(t, db.StoreEntry(entry, nil))
	}
	entries, _, err := db.LoadLedgerState()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, uint64(i), entry.Index)
	}
}

func TestSetEntryDeprecated(t *testing.T) {
	db := testDatabase(t)
	entry := ledger.Entry{
		Title:        "v1",
		Index:        0,
		VersionIndex: 1,
		ArchivedAt:   time.Now(),
	}
	require.NoError(t, db.StoreEntry(entry, nil))
	require.NoError(t, db.Metadata().SetEntryDeprecated(0))

	entries, _, err := db.LoadLedgerState()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Deprecated)

	// Unknown index is an error
	assert.Error(t, db.Metadata().SetEntryDeprecated(42))
}

func TestCuratorStateRoundTrip(t *testing.T) {
	db := testDatabase(t)
	state := ledger.CuratorState{
		Curator:        testAddress(0x01),
		PendingCurator: testAddress(0x02),
	}
	require.NoError(t, db.StoreCuratorState(state))

	_, loaded, err := db.LoadLedgerState()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, state.Curator, loaded.Curator)
	assert.Equal(t, state.PendingCurator, loaded.PendingCurator)

	// Clearing the pending curator persists as the zero sentinel
	state.PendingCurator = ledger.Address{}
	require.NoError(t, db.StoreCuratorState(state))
	_, loaded, err = db.LoadLedgerState()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.PendingCurator.IsZero())
}

func TestBlobNotFound(t *testing.T) {
	db := testDatabase(t)
	_, err := db.Blob().GetCanonicalText(fingerprint.Sum("missing"))
	assert.ErrorIs(t, err, database.ErrBlobNotFound)
}
