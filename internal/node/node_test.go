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

package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokapal-xyz/lit3-ledger/canonical"
	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
	"github.com/lokapal-xyz/lit3-ledger/internal/config"
	"github.com/lokapal-xyz/lit3-ledger/internal/node"
	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

var testCurator = "0x0101010101010101010101010101010101010101"

func testNode(t *testing.T, dataDir string) *node.Node {
	t.Helper()
	n, err := node.New(
		&config.Config{
			DataDir: dataDir,
			Curator: testCurator,
		},
		nil,
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = n.Close()
	})
	return n
}

func curatorAddress(t *testing.T) ledger.Address {
	t.Helper()
	addr, err := ledger.ParseAddress(testCurator)
	require.NoError(t, err)
	return addr
}

func TestNodeRequiresCuratorForFreshLedger(t *testing.T) {
	_, err := node.New(&config.Config{DataDir: ""}, nil)
	assert.Error(t, err)
}

func TestNodeArchiveAndQuery(t *testing.T) {
	n := testNode(t, "")
	caller := curatorAddress(t)

	text := canonical.Canonicalize("#Chapter One\n\nIt begins.\n")
	params := ledger.EntryParams{
		Title:       "Chapter One",
		Source:      "A. Writer",
		ContentHash: fingerprint.Sum(text),
	}
	index, err := n.ArchiveEntry(caller, params, []byte(text))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), index)

	entry, err := n.Ledger().GetEntry(index)
	require.NoError(t, err)
	assert.Equal(t, "Chapter One", entry.Title)

	// Canonical text is retrievable by content hash
	stored, err := n.Database().Blob().GetCanonicalText(entry.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, text, string(stored))
}

func TestNodeVersionChainPersistence(t *testing.T) {
	dataDir := t.TempDir()
	n := testNode(t, dataDir)
	caller := curatorAddress(t)
	assert.Equal(t, dataDir, n.Database().DataDir())

	idx1, err := n.ArchiveEntry(caller, ledger.EntryParams{Title: "v1"}, nil)
	require.NoError(t, err)
	idx2, err := n.ArchiveUpdatedEntry(
		caller,
		ledger.EntryParams{Title: "v2"},
		idx1,
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, n.Close())

	// Reopen from the same data directory: state survives
	n2 := testNode(t, dataDir)
	assert.Equal(t, uint64(2), n2.Ledger().TotalEntries())
	orig, err := n2.Ledger().GetEntry(idx1)
	require.NoError(t, err)
	assert.True(t, orig.Deprecated)
	updated, err := n2.Ledger().GetEntry(idx2)
	require.NoError(t, err)
	assert.False(t, updated.Deprecated)
	assert.Equal(t, uint64(2), updated.VersionIndex)

	// The chain continues across the restart
	idx3, err := n2.ArchiveUpdatedEntry(
		caller,
		ledger.EntryParams{Title: "v3"},
		idx2,
		nil,
	)
	require.NoError(t, err)
	third, err := n2.Ledger().GetEntry(idx3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), third.VersionIndex)
}

func TestNodeCuratorTransferPersistence(t *testing.T) {
	dataDir := t.TempDir()
	n := testNode(t, dataDir)
	caller := curatorAddress(t)
	nominee, err := ledger.ParseAddress(
		"0x0303030303030303030303030303030303030303",
	)
	require.NoError(t, err)

	require.NoError(t, n.InitiateCuratorTransfer(caller, nominee))
	require.NoError(t, n.AcceptCuratorTransfer(nominee))
	require.NoError(t, n.Close())

	// After a restart the new curator holds authority; the configured
	// curator is ignored for an existing ledger
	n2 := testNode(t, dataDir)
	assert.Equal(t, nominee, n2.Ledger().CuratorState().Curator)
	_, err = n2.ArchiveEntry(caller, ledger.EntryParams{Title: "old curator"}, nil)
	assert.ErrorIs(t, err, ledger.ErrAccessDenied)
	_, err = n2.ArchiveEntry(nominee, ledger.EntryParams{Title: "new curator"}, nil)
	assert.NoError(t, err)
}

func TestNodeMutationFailureLeavesNoPartialState(t *testing.T) {
	n := testNode(t, "")
	caller := curatorAddress(t)

	_, err := n.ArchiveUpdatedEntry(
		caller,
		ledger.EntryParams{Title: "v2"},
		7,
		nil,
	)
	assert.ErrorIs(t, err, ledger.ErrIndexOutOfRange)
	assert.Equal(t, uint64(0), n.Ledger().TotalEntries())

	entries, _, err := n.Database().LoadLedgerState()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
