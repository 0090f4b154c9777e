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

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokapal-xyz/lit3-ledger/event"
	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

func TestCuratorTransfer(t *testing.T) {
	l := testLedger(t)
	nominee := testAddress(0x03)

	require.NoError(t, l.InitiateCuratorTransfer(testCurator, nominee))
	state := l.CuratorState()
	assert.Equal(t, testCurator, state.Curator)
	assert.Equal(t, nominee, state.PendingCurator)

	// The old curator retains authority until acceptance
	_, err := l.ArchiveEntry(testCurator, ledger.EntryParams{Title: "still mine"})
	require.NoError(t, err)

	require.NoError(t, l.AcceptCuratorTransfer(nominee))
	state = l.CuratorState()
	assert.Equal(t, nominee, state.Curator)
	assert.True(t, state.PendingCurator.IsZero())

	// The old curator can no longer archive entries
	_, err = l.ArchiveEntry(testCurator, ledger.EntryParams{Title: "not anymore"})
	assert.ErrorIs(t, err, ledger.ErrAccessDenied)
	_, err = l.ArchiveEntry(nominee, ledger.EntryParams{Title: "new curator"})
	assert.NoError(t, err)
}

func TestInitiateCuratorTransferValidation(t *testing.T) {
	nominee := testAddress(0x03)
	tests := []struct {
		name        string
		caller      ledger.Address
		nominee     ledger.Address
		expectedErr error
	}{
		{
			name:        "non-curator caller",
			caller:      testOther,
			nominee:     nominee,
			expectedErr: ledger.ErrAccessDenied,
		},
		{
			name:        "zero nominee",
			caller:      testCurator,
			nominee:     ledger.Address{},
			expectedErr: ledger.ErrInvalidTarget,
		},
		{
			name:        "self transfer",
			caller:      testCurator,
			nominee:     testCurator,
			expectedErr: ledger.ErrInvalidTarget,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLedger(t)
			err := l.InitiateCuratorTransfer(tt.caller, tt.nominee)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.True(t, l.CuratorState().PendingCurator.IsZero())
		})
	}
}

func TestAcceptCuratorTransferAccessDenied(t *testing.T) {
	l := testLedger(t)

	// No transfer pending: nobody can accept
	err := l.AcceptCuratorTransfer(testOther)
	assert.ErrorIs(t, err, ledger.ErrAccessDenied)

	// Transfer pending: only the nominee can accept
	nominee := testAddress(0x03)
	require.NoError(t, l.InitiateCuratorTransfer(testCurator, nominee))
	err = l.AcceptCuratorTransfer(testOther)
	assert.ErrorIs(t, err, ledger.ErrAccessDenied)
	assert.Equal(t, testCurator, l.CuratorState().Curator)
}

func TestInitiateCuratorTransferOverwritesPending(t *testing.T) {
	l := testLedger(t)
	first := testAddress(0x03)
	second := testAddress(0x04)

	require.NoError(t, l.InitiateCuratorTransfer(testCurator, first))
	require.NoError(t, l.InitiateCuratorTransfer(testCurator, second))
	assert.Equal(t, second, l.CuratorState().PendingCurator)

	// The superseded nominee can no longer accept
	err := l.AcceptCuratorTransfer(first)
	assert.ErrorIs(t, err, ledger.ErrAccessDenied)
	require.NoError(t, l.AcceptCuratorTransfer(second))
	assert.Equal(t, second, l.CuratorState().Curator)
}

func TestCuratorTransferEvents(t *testing.T) {
	eb := event.NewEventBus(nil, nil)
	defer eb.Stop()
	l, err := ledger.New(testCurator, eb, nil, nil)
	require.NoError(t, err)
	nominee := testAddress(0x03)

	_, initiatedCh := eb.Subscribe(event.CuratorTransferInitiatedEventType)
	_, acceptedCh := eb.Subscribe(event.CuratorTransferAcceptedEventType)

	require.NoError(t, l.InitiateCuratorTransfer(testCurator, nominee))
	evt := waitForEvent(t, initiatedCh)
	initiated, ok := evt.Data.(event.CuratorTransferInitiatedEvent)
	require.True(t, ok, "unexpected event data type %T", evt.Data)
	assert.Equal(t, testCurator.String(), initiated.Current)
	assert.Equal(t, nominee.String(), initiated.Nominee)

	require.NoError(t, l.AcceptCuratorTransfer(nominee))
	evt = waitForEvent(t, acceptedCh)
	accepted, ok := evt.Data.(event.CuratorTransferAcceptedEvent)
	require.True(t, ok, "unexpected event data type %T", evt.Data)
	assert.Equal(t, testCurator.String(), accepted.Previous)
	assert.Equal(t, nominee.String(), accepted.Current)
}
