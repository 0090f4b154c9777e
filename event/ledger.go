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

package event

import (
	"time"

	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
)

// EntryArchivedEventType is the event type for newly archived entries
const EntryArchivedEventType = EventType("ledger.entry.archived")

// EntryArchivedEvent is emitted after a new entry has been committed to
// the ledger, for both fresh archives and version updates.
type EntryArchivedEvent struct {
	// Index is the permanent ledger index of the new entry
	Index uint64
	// VersionIndex is the entry's position in its version chain
	VersionIndex uint64
	// ContentHash is the fingerprint of the canonical source text, or
	// the zero sentinel when no text was supplied
	ContentHash fingerprint.Hash
	// Title is the entry title
	Title string
	// Timestamp is when the entry was archived
	Timestamp time.Time
}

// EntryDeprecatedEventType is the event type for deprecated entries
const EntryDeprecatedEventType = EventType("ledger.entry.deprecated")

// EntryDeprecatedEvent is emitted when an entry is superseded by a new
// version and flagged deprecated.
type EntryDeprecatedEvent struct {
	// Index is the ledger index of the deprecated entry
	Index uint64
	// SupersededBy is the ledger index of the replacing entry
	SupersededBy uint64
	// Timestamp is when the deprecation was committed
	Timestamp time.Time
}

// CuratorTransferInitiatedEventType is the event type for transfer nominations
const CuratorTransferInitiatedEventType = EventType("ledger.curator.transfer_initiated")

// CuratorTransferInitiatedEvent is emitted when the current curator
// nominates a successor. Addresses are rendered in 0x hex form.
type CuratorTransferInitiatedEvent struct {
	// Current is the curator initiating the transfer
	Current string
	// Nominee is the pending curator awaiting acceptance
	Nominee string
	// Timestamp is when the nomination was committed
	Timestamp time.Time
}

// CuratorTransferAcceptedEventType is the event type for completed transfers
const CuratorTransferAcceptedEventType = EventType("ledger.curator.transfer_accepted")

// CuratorTransferAcceptedEvent is emitted when a pending curator accepts
// the transfer and becomes the new authority.
type CuratorTransferAcceptedEvent struct {
	// Previous is the curator that handed off authority
	Previous string
	// Current is the new curator
	Current string
	// Timestamp is when the acceptance was committed
	Timestamp time.Time
}
