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

package ledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lokapal-xyz/lit3-ledger/event"
)

// Ledger is an append-only, ordered store of versioned Entry records.
// Indexes are assigned at append time and never reused or reassigned.
// All mutations are gated on the current curator and serialized under a
// single mutex, so each call is atomic: it either fully applies or
// reports a failure with no state change.
//
// Events are published while the mutation lock is held so that event
// order always matches ledger order. Event handlers must not call back
// into the Ledger.
type Ledger struct {
	mu             sync.RWMutex
	entries        []Entry
	curator        Address
	pendingCurator Address
	eventBus       *event.EventBus
	logger         *slog.Logger
	metrics        *ledgerMetrics
}

// New creates an empty Ledger owned by the given curator. The event bus
// and prometheus registry may be nil.
func New(
	curator Address,
	eventBus *event.EventBus,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*Ledger, error) {
	if curator.IsZero() {
		return nil, errors.New("initial curator must not be the zero address")
	}
	l := &Ledger{
		curator:  curator,
		eventBus: eventBus,
		logger:   logger,
	}
	if l.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		l.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if promRegistry != nil {
		l.initMetrics(promRegistry)
	}
	return l, nil
}

// NewFromState reconstitutes a Ledger from persisted entries and curator
// state. Entries must be supplied in index order starting at zero.
func NewFromState(
	entries []Entry,
	curator Address,
	pendingCurator Address,
	eventBus *event.EventBus,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*Ledger, error) {
	l, err := New(curator, eventBus, logger, promRegistry)
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		if entry.Index != uint64(i) {
			return nil, fmt.Errorf(
				"persisted entry out of order: expected index %d, got %d",
				i,
				entry.Index,
			)
		}
	}
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
	l.pendingCurator = pendingCurator
	if l.metrics != nil {
		l.metrics.entries.Set(float64(len(l.entries)))
	}
	return l, nil
}

// ArchiveEntry appends a new entry starting a fresh version chain. Only
// the current curator may archive. Returns the permanent index assigned
// to the new entry.
func (l *Ledger) ArchiveEntry(caller Address, params EntryParams) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.curator {
		return 0, fmt.Errorf("caller %s is not the curator: %w", caller, ErrAccessDenied)
	}
	entry := newEntry(params, uint64(len(l.entries)), 1, time.Now())
	l.entries = append(l.entries, entry)
	l.logger.Info(
		"entry archived",
		"index", entry.Index,
		"versionIndex", entry.VersionIndex,
		"title", entry.Title,
		"component", "ledger",
	)
	if l.metrics != nil {
		l.metrics.entries.Set(float64(len(l.entries)))
		l.metrics.mutations.WithLabelValues("archive").Inc()
	}
	l.publishArchived(entry)
	return entry.Index, nil
}

// ArchiveUpdatedEntry deprecates the entry at deprecateIndex and appends
// a new entry continuing its version chain. The target must exist and
// still be active. Returns the permanent index of the new entry.
func (l *Ledger) ArchiveUpdatedEntry(
	caller Address,
	params EntryParams,
	deprecateIndex uint64,
) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.curator {
		return 0, fmt.Errorf("caller %s is not the curator: %w", caller, ErrAccessDenied)
	}
	if deprecateIndex >= uint64(len(l.entries)) {
		return 0, fmt.Errorf(
			"deprecate index %d exceeds ledger length %d: %w",
			deprecateIndex,
			len(l.entries),
			ErrIndexOutOfRange,
		)
	}
	target := &l.entries[deprecateIndex]
	if target.Deprecated {
		return 0, fmt.Errorf(
			"entry %d: %w",
			deprecateIndex,
			ErrAlreadyDeprecated,
		)
	}
	now := time.Now()
	entry := newEntry(params, uint64(len(l.entries)), target.VersionIndex+1, now)
	target.Deprecated = true
	l.entries = append(l.entries, entry)
	l.logger.Info(
		"entry updated",
		"index", entry.Index,
		"versionIndex", entry.VersionIndex,
		"deprecatedIndex", deprecateIndex,
		"title", entry.Title,
		"component", "ledger",
	)
	if l.metrics != nil {
		l.metrics.entries.Set(float64(len(l.entries)))
		l.metrics.mutations.WithLabelValues("update").Inc()
	}
	if l.eventBus != nil {
		l.eventBus.Publish(
			event.EntryDeprecatedEventType,
			event.NewEvent(
				event.EntryDeprecatedEventType,
				event.EntryDeprecatedEvent{
					Index:        deprecateIndex,
					SupersededBy: entry.Index,
					Timestamp:    now,
				},
			),
		)
	}
	l.publishArchived(entry)
	return entry.Index, nil
}

func (l *Ledger) publishArchived(entry Entry) {
	if l.eventBus == nil {
		return
	}
	l.eventBus.Publish(
		event.EntryArchivedEventType,
		event.NewEvent(
			event.EntryArchivedEventType,
			event.EntryArchivedEvent{
				Index:        entry.Index,
				VersionIndex: entry.VersionIndex,
				ContentHash:  entry.ContentHash,
				Title:        entry.Title,
				Timestamp:    entry.ArchivedAt,
			},
		),
	)
}

// GetEntry returns a copy of the entry at the given index
func (l *Ledger) GetEntry(index uint64) (Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index >= uint64(len(l.entries)) {
		return Entry{}, fmt.Errorf(
			"index %d exceeds ledger length %d: %w",
			index,
			len(l.entries),
			ErrIndexOutOfRange,
		)
	}
	return l.entries[index], nil
}

// TotalEntries returns the current ledger length
func (l *Ledger) TotalEntries() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.entries))
}

// LatestEntries returns up to count entries, most recently appended
// first. A count of zero or an empty ledger yields an empty result.
func (l *Ledger) LatestEntries(count uint64) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	length := uint64(len(l.entries))
	if count > length {
		count = length
	}
	out := make([]Entry, 0, count)
	for i := uint64(0); i < count; i++ {
		out = append(out, l.entries[length-1-i])
	}
	return out
}

// EntriesBatch returns entries [start, start+count) in ascending index
// order, truncated at the end of the ledger.
func (l *Ledger) EntriesBatch(start, count uint64) ([]Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	length := uint64(len(l.entries))
	if start >= length {
		return nil, fmt.Errorf(
			"batch start %d exceeds ledger length %d: %w",
			start,
			length,
			ErrIndexOutOfRange,
		)
	}
	if count > length-start {
		count = length - start
	}
	out := make([]Entry, count)
	copy(out, l.entries[start:start+count])
	return out, nil
}
