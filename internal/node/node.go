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

package node

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lokapal-xyz/lit3-ledger/database"
	"github.com/lokapal-xyz/lit3-ledger/event"
	"github.com/lokapal-xyz/lit3-ledger/internal/config"
	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

// Node wires the configuration, event bus, database, and ledger into a
// single running instance. Mutations go through the ledger first and
// are then persisted, so the on-disk state always trails the committed
// in-memory state within a single call.
type Node struct {
	config       *config.Config
	logger       *slog.Logger
	eventBus     *event.EventBus
	promRegistry *prometheus.Registry
	db           *database.Database
	ledger       *ledger.Ledger
}

// New builds a Node from the given config. A fresh data directory is
// initialized with the configured curator; an existing one is loaded
// and the configured curator is ignored in favor of the persisted
// governance state.
func New(cfg *config.Config, logger *slog.Logger) (*Node, error) {
	if cfg == nil {
		return nil, errors.New("no config provided")
	}
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	promRegistry := prometheus.NewRegistry()
	eventBus := event.NewEventBus(promRegistry, logger)
	db, err := database.New(logger, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	entries, curatorState, err := db.LoadLedgerState()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading ledger state: %w", err)
	}
	var l *ledger.Ledger
	if curatorState == nil {
		// Fresh ledger: the configured curator takes ownership
		curator, err := ledger.ParseAddress(cfg.Curator)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("invalid curator address in config: %w", err)
		}
		l, err = ledger.New(curator, eventBus, logger, promRegistry)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := db.StoreCuratorState(l.CuratorState()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("persisting initial curator: %w", err)
		}
		logger.Info(
			"initialized fresh ledger",
			"curator", curator.String(),
			"dataDir", db.DataDir(),
			"component", "node",
		)
	} else {
		l, err = ledger.NewFromState(
			entries,
			curatorState.Curator,
			curatorState.PendingCurator,
			eventBus,
			logger,
			promRegistry,
		)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("restoring ledger state: %w", err)
		}
		logger.Info(
			"loaded ledger",
			"entries", l.TotalEntries(),
			"curator", curatorState.Curator.String(),
			"dataDir", db.DataDir(),
			"component", "node",
		)
	}
	return &Node{
		config:       cfg,
		logger:       logger,
		eventBus:     eventBus,
		promRegistry: promRegistry,
		db:           db,
		ledger:       l,
	}, nil
}

// Config returns the node's configuration
func (n *Node) Config() *config.Config {
	return n.config
}

// Ledger returns the underlying ledger instance
func (n *Node) Ledger() *ledger.Ledger {
	return n.ledger
}

// Database returns the underlying database instance
func (n *Node) Database() *database.Database {
	return n.db
}

// EventBus returns the node's event bus, the subscription point for
// external indexing consumers
func (n *Node) EventBus() *event.EventBus {
	return n.eventBus
}

// Close shuts down the event bus and database connections
func (n *Node) Close() error {
	n.eventBus.Stop()
	return n.db.Close()
}

// ArchiveEntry archives a new entry and persists it along with its
// canonical source text, when supplied.
func (n *Node) ArchiveEntry(
	caller ledger.Address,
	params ledger.EntryParams,
	canonicalText []byte,
) (uint64, error) {
	index, err := n.ledger.ArchiveEntry(caller, params)
	if err != nil {
		return 0, err
	}
	entry, err := n.ledger.GetEntry(index)
	if err != nil {
		return 0, err
	}
	if err := n.db.StoreEntry(entry, canonicalText); err != nil {
		return 0, fmt.Errorf("persisting entry %d: %w", index, err)
	}
	return index, nil
}

// ArchiveUpdatedEntry advances a version chain and persists both the
// new entry and the deprecation of its predecessor.
func (n *Node) ArchiveUpdatedEntry(
	caller ledger.Address,
	params ledger.EntryParams,
	deprecateIndex uint64,
	canonicalText []byte,
) (uint64, error) {
	index, err := n.ledger.ArchiveUpdatedEntry(caller, params, deprecateIndex)
	if err != nil {
		return 0, err
	}
	if err := n.db.Metadata().SetEntryDeprecated(deprecateIndex); err != nil {
		return 0, fmt.Errorf(
			"persisting deprecation of entry %d: %w",
			deprecateIndex,
			err,
		)
	}
	entry, err := n.ledger.GetEntry(index)
	if err != nil {
		return 0, err
	}
	if err := n.db.StoreEntry(entry, canonicalText); err != nil {
		return 0, fmt.Errorf("persisting entry %d: %w", index, err)
	}
	return index, nil
}

// InitiateCuratorTransfer nominates a new curator and persists the
// governance state
func (n *Node) InitiateCuratorTransfer(caller, nominee ledger.Address) error {
	if err := n.ledger.InitiateCuratorTransfer(caller, nominee); err != nil {
		return err
	}
	return n.db.StoreCuratorState(n.ledger.CuratorState())
}

// AcceptCuratorTransfer completes a pending transfer and persists the
// governance state
func (n *Node) AcceptCuratorTransfer(caller ledger.Address) error {
	if err := n.ledger.AcceptCuratorTransfer(caller); err != nil {
		return err
	}
	return n.db.StoreCuratorState(n.ledger.CuratorState())
}
