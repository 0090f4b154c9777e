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
	"fmt"
	"time"

	"github.com/lokapal-xyz/lit3-ledger/event"
)

// CuratorState is a snapshot of the governance state: the current
// authority and, while a transfer is in flight, the nominee awaiting
// acceptance.
type CuratorState struct {
	Curator        Address
	PendingCurator Address
}

// CuratorState returns a snapshot of the current governance state
func (l *Ledger) CuratorState() CuratorState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return CuratorState{
		Curator:        l.curator,
		PendingCurator: l.pendingCurator,
	}
}

// InitiateCuratorTransfer nominates a new curator. Only the current
// curator may nominate; the nominee must be a real address distinct
// from the current curator. A prior pending nomination is overwritten.
// The current curator retains authority until the nominee accepts.
func (l *Ledger) InitiateCuratorTransfer(caller, nominee Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.curator {
		return fmt.Errorf("caller %s is not the curator: %w", caller, ErrAccessDenied)
	}
	if nominee.IsZero() {
		return fmt.Errorf("nominee is the zero address: %w", ErrInvalidTarget)
	}
	if nominee == l.curator {
		return fmt.Errorf("nominee is already the curator: %w", ErrInvalidTarget)
	}
	l.pendingCurator = nominee
	l.logger.Info(
		"curator transfer initiated",
		"curator", l.curator.String(),
		"nominee", nominee.String(),
		"component", "ledger",
	)
	if l.metrics != nil {
		l.metrics.mutations.WithLabelValues("transfer_initiate").Inc()
	}
	if l.eventBus != nil {
		l.eventBus.Publish(
			event.CuratorTransferInitiatedEventType,
			event.NewEvent(
				event.CuratorTransferInitiatedEventType,
				event.CuratorTransferInitiatedEvent{
					Current:   l.curator.String(),
					Nominee:   nominee.String(),
					Timestamp: time.Now(),
				},
			),
		)
	}
	return nil
}

// AcceptCuratorTransfer completes a pending transfer. Only the pending
// nominee may accept; this includes the case where no transfer is
// pending, since no caller matches the zero address sentinel.
func (l *Ledger) AcceptCuratorTransfer(caller Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller.IsZero() || caller != l.pendingCurator {
		return fmt.Errorf(
			"caller %s is not the pending curator: %w",
			caller,
			ErrAccessDenied,
		)
	}
	previous := l.curator
	l.curator = l.pendingCurator
	l.pendingCurator = Address{}
	l.logger.Info(
		"curator transfer accepted",
		"previous", previous.String(),
		"curator", l.curator.String(),
		"component", "ledger",
	)
	if l.metrics != nil {
		l.metrics.mutations.WithLabelValues("transfer_accept").Inc()
	}
	if l.eventBus != nil {
		l.eventBus.Publish(
			event.CuratorTransferAcceptedEventType,
			event.NewEvent(
				event.CuratorTransferAcceptedEventType,
				event.CuratorTransferAcceptedEvent{
					Previous:  previous.String(),
					Current:   l.curator.String(),
					Timestamp: time.Now(),
				},
			),
		)
	}
	return nil
}
