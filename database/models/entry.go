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

package models

import "time"

// Entry is the persisted form of a ledger entry. EntryIndex mirrors the
// permanent in-memory ledger index; rows are never deleted, only the
// Deprecated flag is updated.
type Entry struct {
	ID           uint   `gorm:"primarykey"`
	EntryIndex   uint64 `gorm:"uniqueIndex"`
	Title        string
	Source       string
	Timestamp1   string
	Timestamp2   string
	CuratorNote  string
	PermawebLink string
	License      string
	NftAddress   []byte `gorm:"size:20"`
	NftID        uint64
	ContentHash  []byte `gorm:"index;size:32"`
	VersionIndex uint64
	Deprecated   bool
	ArchivedAt   time.Time
}

func (Entry) TableName() string {
	return "entry"
}
