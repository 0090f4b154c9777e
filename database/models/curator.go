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

// CuratorState is the persisted governance state. There is exactly one
// row, kept at a fixed primary key.
type CuratorState struct {
	ID             uint   `gorm:"primarykey"`
	Curator        []byte `gorm:"size:20"`
	PendingCurator []byte `gorm:"size:20"`
}

func (CuratorState) TableName() string {
	return "curator_state"
}
