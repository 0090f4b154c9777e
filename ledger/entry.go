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
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
)

// AddressSize is the width of an identity address in bytes
const AddressSize = 20

// Address identifies a curator or an external NFT contract. The zero
// value is the "absent" sentinel.
type Address [AddressSize]byte

// IsZero returns true for the absent-address sentinel
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the 0x-prefixed lowercase hex representation
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns the raw address bytes
func (a Address) Bytes() []byte {
	return a[:]
}

// AddressFromBytes converts raw bytes into an Address. An empty or nil
// slice yields the zero sentinel.
func AddressFromBytes(data []byte) (Address, error) {
	var a Address
	if len(data) == 0 {
		return a, nil
	}
	if len(data) != AddressSize {
		return a, fmt.Errorf(
			"invalid address length: expected %d bytes, got %d",
			AddressSize,
			len(data),
		)
	}
	copy(a[:], data)
	return a, nil
}

// ParseAddress decodes the hex representation of an address, with or
// without the "0x" prefix
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(s, "0x")
	if len(s) != AddressSize*2 {
		return a, fmt.Errorf(
			"invalid address length: expected %d hex characters, got %d",
			AddressSize*2,
			len(s),
		)
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid address: %w", err)
	}
	copy(a[:], data)
	return a, nil
}

// EntryParams carries the caller-supplied metadata for a new entry. All
// text fields are free-form; NftAddress and ContentHash use their zero
// values as "absent" sentinels.
type EntryParams struct {
	Title        string
	Source       string
	Timestamp1   string
	Timestamp2   string
	CuratorNote  string
	PermawebLink string
	License      string
	NftAddress   Address
	NftID        uint64
	ContentHash  fingerprint.Hash
}

// Entry is a versioned metadata record for a literary artifact. Entries
// are immutable once archived, except for the Deprecated flag, which is
// set exactly once when a newer version supersedes the entry.
type Entry struct {
	Title        string
	Source       string
	Timestamp1   string
	Timestamp2   string
	CuratorNote  string
	PermawebLink string
	License      string
	NftAddress   Address
	NftID        uint64
	ContentHash  fingerprint.Hash
	Index        uint64
	VersionIndex uint64
	Deprecated   bool
	ArchivedAt   time.Time
}

func newEntry(params EntryParams, index, versionIndex uint64, archivedAt time.Time) Entry {
	return Entry{
		Title:        params.Title,
		Source:       params.Source,
		Timestamp1:   params.Timestamp1,
		Timestamp2:   params.Timestamp2,
		CuratorNote:  params.CuratorNote,
		PermawebLink: params.PermawebLink,
		License:      params.License,
		NftAddress:   params.NftAddress,
		NftID:        params.NftID,
		ContentHash:  params.ContentHash,
		Index:        index,
		VersionIndex: versionIndex,
		ArchivedAt:   archivedAt,
	}
}
