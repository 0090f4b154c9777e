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

package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// HashSize is the width of a content fingerprint in bytes
const HashSize = sha256.Size

// Hash is a SHA-256 content fingerprint. The zero value is the sentinel
// for "no source text supplied" and is distinct from the hash of the
// empty string.
type Hash [HashSize]byte

// Sum computes the fingerprint of the given canonical text. The empty
// string produces the SHA-256 digest of zero bytes, not the sentinel.
func Sum(text string) Hash {
	return sha256.Sum256([]byte(text))
}

// IsZero returns true for the "no text supplied" sentinel
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Bytes returns the raw digest bytes
func (h Hash) Bytes() []byte {
	return h[:]
}

// String returns the external representation: "0x" followed by 64
// lowercase hex characters
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// HashFromBytes converts raw digest bytes into a Hash. An empty or nil
// slice yields the zero sentinel.
func HashFromBytes(data []byte) (Hash, error) {
	var h Hash
	if len(data) == 0 {
		return h, nil
	}
	if len(data) != HashSize {
		return h, fmt.Errorf(
			"invalid hash length: expected %d bytes, got %d",
			HashSize,
			len(data),
		)
	}
	copy(h[:], data)
	return h, nil
}

// ParseHash decodes the hex representation of a fingerprint, with or
// without the "0x" prefix
func ParseHash(s string) (Hash, error) {
	var h Hash
	s = strings.TrimPrefix(s, "0x")
	if len(s) != HashSize*2 {
		return h, fmt.Errorf(
			"invalid hash length: expected %d hex characters, got %d",
			HashSize*2,
			len(s),
		)
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash: %w", err)
	}
	copy(h[:], data)
	return h, nil
}
