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

import "errors"

var (
	// ErrAccessDenied is returned when a caller that is not the current
	// curator (or, for transfer acceptance, the pending curator)
	// attempts a gated operation
	ErrAccessDenied = errors.New("access denied")

	// ErrIndexOutOfRange is returned when an index or range exceeds the
	// current ledger length
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrAlreadyDeprecated is returned on an attempt to deprecate an
	// entry that is already inactive
	ErrAlreadyDeprecated = errors.New("entry already deprecated")

	// ErrInvalidTarget is returned on an attempt to transfer curatorship
	// to the zero address or to the current curator
	ErrInvalidTarget = errors.New("invalid transfer target")
)
