// Copyright 2026 Google LLC. All Rights Reserved.
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

package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a tree is built from no leaves or items.
	ErrEmptyInput = errors.New("no leaves given")
	// ErrTooManyLeaves is returned when there are more leaves than a tree of
	// depth TreeDepth can address.
	ErrTooManyLeaves = fmt.Errorf("more than %d leaves given", uint64(MaxLeaves))
	// ErrInvalidProofLength is matched, via errors.Is, by every
	// *ProofLengthError.
	ErrInvalidProofLength = errors.New("invalid proof length")
	// ErrIndexOutOfRange is returned when a proof is requested for a leaf
	// the tree does not hold.
	ErrIndexOutOfRange = errors.New("item index out of range")
	// ErrMalformedTree is returned when a Tree does not have the shape this
	// package builds.
	ErrMalformedTree = errors.New("malformed tree")
)

// ProofLengthError occurs when a proof does not hold exactly one sibling per
// level.
type ProofLengthError struct {
	Got, Want int
}

func (e *ProofLengthError) Error() string {
	return fmt.Sprintf("%v: got %d siblings, want %d", ErrInvalidProofLength, e.Got, e.Want)
}

// Is reports whether target is ErrInvalidProofLength.
func (e *ProofLengthError) Is(target error) bool {
	return target == ErrInvalidProofLength
}
