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

// Package keccak implements a hashers.Hasher using the legacy Keccak-256
// function, as used by the Ethereum beacon chain deposit contract.
package keccak

import (
	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/hashers"
	"golang.org/x/crypto/sha3"
)

func init() {
	hashers.Register(sparsemerkle.KECCAK256, Default)
}

// Default is the shared Keccak-256 hasher.
var Default = New()

// Hasher computes legacy Keccak-256 digests. The zero value is ready to use.
type Hasher struct{}

// New returns a Keccak-256 hasher.
func New() Hasher {
	return Hasher{}
}

// Hash returns Keccak-256(data).
func (Hasher) Hash(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// HashChildren returns Keccak-256(l || r).
func (Hasher) HashChildren(l, r []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(l)
	h.Write(r)
	return h.Sum(nil)
}

// Size returns the number of bytes in output hashes.
func (Hasher) Size() int {
	return 32
}
