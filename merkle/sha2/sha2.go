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

// Package sha2 implements hashers.Hasher for the SHA-2 family members with
// 32 byte outputs.
package sha2

import (
	"crypto"
	_ "crypto/sha256" // Register SHA256.
	_ "crypto/sha512" // Register SHA512_256.

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/hashers"
)

func init() {
	hashers.Register(sparsemerkle.SHA256, SHA256)
	hashers.Register(sparsemerkle.SHA512_256, SHA512_256)
}

var (
	// SHA256 hashes with plain SHA-256.
	SHA256 = New(crypto.SHA256)
	// SHA512_256 hashes with SHA-512/256.
	SHA512_256 = New(crypto.SHA512_256)
)

// Hasher hashes leaves and nodes with no domain separation.
type Hasher struct {
	fn crypto.Hash
}

// New creates a Hasher for the given hash function.
func New(h crypto.Hash) Hasher {
	return Hasher{fn: h}
}

// Hash returns H(data).
func (t Hasher) Hash(data []byte) []byte {
	h := t.fn.New()
	h.Write(data)
	return h.Sum(nil)
}

// HashChildren returns H(l || r).
func (t Hasher) HashChildren(l, r []byte) []byte {
	h := t.fn.New()
	h.Write(l)
	h.Write(r)
	return h.Sum(nil)
}

// Size returns the number of bytes in output hashes.
func (t Hasher) Size() int {
	return t.fn.Size()
}
