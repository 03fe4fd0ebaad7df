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
	"sync"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/keccak"
)

// DefaultStrategy is the hash strategy of the package-level functions.
const DefaultStrategy = sparsemerkle.KECCAK256

var (
	defaultBuilder = sync.OnceValue(func() *Builder {
		b, err := NewBuilder(keccak.Default, Options{Strategy: DefaultStrategy})
		if err != nil {
			panic(err)
		}
		return b
	})
	defaultVerifier = sync.OnceValue(func() *Verifier {
		v, err := NewVerifier(keccak.Default, Options{Strategy: DefaultStrategy})
		if err != nil {
			panic(err)
		}
		return v
	})
)

// EmptyNodeHashes returns the padding table for DefaultStrategy. It is
// computed on first use and never changes afterwards.
func EmptyNodeHashes() EmptyNodes {
	return defaultBuilder().EmptyNodeHashes()
}

// BuildFromLeaves builds a tree over leaves with DefaultStrategy.
func BuildFromLeaves(leaves []sparsemerkle.Digest) (Tree, error) {
	return defaultBuilder().BuildFromLeaves(leaves)
}

// BuildFromItems builds a tree over the hashes of items with DefaultStrategy.
func BuildFromItems(items [][]byte) (Tree, error) {
	return defaultBuilder().BuildFromItems(items)
}

// RootFromLeaves returns the root of the tree over leaves with DefaultStrategy.
func RootFromLeaves(leaves []sparsemerkle.Digest) (sparsemerkle.Digest, error) {
	return defaultBuilder().RootFromLeaves(leaves)
}

// RootFromItems returns the root of the tree over the hashes of items with
// DefaultStrategy.
func RootFromItems(items [][]byte) (sparsemerkle.Digest, error) {
	return defaultBuilder().RootFromItems(items)
}

// Verify checks proof against root with DefaultStrategy.
func Verify(root, leaf sparsemerkle.Digest, index uint64, proof Proof) (bool, error) {
	return defaultVerifier().Verify(root, leaf, index, proof)
}
