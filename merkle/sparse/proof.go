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
	"fmt"

	"github.com/google/sparsemerkle"
)

// Proof is an inclusion proof: the sibling of the path from a leaf to the
// root at every level, leaves first.
type Proof []sparsemerkle.Digest

// GetBranchIndices returns the position of the node at index and of each of
// its ancestors, depth entries in total, starting with index itself.
func GetBranchIndices(index uint64, depth int) []uint64 {
	r := make([]uint64, depth)
	for i := range r {
		r[i] = index
		index >>= 1
	}
	return r
}

// GetMerkleProof reads the inclusion proof of the leaf at index off tree.
// The padding leaf of an odd leaf layer has a proof like any other leaf.
func GetMerkleProof(tree Tree, index uint64) (Proof, error) {
	if len(tree) != TreeDepth+1 {
		return nil, fmt.Errorf("%w: %d layers, want %d", ErrMalformedTree, len(tree), TreeDepth+1)
	}
	if n := uint64(len(tree.Leaves())); index >= n {
		return nil, fmt.Errorf("%w: index %d, tree has %d leaves", ErrIndexOutOfRange, index, n)
	}

	branch := GetBranchIndices(index, TreeDepth)
	proof := make(Proof, TreeDepth)
	for level, pos := range branch {
		layer := tree[TreeDepth-level]
		// Flipping the lowest bit gives the sibling.
		sibling := pos ^ 1
		if sibling >= uint64(len(layer)) {
			return nil, fmt.Errorf("%w: layer %d has %d nodes, no sibling for %d", ErrMalformedTree, TreeDepth-level, len(layer), pos)
		}
		proof[level] = layer[sibling]
	}
	return proof, nil
}
