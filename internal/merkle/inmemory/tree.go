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

// Package inmemory provides a naive in-memory Merkle tree of fixed depth. It
// computes every node from its definition, recursing down to the leaves, and
// serves as a reference for the layered builder. For testing.
package inmemory

import (
	"fmt"

	"github.com/google/sparsemerkle/merkle/hashers"
)

// Tree is a fixed-depth Merkle tree whose absent leaves are all zeros.
type Tree struct {
	hasher hashers.Hasher
	depth  uint
	leaves [][]byte
	// zeros[l] is the hash of a subtree of height l with only zero leaves.
	zeros [][]byte
}

// New returns a new empty tree of the given depth, which must be below 64.
func New(hasher hashers.Hasher, depth uint) *Tree {
	if depth >= 64 {
		panic(fmt.Sprintf("depth %d too large", depth))
	}
	zeros := make([][]byte, depth+1)
	zeros[0] = make([]byte, hasher.Size())
	for l := uint(1); l <= depth; l++ {
		zeros[l] = hasher.HashChildren(zeros[l-1], zeros[l-1])
	}
	return &Tree{hasher: hasher, depth: depth, zeros: zeros}
}

// AppendData adds the hashes of the given entries to the end of the tree.
func (t *Tree) AppendData(entries ...[]byte) {
	for _, data := range entries {
		t.leaves = append(t.leaves, t.hasher.Hash(data))
	}
}

// Append adds the given leaf hashes to the end of the tree.
func (t *Tree) Append(hashes ...[]byte) {
	for _, h := range hashes {
		t.leaves = append(t.leaves, append([]byte{}, h...))
	}
}

// Size returns the current number of leaves in the tree.
func (t *Tree) Size() uint64 {
	return uint64(len(t.leaves))
}

// LeafHash returns the leaf hash at the given index, zeros past the end.
// Requires index < 2^depth.
func (t *Tree) LeafHash(index uint64) []byte {
	return t.node(0, index)
}

// Zero returns the hash of an all-zero subtree of the given height.
func (t *Tree) Zero(level uint) []byte {
	return t.zeros[level]
}

// Hash returns the current root hash of the tree.
func (t *Tree) Hash() []byte {
	return t.node(t.depth, 0)
}

// InclusionProof returns the siblings of the path from the leaf at index to
// the root, leaves first.
func (t *Tree) InclusionProof(index uint64) ([][]byte, error) {
	if index>>t.depth != 0 {
		return nil, fmt.Errorf("index %d out of range for depth %d", index, t.depth)
	}
	proof := make([][]byte, 0, t.depth)
	for l := uint(0); l < t.depth; l++ {
		proof = append(proof, t.node(l, (index>>l)^1))
	}
	return proof, nil
}

// node returns the hash of the node at the given level and index, where
// level 0 holds the leaves.
func (t *Tree) node(level uint, index uint64) []byte {
	// Subtrees that start past the last leaf are empty.
	if index<<level >= t.Size() {
		return t.zeros[level]
	}
	if level == 0 {
		return t.leaves[index]
	}
	return t.hasher.HashChildren(t.node(level-1, 2*index), t.node(level-1, 2*index+1))
}
