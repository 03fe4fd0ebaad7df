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
	"runtime"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/hashers"
	"github.com/google/sparsemerkle/util/clock"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

const (
	// TreeDepth is the number of levels between the leaves and the root.
	TreeDepth = 32
	// MaxLeaves is the number of leaves a tree of depth TreeDepth addresses.
	MaxLeaves = 1 << TreeDepth

	defaultParallelHashThreshold = 4096
)

// Layer is one level of a tree, in left to right order.
type Layer []sparsemerkle.Digest

// Tree is a fully built Merkle tree as a list of TreeDepth+1 layers, root
// first and leaves last. Layer 0 holds only the root.
//
// Trees are never modified once built; callers must not modify them either
// while they are shared.
type Tree []Layer

// Root returns the root digest of the tree.
func (t Tree) Root() sparsemerkle.Digest {
	return t[0][0]
}

// Leaves returns the leaf layer, including the padding leaf if the number of
// leaves was odd.
func (t Tree) Leaves() Layer {
	return t[len(t)-1]
}

// Proof returns the inclusion proof for the leaf at index.
func (t Tree) Proof(index uint64) (Proof, error) {
	return GetMerkleProof(t, index)
}

// Root returns the root digest of t.
func Root(t Tree) sparsemerkle.Digest {
	return t.Root()
}

// Builder computes trees with a fixed hasher. It is safe for concurrent use.
type Builder struct {
	nodeHasher
	empty             EmptyNodes
	ts                clock.TimeSource
	parallelThreshold int
}

// NewBuilder returns a Builder that hashes with h. The padding table is
// computed here, once, and never changes afterwards.
func NewBuilder(h hashers.Hasher, opts Options) (*Builder, error) {
	n, err := newNodeHasher(h, opts.Strategy)
	if err != nil {
		return nil, err
	}
	InitMetrics(opts.MetricFactory)
	b := &Builder{
		nodeHasher:        n,
		empty:             computeEmptyNodes(n),
		ts:                opts.TimeSource,
		parallelThreshold: opts.ParallelHashThreshold,
	}
	if b.ts == nil {
		b.ts = clock.System
	}
	if b.parallelThreshold == 0 {
		b.parallelThreshold = defaultParallelHashThreshold
	}
	return b, nil
}

// NewBuilderForStrategy returns a Builder using the hasher registered for s.
func NewBuilderForStrategy(s sparsemerkle.HashStrategy, opts Options) (*Builder, error) {
	h, err := hashers.New(s)
	if err != nil {
		return nil, err
	}
	opts.Strategy = s
	return NewBuilder(h, opts)
}

// EmptyNodeHashes returns the padding digest for every level, leaves first.
func (b *Builder) EmptyNodeHashes() EmptyNodes {
	return b.empty
}

// BuildFromLeaves computes every layer of the tree over leaves. The leaves
// slice is copied, never retained or modified.
func (b *Builder) BuildFromLeaves(leaves []sparsemerkle.Digest) (Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	if uint64(len(leaves)) > MaxLeaves {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyLeaves, len(leaves))
	}
	start := b.ts.Now()

	tree := make(Tree, TreeDepth+1)
	// Spare capacity lets padding be appended without reallocating.
	cur := append(make(Layer, 0, len(leaves)+1), leaves...)
	for level := 0; level < TreeDepth; level++ {
		if len(cur)%2 == 1 {
			cur = append(cur, b.empty[level])
		}
		tree[TreeDepth-level] = cur
		cur = b.hashLayer(cur)
	}
	tree[0] = cur

	buildLatency.Observe(clock.SecondsSince(b.ts, start), b.label)
	treesBuilt.Inc(b.label)
	klog.V(2).Infof("Built %s tree over %d leaves: root %s", b.label, len(leaves), tree.Root())
	return tree, nil
}

// hashLayer returns the parents of an even length layer.
func (b *Builder) hashLayer(l Layer) Layer {
	parents := make(Layer, len(l)/2, len(l)/2+1)
	for j := range parents {
		parents[j] = b.hashChildren(l[2*j], l[2*j+1])
	}
	return parents
}

// BuildFromItems hashes each item into a leaf, in order, and builds the tree
// over the leaves.
func (b *Builder) BuildFromItems(items [][]byte) (Tree, error) {
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}
	return b.BuildFromLeaves(b.HashItems(items))
}

// HashItems returns H(item) for each item, in order. Large inputs are
// hashed in parallel.
func (b *Builder) HashItems(items [][]byte) []sparsemerkle.Digest {
	leaves := make([]sparsemerkle.Digest, len(items))
	defer leavesHashed.Add(float64(len(items)), b.label)

	if b.parallelThreshold < 0 || len(items) < b.parallelThreshold {
		for i, item := range items {
			leaves[i] = b.hashItem(item)
		}
		return leaves
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(items) + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < len(items); lo += chunk {
		hi := min(lo+chunk, len(items))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				leaves[i] = b.hashItem(items[i])
			}
			return nil
		})
	}
	// The workers cannot fail; Wait is only a barrier.
	g.Wait()
	return leaves
}

// RootFromLeaves returns the root of the tree over leaves.
func (b *Builder) RootFromLeaves(leaves []sparsemerkle.Digest) (sparsemerkle.Digest, error) {
	t, err := b.BuildFromLeaves(leaves)
	if err != nil {
		return sparsemerkle.Digest{}, err
	}
	return t.Root(), nil
}

// RootFromItems returns the root of the tree over the hashes of items.
func (b *Builder) RootFromItems(items [][]byte) (sparsemerkle.Digest, error) {
	t, err := b.BuildFromItems(items)
	if err != nil {
		return sparsemerkle.Digest{}, err
	}
	return t.Root(), nil
}
