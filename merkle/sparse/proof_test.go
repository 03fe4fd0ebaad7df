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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/sparsemerkle"
)

func TestGetBranchIndices(t *testing.T) {
	for _, tc := range []struct {
		index uint64
		depth int
		want  []uint64
	}{
		{index: 0, depth: 4, want: []uint64{0, 0, 0, 0}},
		{index: 5, depth: 4, want: []uint64{5, 2, 1, 0}},
		{index: 13, depth: 3, want: []uint64{13, 6, 3}},
		{index: 1, depth: 1, want: []uint64{1}},
		{index: 7, depth: 0, want: []uint64{}},
	} {
		got := GetBranchIndices(tc.index, tc.depth)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("GetBranchIndices(%d, %d) diff (-want +got):\n%s", tc.index, tc.depth, diff)
		}
	}
}

func TestProofRoundTrip(t *testing.T) {
	for _, s := range []sparsemerkle.HashStrategy{sparsemerkle.KECCAK256, sparsemerkle.SHA256} {
		b, v := mustBuilder(t, s), mustVerifier(t, s)
		for _, n := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 31, 32, 33, 100} {
			tree, err := b.BuildFromItems(numberedItems(n))
			if err != nil {
				t.Fatalf("%v: BuildFromItems(%d items): %v", s, n, err)
			}
			// Includes the padding leaf when n is odd.
			for i, leaf := range tree.Leaves() {
				proof, err := GetMerkleProof(tree, uint64(i))
				if err != nil {
					t.Fatalf("%v, %d items: GetMerkleProof(%d): %v", s, n, i, err)
				}
				if got := len(proof); got != TreeDepth {
					t.Fatalf("%v, %d items: proof %d has %d siblings", s, n, i, got)
				}
				ok, err := v.Verify(tree.Root(), leaf, uint64(i), proof)
				if err != nil || !ok {
					t.Errorf("%v, %d items: Verify(leaf %d)=%v, %v, want true, nil", s, n, i, ok, err)
				}
			}
		}
	}
}

func TestProofSiblingsFromTree(t *testing.T) {
	tree, err := BuildFromItems(numberedItems(6))
	if err != nil {
		t.Fatalf("BuildFromItems: %v", err)
	}
	proof, err := tree.Proof(4)
	if err != nil {
		t.Fatalf("Proof(4): %v", err)
	}
	e := EmptyNodeHashes()
	want := Proof{tree.Leaves()[5], e[1], tree[TreeDepth-2][0]}
	for level := 3; level < TreeDepth; level++ {
		want = append(want, e[level])
	}
	if diff := cmp.Diff(want, proof); diff != "" {
		t.Errorf("Proof(4) diff (-want +got):\n%s", diff)
	}
}

func TestGetMerkleProofErrors(t *testing.T) {
	tree, err := BuildFromItems(numberedItems(5))
	if err != nil {
		t.Fatalf("BuildFromItems: %v", err)
	}
	truncated := append(Tree{}, tree...)
	truncated[TreeDepth-1] = truncated[TreeDepth-1][:1]

	for _, tc := range []struct {
		desc  string
		tree  Tree
		index uint64
		want  error
	}{
		{desc: "past padding", tree: tree, index: 6, want: ErrIndexOutOfRange},
		{desc: "far out", tree: tree, index: 1 << 33, want: ErrIndexOutOfRange},
		{desc: "no layers", tree: nil, index: 0, want: ErrMalformedTree},
		{desc: "missing layer", tree: tree[1:], index: 0, want: ErrMalformedTree},
		{desc: "missing sibling", tree: truncated, index: 0, want: ErrMalformedTree},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			if _, err := GetMerkleProof(tc.tree, tc.index); !errors.Is(err, tc.want) {
				t.Errorf("GetMerkleProof(%d)=%v, want %v", tc.index, err, tc.want)
			}
		})
	}
	// The padding leaf itself is addressable.
	if _, err := GetMerkleProof(tree, 5); err != nil {
		t.Errorf("GetMerkleProof(padding leaf): %v", err)
	}
}
