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
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/internal/merkle/inmemory"
	"github.com/google/sparsemerkle/merkle/hashers"
)

// TestMatchesReferenceTree checks roots and proofs against a tree that
// computes each node recursively from its definition.
func TestMatchesReferenceTree(t *testing.T) {
	for _, s := range []sparsemerkle.HashStrategy{sparsemerkle.KECCAK256, sparsemerkle.SHA256, sparsemerkle.BLAKE3} {
		t.Run(s.String(), func(t *testing.T) {
			h, err := hashers.New(s)
			if err != nil {
				t.Fatalf("hashers.New: %v", err)
			}
			b, v := mustBuilder(t, s), mustVerifier(t, s)
			ref := inmemory.New(h, TreeDepth)
			rng := rand.New(rand.NewSource(int64(s)))

			for n := 1; n <= 70; n++ {
				item := []byte(fmt.Sprintf("%s item %d", s, n))
				ref.AppendData(item)
				tree, err := b.BuildFromItems(itemsUpTo(s, n))
				if err != nil {
					t.Fatalf("BuildFromItems(%d items): %v", n, err)
				}
				if got, want := tree.Root(), ref.Hash(); !bytes.Equal(got[:], want) {
					t.Fatalf("%d items: root %s, want %x", n, got, want)
				}

				i := uint64(rng.Intn(len(tree.Leaves())))
				proof, err := tree.Proof(i)
				if err != nil {
					t.Fatalf("%d items: Proof(%d): %v", n, i, err)
				}
				want, err := ref.InclusionProof(i)
				if err != nil {
					t.Fatalf("%d items: reference InclusionProof(%d): %v", n, i, err)
				}
				for l := range proof {
					if !bytes.Equal(proof[l][:], want[l]) {
						t.Errorf("%d items: proof %d differs at level %d", n, i, l)
					}
				}
				if ok, err := v.Verify(tree.Root(), tree.Leaves()[i], i, proof); err != nil || !ok {
					t.Errorf("%d items: Verify(%d)=%v, %v", n, i, ok, err)
				}
			}
		})
	}
}

func itemsUpTo(s sparsemerkle.HashStrategy, n int) [][]byte {
	r := make([][]byte, n)
	for i := range r {
		r[i] = []byte(fmt.Sprintf("%s item %d", s, i+1))
	}
	return r
}
