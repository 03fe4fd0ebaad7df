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
	"github.com/google/sparsemerkle"
	"github.com/google/sparsemerkle/merkle/hashers"
	"k8s.io/klog/v2"
)

// Verifier checks inclusion proofs. It is safe for concurrent use.
type Verifier struct {
	nodeHasher
}

// NewVerifier returns a Verifier that hashes with h.
func NewVerifier(h hashers.Hasher, opts Options) (*Verifier, error) {
	n, err := newNodeHasher(h, opts.Strategy)
	if err != nil {
		return nil, err
	}
	InitMetrics(opts.MetricFactory)
	return &Verifier{nodeHasher: n}, nil
}

// NewVerifierForStrategy returns a Verifier using the hasher registered for s.
func NewVerifierForStrategy(s sparsemerkle.HashStrategy, opts Options) (*Verifier, error) {
	h, err := hashers.New(s)
	if err != nil {
		return nil, err
	}
	opts.Strategy = s
	return NewVerifier(h, opts)
}

// RootFromProof climbs from leaf to the root using proof, taking bit i of
// index as the side of the path at level i: set means the path is the right
// child. Only the low TreeDepth bits of index are read.
func (v *Verifier) RootFromProof(leaf sparsemerkle.Digest, index uint64, proof Proof) (sparsemerkle.Digest, error) {
	if len(proof) != TreeDepth {
		return sparsemerkle.Digest{}, &ProofLengthError{Got: len(proof), Want: TreeDepth}
	}
	value := leaf
	for i, sibling := range proof {
		if (index>>uint(i))&1 == 1 {
			value = v.hashChildren(sibling, value)
		} else {
			value = v.hashChildren(value, sibling)
		}
	}
	return value, nil
}

// Verify reports whether proof shows that leaf is at index in the tree with
// the given root. A proof that does not match is not an error; only a proof
// of the wrong length is.
func (v *Verifier) Verify(root, leaf sparsemerkle.Digest, index uint64, proof Proof) (bool, error) {
	calc, err := v.RootFromProof(leaf, index, proof)
	if err != nil {
		proofsVerified.Inc(v.label, resultMalformed)
		return false, err
	}
	if calc != root {
		klog.V(3).Infof("Proof for leaf %s at index %d gives root %s, want %s", leaf, index, calc, root)
		proofsVerified.Inc(v.label, resultInvalid)
		return false, nil
	}
	proofsVerified.Inc(v.label, resultValid)
	return true, nil
}
