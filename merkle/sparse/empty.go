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

import "github.com/google/sparsemerkle"

// EmptyNodes holds the padding digest for each level, leaves first.
type EmptyNodes [TreeDepth]sparsemerkle.Digest

// computeEmptyNodes returns the padding table for n. Level 0 is the raw zero
// digest, not its hash.
func computeEmptyNodes(n nodeHasher) EmptyNodes {
	var e EmptyNodes
	for i := 1; i < TreeDepth; i++ {
		e[i] = n.hashChildren(e[i-1], e[i-1])
	}
	return e
}

// Proof returns the table as the proof of leaf 0 in a tree that has exactly
// one leaf.
func (e EmptyNodes) Proof() Proof {
	return append(Proof(nil), e[:]...)
}
