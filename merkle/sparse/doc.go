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

// Package sparse builds fixed-depth binary Merkle trees over ordered lists
// of items and verifies inclusion proofs against their roots.
//
// Every tree has TreeDepth levels above its leaves, whatever the number of
// leaves. A layer with an odd number of nodes is padded with the digest of
// an empty subtree of the same height before its parent layer is computed.
// Level 0 is padded with 32 zero bytes, and the padding for level i > 0 is
// H(e || e) where e is the padding for level i-1. The padded layer is what
// the tree stores, so proofs for the last leaf of an odd layer contain the
// padding digest as their sibling.
//
// Parents are always H(left || right). A node at an even position is a left
// child and a node at an odd position is a right child, so bit i of a leaf's
// index says which side its ancestor at level i sits on.
package sparse
