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

package server

import "github.com/google/sparsemerkle"

// TreeRequest names the leaves of a tree. Exactly one of Items and Leaves
// must be set: Items are hashed into leaves, Leaves are used as they are.
type TreeRequest struct {
	// HashStrategy is a strategy name such as "KECCAK256". Empty means the
	// server's default.
	HashStrategy string                `json:"hash_strategy,omitempty"`
	Items        [][]byte              `json:"items,omitempty"`
	Leaves       []sparsemerkle.Digest `json:"leaves,omitempty"`
}

// RootResponse is the reply to POST /v1/root.
type RootResponse struct {
	HashStrategy string              `json:"hash_strategy"`
	Root         sparsemerkle.Digest `json:"root"`
	// LeafCount is the number of leaves stored, including any padding leaf.
	LeafCount int `json:"leaf_count"`
}

// ProofRequest asks for the inclusion proof of the leaf at Index.
type ProofRequest struct {
	TreeRequest
	Index uint64 `json:"index"`
}

// ProofResponse is the reply to POST /v1/proof.
type ProofResponse struct {
	HashStrategy string                `json:"hash_strategy"`
	Root         sparsemerkle.Digest   `json:"root"`
	Index        uint64                `json:"index"`
	Leaf         sparsemerkle.Digest   `json:"leaf"`
	Proof        []sparsemerkle.Digest `json:"proof"`
}

// ProofCheck is one inclusion proof to verify.
type ProofCheck struct {
	Root  sparsemerkle.Digest   `json:"root"`
	Leaf  sparsemerkle.Digest   `json:"leaf"`
	Index uint64                `json:"index"`
	Proof []sparsemerkle.Digest `json:"proof"`
}

// VerifyRequest is the body of POST /v1/verify.
type VerifyRequest struct {
	HashStrategy string       `json:"hash_strategy,omitempty"`
	Checks       []ProofCheck `json:"checks"`
}

// CheckResult is the outcome of one ProofCheck. Error is set, and Valid
// false, when the proof could not be evaluated at all.
type CheckResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// VerifyResponse holds one result per check, in request order.
type VerifyResponse struct {
	HashStrategy string        `json:"hash_strategy"`
	Results      []CheckResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
